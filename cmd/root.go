package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/theirongolddev/savrate/internal/config"
	"github.com/theirongolddev/savrate/internal/hledger"
	"github.com/theirongolddev/savrate/internal/pipeline"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	flagFile      string
	flagBegin     string
	flagCommodity string
	flagFormat    string
	flagHledger   string
	flagVerbose   bool
	flagQuiet     bool
)

var rootCmd = &cobra.Command{
	Use:   "savrate",
	Short: "Savings rate from your hledger journal",
	Long: "Compute your monthly savings rate, FIRE/AAW/PAW projections and this month's\n" +
		"expense breakdown from hledger balance reports.",
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Journal file (default: $LEDGER_FILE or config)")
	rootCmd.PersistentFlags().StringVarP(&flagBegin, "begin", "b", "", "Report start date, any hledger period expression")
	rootCmd.PersistentFlags().StringVarP(&flagCommodity, "commodity", "c", "", "Convert all amounts to this commodity")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "", "hledger output format: json or csv")
	rootCmd.PersistentFlags().StringVar(&flagHledger, "hledger", "", "hledger executable (default: $SAVRATE_HLEDGER or config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log hledger invocations")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// prepare configures logging and validates flags before any command runs.
func prepare(_ *cobra.Command, _ []string) error {
	level := zerolog.WarnLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	config.LoadEnv()

	if flagFormat != "" {
		if _, err := hledger.ParseFormat(flagFormat); err != nil {
			return err
		}
	}
	return nil
}

// loadConfig reads the config file, falling back to defaults on error.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Warn().Err(err).Str("path", config.Path()).Msg("using default config")
	}
	return cfg
}

// buildFetcher applies flags over environment over config and returns a
// runner plus the queries to load with.
func buildFetcher(cfg config.Config) (pipeline.Fetcher, pipeline.Queries) {
	file := config.GetLedgerFile(cfg)
	if flagFile != "" {
		file = flagFile
	}
	binary := config.GetBinary(cfg)
	if flagHledger != "" {
		binary = flagHledger
	}

	format, err := hledger.ParseFormat(firstNonEmpty(flagFormat, cfg.Hledger.Format))
	if err != nil {
		log.Warn().Err(err).Msg("falling back to json output")
		format = hledger.FormatJSON
	}

	r := hledger.NewRunner(
		binary,
		file,
		firstNonEmpty(flagCommodity, cfg.Hledger.Commodity),
		firstNonEmpty(flagBegin, cfg.Hledger.Begin),
		format,
	)
	r.Timeout = cfg.Timeout()

	return r, pipeline.Queries{
		Expenses:     cfg.Queries.Expenses,
		Income:       cfg.Queries.Income,
		Liabilities:  cfg.Queries.Liabilities,
		InvertIncome: cfg.Queries.InvertIncome,
		Format:       format,
	}
}

// loadData is the shared data loading path used by all commands.
func loadData(ctx context.Context) (*pipeline.LoadResult, error) {
	f, q := buildFetcher(loadConfig())

	progressFn := func(current, total int, stage string) {
		if flagQuiet {
			return
		}
		fmt.Fprintf(os.Stderr, "\r  [%d/%d] %-36s", current, total, stage)
	}

	result, err := pipeline.Load(ctx, f, q, progressFn)
	if !flagQuiet {
		fmt.Fprint(os.Stderr, "\r"+strings.Repeat(" ", 48)+"\r")
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
