package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/savrate/internal/cli"
	"github.com/theirongolddev/savrate/internal/pipeline"

	"github.com/spf13/cobra"
)

const (
	chartWidth  = 60
	chartHeight = 10
	pieRadius   = 6
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Savings rate, projections and this month's breakdown (default)",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	result, err := loadData(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println()
	printRates(result)
	fmt.Println()
	printProjections(result)
	fmt.Println()
	printBreakdown(result)

	if result.DroppedRows > 0 {
		fmt.Fprintf(os.Stderr, "\n  %d balance rows could not be recognized\n", result.DroppedRows)
	}
	return nil
}

func printRates(result *pipeline.LoadResult) {
	s := result.Series
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SAVINGS RATE  %d months", s.Months)))
	fmt.Println()
	fmt.Println(cli.RenderStepChart(s.Rates, chartWidth, chartHeight))
	fmt.Println()
	fmt.Printf("  Average savings rate: %s\n", cli.RenderRate(s.CumulativeRate))
}

func printProjections(result *pipeline.LoadResult) {
	s := result.Series
	p := result.Projections

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Projections",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Avg daily income", cli.FormatMoney(s.AvgDailyIncome)},
			{"Avg daily expenses", cli.FormatMoney(s.AvgDailyExpense)},
			{"Liabilities", cli.FormatMoney(result.Liabilities)},
			{"---"},
			{"FIRE", cli.FormatMoney(p.FIRE)},
			{"AAW", cli.FormatMoney(p.AAW)},
			{"PAW", cli.FormatMoney(p.PAW)},
		},
	}))
}

func printBreakdown(result *pipeline.LoadResult) {
	fmt.Println(cli.RenderTitle("THIS MONTH'S EXPENSES"))
	fmt.Println()
	if len(result.Breakdown) == 0 {
		fmt.Println("  No expenses recorded this month.")
		return
	}
	fmt.Println(cli.RenderPie(cli.Slices(result.Breakdown), pieRadius, 2))
}
