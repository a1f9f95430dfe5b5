package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/savrate/internal/config"
	"github.com/theirongolddev/savrate/internal/tui"
	"github.com/theirongolddev/savrate/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	theme.SetActive(cfg.Appearance.Theme)

	// stderr belongs to the alt screen while the dashboard runs
	log.Logger = zerolog.Nop()
	if flagVerbose {
		path := filepath.Join(os.TempDir(), "savrate.log")
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
		fmt.Fprintf(os.Stderr, "  logging to %s\n", path)
	}

	// Force TrueColor so themed styles render even when the profile is
	// detected as Ascii
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(cfg, buildFetcher, !config.Exists())
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
