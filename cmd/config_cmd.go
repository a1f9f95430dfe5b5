// Package cmd implements the savrate CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/savrate/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [hledger]")
	fmt.Printf("    Binary:    %s\n", config.GetBinary(cfg))
	if file := config.GetLedgerFile(cfg); file != "" {
		fmt.Printf("    Journal:   %s\n", file)
	} else {
		fmt.Println("    Journal:   hledger default")
	}
	fmt.Printf("    Commodity: %s\n", cfg.Hledger.Commodity)
	fmt.Printf("    Begin:     %s\n", cfg.Hledger.Begin)
	fmt.Printf("    Format:    %s\n", cfg.Hledger.Format)
	fmt.Printf("    Timeout:   %s\n", cfg.Timeout())
	fmt.Println()

	fmt.Println("  [queries]")
	fmt.Printf("    Expenses:      %s\n", cfg.Queries.Expenses)
	fmt.Printf("    Income:        %s\n", cfg.Queries.Income)
	fmt.Printf("    Liabilities:   %s\n", cfg.Queries.Liabilities)
	fmt.Printf("    Invert income: %v\n", cfg.Queries.InvertIncome)
	fmt.Println()

	fmt.Println("  [appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `savrate setup` to reconfigure.")
	return nil
}
