package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectionsCmd = &cobra.Command{
	Use:   "projections",
	Short: "FIRE target and wealth benchmark distances",
	Long: "FIRE is 25 times annual expenses. AAW and PAW are the distances from\n" +
		"half and twice of 2.3 times annual income, offset by liabilities.",
	RunE: runProjections,
}

func init() {
	rootCmd.AddCommand(projectionsCmd)
}

func runProjections(cmd *cobra.Command, _ []string) error {
	result, err := loadData(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println()
	printProjections(result)
	return nil
}
