package cmd

import (
	"fmt"

	"github.com/theirongolddev/savrate/internal/cli"

	"github.com/spf13/cobra"
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Monthly savings rates",
	RunE:  runRates,
}

func init() {
	rootCmd.AddCommand(ratesCmd)
}

func runRates(cmd *cobra.Command, _ []string) error {
	result, err := loadData(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println()
	printRates(result)
	fmt.Println()

	rows := make([][]string, 0, len(result.Series.Rates)+2)
	for i, p := range result.Series.Rates {
		period := fmt.Sprintf("#%d", i+1)
		if i < len(result.Expenses.Dates) {
			period = cli.FormatSpan(result.Expenses.Dates[i])
		}

		var expenses, income string
		if v, err := result.Expenses.ValueAtPeriod(i); err == nil {
			expenses = cli.FormatMoney(v.Amount)
		}
		if v, err := result.Income.ValueAtPeriod(i); err == nil {
			income = cli.FormatMoney(v.Amount)
		}
		rows = append(rows, []string{period, income, expenses, cli.FormatPercent(p.Percent)})
	}
	rows = append(rows, []string{"---"}, []string{"Average", "", "", cli.FormatPercent(result.Series.CumulativeRate)})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Period", "Income", "Expenses", "Rate"},
		Rows:    rows,
	}))
	return nil
}
