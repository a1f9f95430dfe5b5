package cmd

import (
	"fmt"

	"github.com/theirongolddev/savrate/internal/cli"

	"github.com/spf13/cobra"
)

var breakdownCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "This month's expenses by account",
	RunE:  runBreakdown,
}

func init() {
	rootCmd.AddCommand(breakdownCmd)
}

func runBreakdown(cmd *cobra.Command, _ []string) error {
	result, err := loadData(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println()
	printBreakdown(result)
	if len(result.Breakdown) == 0 {
		return nil
	}
	fmt.Println()

	accounts := result.Listing.Accounts()
	rows := make([][]string, 0, len(result.Breakdown)+2)
	for i, sh := range result.Breakdown {
		amount := cli.FormatMoney(sh.Amount)
		if i < len(accounts) && len(accounts[i].Amounts) > 0 {
			amount = cli.FormatCommodity(accounts[i].Amounts[0])
		}
		rows = append(rows, []string{sh.Label, amount, cli.FormatShare(sh.Fraction)})
	}
	if total, err := result.Listing.ShareTotal(); err == nil {
		rows = append(rows, []string{"---"},
			[]string{"Total", cli.FormatCommodity(total), ""})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Account", "Amount", "Share"},
		Rows:    rows,
	}))
	return nil
}
