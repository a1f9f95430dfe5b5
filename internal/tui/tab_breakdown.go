package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/savrate/internal/cli"
	"github.com/theirongolddev/savrate/internal/tui/components"
	"github.com/theirongolddev/savrate/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderBreakdownTab(cw int) string {
	t := theme.Active
	r := a.result
	shares := r.Breakdown

	if len(shares) == 0 {
		msg := lipgloss.NewStyle().Foreground(t.TextDim).Render("No expenses recorded this month.")
		return components.ContentCard("This month", msg, cw)
	}

	compact := a.isCompactLayout()
	halves := components.LayoutRow(cw, 2)
	pieW, tableW := halves[0], halves[1]
	radius := 7
	if compact {
		pieW, tableW = cw, cw
		radius = 5
	}

	innerW := components.CardInnerWidth(tableW)
	amountW, shareW := 14, 7
	nameW := max(innerW-amountW-shareW-2, 10)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	colors := t.SliceColors()

	var table strings.Builder
	table.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %*s %*s", nameW, "Account", amountW, "Amount", shareW, "Share")))
	table.WriteString("\n")
	table.WriteString(mutedStyle.Render(strings.Repeat("─", nameW+amountW+shareW+2)))
	table.WriteString("\n")

	accounts := r.Listing.Accounts()
	for i, sh := range shares {
		amount := cli.FormatMoney(sh.Amount)
		if i < len(accounts) && len(accounts[i].Amounts) > 0 {
			amount = cli.FormatCommodity(accounts[i].Amounts[0])
		}
		nameStyle := lipgloss.NewStyle().Foreground(colors[i%len(colors)])
		table.WriteString(nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(sh.Label, nameW))))
		table.WriteString(rowStyle.Render(fmt.Sprintf(" %*s %*s", amountW, amount, shareW, cli.FormatShare(sh.Fraction))))
		table.WriteString("\n")
	}

	if tc, err := r.Listing.ShareTotal(); err == nil {
		total := cli.FormatCommodity(tc)
		table.WriteString(mutedStyle.Render(strings.Repeat("─", nameW+amountW+shareW+2)))
		table.WriteString("\n")
		table.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %*s", nameW, "Total", amountW, total)))
	}

	pie := components.ContentCard("This month", components.PieChart(shares, radius), pieW)
	list := components.ContentCard("Accounts", table.String(), tableW)
	if compact {
		return pie + "\n" + list
	}
	return components.CardRow([]string{pie, list})
}
