package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/savrate/internal/cli"
	"github.com/theirongolddev/savrate/internal/pipeline"
	"github.com/theirongolddev/savrate/internal/tui/components"
	"github.com/theirongolddev/savrate/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderProjectionsTab(cw int) string {
	t := theme.Active
	r := a.result
	p := r.Projections

	var b strings.Builder
	metrics := []components.Metric{
		{Label: "FIRE", Value: cli.FormatMoney(p.FIRE), Note: fmt.Sprintf("%dx annual expenses", pipeline.FireMultiple), Color: t.Green},
		{Label: "AAW distance", Value: cli.FormatMoney(p.AAW), Note: "average accumulator", Color: t.Yellow},
		{Label: "PAW distance", Value: cli.FormatMoney(p.PAW), Note: "prodigious accumulator", Color: t.Blue},
		{Label: "Liabilities", Value: cli.FormatMoney(r.Liabilities), Note: a.queries.Liabilities},
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	perYear := fmt.Sprintf("daily average x %d", pipeline.DaysPerYear)
	rows := []struct{ label, value, note string }{
		{"Annual expenses", cli.FormatMoney(p.AnnualExpenses), perYear},
		{"Annual income", cli.FormatMoney(p.AnnualIncome), perYear},
		{"Wealth benchmark", cli.FormatMoney(p.Benchmark), fmt.Sprintf("annual income x %g", pipeline.WealthMultiple)},
		{"AAW target", cli.FormatMoney(p.AAWTarget), "half the benchmark"},
		{"PAW target", cli.FormatMoney(p.PAWTarget), "twice the benchmark"},
	}

	var body strings.Builder
	for i, row := range rows {
		body.WriteString(labelStyle.Render(fmt.Sprintf("%-18s", row.label)))
		body.WriteString(valueStyle.Render(fmt.Sprintf("%14s", row.value)))
		body.WriteString(dimStyle.Render("  " + row.note))
		if i < len(rows)-1 {
			body.WriteString("\n")
		}
	}
	b.WriteString(components.ContentCard("How these are derived", body.String(), cw))

	return b.String()
}
