package tui

import (
	"strconv"
	"strings"

	"github.com/theirongolddev/savrate/internal/cli"
	"github.com/theirongolddev/savrate/internal/model"
	"github.com/theirongolddev/savrate/internal/pipeline"
	"github.com/theirongolddev/savrate/internal/tui/components"
)

func (a App) renderOverviewTab(cw int) string {
	r := a.result
	s := r.Series
	var b strings.Builder

	// Row 1: Metric cards
	metrics := []components.Metric{
		{
			Label: "Savings rate",
			Value: cli.FormatPercent(s.CumulativeRate),
			Note:  "mean of monthly rates",
			Color: components.ColorForRate(s.CumulativeRate),
		},
		{Label: "Months", Value: strconv.Itoa(s.Months), Note: reportRange(r.Expenses)},
		{
			Label: "Daily income",
			Value: cli.FormatMoney(s.AvgDailyIncome),
			Note:  cli.FormatMoneyShort(s.AvgDailyIncome*pipeline.DaysPerMonth) + "/mo",
		},
		{
			Label: "Daily expenses",
			Value: cli.FormatMoney(s.AvgDailyExpense),
			Note:  cli.FormatMoneyShort(s.AvgDailyExpense*pipeline.DaysPerMonth) + "/mo",
		},
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	// Row 2: Rate chart
	innerW := components.CardInnerWidth(cw)
	chartH := 8
	if a.isCompactLayout() {
		chartH = 6
	}
	b.WriteString(components.ContentCard("Savings rate by month",
		components.RateChart(s.Rates, innerW, chartH), cw))
	b.WriteString("\n")

	// Row 3: Per-month gauges
	labels := make([]string, len(s.Rates))
	labelW := 0
	for i := range s.Rates {
		labels[i] = periodLabel(r.Expenses, i)
		labelW = max(labelW, len(labels[i]))
	}
	barW := max(innerW-labelW-9, 10)

	var gauges strings.Builder
	for i, p := range s.Rates {
		gauges.WriteString(components.RateGauge(labels[i], p.Percent, labelW, barW))
		if i < len(s.Rates)-1 {
			gauges.WriteString("\n")
		}
	}
	b.WriteString(components.ContentCard("Monthly", gauges.String(), cw))

	return b.String()
}

// periodLabel names period i of the report, falling back to its index.
func periodLabel(r model.PeriodReport, i int) string {
	if i < len(r.Dates) {
		return cli.FormatSpan(r.Dates[i])
	}
	return "#" + strconv.Itoa(i+1)
}

func reportRange(r model.PeriodReport) string {
	if len(r.Dates) == 0 {
		return ""
	}
	first, last := r.Dates[0], r.Dates[len(r.Dates)-1]
	if len(r.Dates) == 1 {
		return cli.FormatSpan(first)
	}
	return cli.FormatSpan(first) + " to " + cli.FormatSpan(last)
}
