package components

import (
	"github.com/theirongolddev/savrate/internal/cli"
	"github.com/theirongolddev/savrate/internal/model"
	"github.com/theirongolddev/savrate/internal/pipeline"
	"github.com/theirongolddev/savrate/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RateChart renders the savings-rate step chart in theme colors.
func RateChart(points []pipeline.RatePoint, width, height int) string {
	t := theme.Active
	line := lipgloss.NewStyle().Foreground(t.Accent)
	axis := lipgloss.NewStyle().Foreground(t.TextDim)
	return cli.StepChart(points, width, height, line, axis)
}

// PieChart renders the expense breakdown pie with theme slice colors.
// Slice order, and so glyph/color assignment, follows the shares.
func PieChart(shares []model.ExpenseShare, radius int) string {
	slices := cli.Slices(shares)
	colors := theme.Active.SliceColors()
	for i := range slices {
		slices[i].Color = colors[i%len(colors)]
	}
	return cli.RenderPie(slices, radius, 2)
}
