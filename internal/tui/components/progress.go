package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/savrate/internal/pipeline"
	"github.com/theirongolddev/savrate/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a block progress bar with a percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	pct = clamp01(pct)
	filled := int(pct * float64(width))

	barColor := t.Accent
	if pct >= 0.8 {
		barColor = t.AccentBright
	}

	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// ColorForRate returns red/yellow/green for a savings-rate percentage.
func ColorForRate(percent float64) lipgloss.Color {
	t := theme.Active
	switch pipeline.RateLevel(percent) {
	case pipeline.LevelAlert:
		return t.Red
	case pipeline.LevelCaution:
		return t.Yellow
	default:
		return t.Green
	}
}

// RateGauge renders a labeled savings-rate bar. Negative rates show as an
// empty bar; the label still carries the real value.
func RateGauge(label string, percent float64, labelW, barWidth int) string {
	t := theme.Active
	color := ColorForRate(percent)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	pctStyle := lipgloss.NewStyle().Foreground(color).Bold(true)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) + " " +
		bar.ViewAs(clamp01(percent/100)) + " " +
		pctStyle.Render(fmt.Sprintf("%6.1f%%", percent))
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
