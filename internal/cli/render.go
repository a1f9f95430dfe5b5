package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/theirongolddev/savrate/internal/model"
	"github.com/theirongolddev/savrate/internal/pipeline"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
	ColorPurple    = lipgloss.Color("#8B7EC8")
	ColorYellow    = lipgloss.Color("#D0A215")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	lineStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows.
// A row consisting of the single cell "---" renders as a separator.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		measure := func(row []string) {
			for i, cell := range row {
				if w := lipgloss.Width(cell); i < numCols && w > widths[i] {
					widths[i] = w
				}
			}
		}
		measure(t.Headers)
		for _, row := range t.Rows {
			if !isSeparator(row) {
				measure(row)
			}
		}
	}

	rule := func(left, mid, right string) string {
		var b strings.Builder
		b.WriteString(left)
		for i, w := range widths {
			b.WriteString(strings.Repeat("─", w+2))
			if i < numCols-1 {
				b.WriteString(mid)
			}
		}
		b.WriteString(right)
		return dimStyle.Render(b.String()) + "\n"
	}

	line := func(row []string, style lipgloss.Style, alignRight bool) string {
		var b strings.Builder
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad := strings.Repeat(" ", max(widths[i]-lipgloss.Width(cell), 0))
			// Numeric columns (all but the first) are right-aligned.
			if alignRight && i > 0 {
				cell = pad + cell
			} else {
				cell += pad
			}
			b.WriteString(style.Render(" " + cell + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		return b.String() + "\n"
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(rule("╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(line(t.Headers, headerStyle, false))
		b.WriteString(rule("├", "┼", "┤"))
	}
	for _, row := range t.Rows {
		if isSeparator(row) {
			b.WriteString(rule("├", "┼", "┤"))
			continue
		}
		b.WriteString(line(row, valueStyle, true))
	}
	b.WriteString(rule("╰", "┴", "╯"))

	return b.String()
}

func isSeparator(row []string) bool {
	return len(row) == 1 && row[0] == "---"
}

// RenderRate renders a savings-rate percentage colored by threshold:
// red at or below zero, yellow up to 50%, green above.
func RenderRate(percent float64) string {
	return RateStyle(percent).Render(FormatPercent(percent))
}

// RateStyle returns the threshold color style for a savings rate.
func RateStyle(percent float64) lipgloss.Style {
	switch pipeline.RateLevel(percent) {
	case pipeline.LevelAlert:
		return lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
	case pipeline.LevelCaution:
		return lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
	}
}

// RenderStepChart draws the rate series as a step line with a labelled
// y-axis. Zero is always inside the plotted range.
func RenderStepChart(points []pipeline.RatePoint, width, height int) string {
	return StepChart(points, width, height, lineStyle, mutedStyle)
}

// StepChart is RenderStepChart with caller-provided line and axis styles.
func StepChart(points []pipeline.RatePoint, width, height int, line, axis lipgloss.Style) string {
	if len(points) == 0 {
		return ""
	}
	if height < 3 {
		height = 3
	}

	lo, hi := 0.0, 0.0
	for _, p := range points {
		lo = min(lo, p.Percent)
		hi = max(hi, p.Percent)
	}
	if hi == lo {
		hi = lo + 1
	}

	hiLabel, loLabel := FormatPercent(hi), FormatPercent(lo)
	labelW := max(len(hiLabel), len(loLabel)) + 1
	plotW := width - labelW - 1
	if plotW < len(points) {
		plotW = len(points)
	}

	rowOf := func(v float64) int {
		return int((hi - v) / (hi - lo) * float64(height-1))
	}

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", plotW))
	}

	prevRow := -1
	for col := 0; col < plotW; col++ {
		idx := col * len(points) / plotW
		row := rowOf(points[idx].Percent)
		if prevRow >= 0 && row != prevRow {
			top, bottom := min(row, prevRow), max(row, prevRow)
			for r := top; r <= bottom; r++ {
				grid[r][col] = '│'
			}
			if row < prevRow {
				grid[prevRow][col], grid[row][col] = '┘', '┌'
			} else {
				grid[prevRow][col], grid[row][col] = '┐', '└'
			}
		} else {
			grid[row][col] = '─'
		}
		prevRow = row
	}

	zeroRow := rowOf(0)
	var b strings.Builder
	for r, cells := range grid {
		label := ""
		switch r {
		case 0:
			label = hiLabel
		case height - 1:
			label = loLabel
		case zeroRow:
			label = "0%"
		}
		b.WriteString(axis.Render(fmt.Sprintf("%*s", labelW, label)))
		b.WriteString(axis.Render("┤"))
		b.WriteString(line.Render(string(cells)))
		b.WriteString("\n")
	}

	// X-axis: period index under the start of each step.
	axisRow := []rune(strings.Repeat(" ", plotW))
	for i := range points {
		col := i * plotW / len(points)
		for j, ch := range fmt.Sprint(i) {
			if col+j < plotW {
				axisRow[col+j] = ch
			}
		}
	}
	b.WriteString(strings.Repeat(" ", labelW+1))
	b.WriteString(axis.Render(string(axisRow)))
	b.WriteString("\n")

	return b.String()
}

// Fills are the pie slice glyphs, assigned by slice index mod 5.
var Fills = []rune{'•', '▪', '▴', '░', '▀'}

// SliceColors are the pie slice colors, assigned by slice index mod 5.
var SliceColors = []lipgloss.Color{ColorBlue, ColorRed, ColorGreen, ColorYellow, ColorPurple}

// Slice is one pie-chart wedge ready for rendering.
type Slice struct {
	Label    string
	Fraction float64
	Fill     rune
	Color    lipgloss.Color
}

// Slices assigns fill glyphs and colors round-robin over the palette, in
// the order the shares are given.
func Slices(shares []model.ExpenseShare) []Slice {
	out := make([]Slice, len(shares))
	for i, s := range shares {
		out[i] = Slice{
			Label:    s.Label,
			Fraction: s.Fraction,
			Fill:     Fills[i%len(Fills)],
			Color:    SliceColors[i%len(SliceColors)],
		}
	}
	return out
}

// RenderPie draws the slices as a filled circle with a legend to the right.
// aspect widens each row to compensate for tall terminal cells.
func RenderPie(slices []Slice, radius, aspect int) string {
	if len(slices) == 0 {
		return ""
	}
	if radius < 1 {
		radius = 1
	}
	if aspect < 1 {
		aspect = 1
	}

	var bounds []float64
	var acc float64
	for _, s := range slices {
		acc += max(s.Fraction, 0)
		bounds = append(bounds, acc)
	}

	var circle []string
	r := float64(radius)
	for y := -radius; y <= radius; y++ {
		var row strings.Builder
		for x := -radius * aspect; x <= radius*aspect; x++ {
			fx := float64(x) / float64(aspect)
			fy := float64(y)
			if fx*fx+fy*fy > r*r {
				row.WriteByte(' ')
				continue
			}
			i := sliceAt(angleFraction(fx, fy)*acc, bounds)
			s := slices[i]
			row.WriteString(lipgloss.NewStyle().Foreground(s.Color).Render(string(s.Fill)))
		}
		circle = append(circle, row.String())
	}

	var legend []string
	for _, s := range slices {
		swatch := lipgloss.NewStyle().Foreground(s.Color).Render(string(s.Fill))
		legend = append(legend, fmt.Sprintf("%s %s %s",
			swatch, valueStyle.Render(s.Label), mutedStyle.Render(FormatShare(s.Fraction))))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		strings.Join(circle, "\n"),
		"   ",
		strings.Join(legend, "\n"),
	)
}

// angleFraction maps a point to its clockwise angle from 12 o'clock, as a
// fraction of a full turn in [0, 1).
func angleFraction(x, y float64) float64 {
	a := math.Atan2(x, -y) / (2 * math.Pi)
	if a < 0 {
		a += 1
	}
	return a
}

func sliceAt(pos float64, bounds []float64) int {
	for i, b := range bounds {
		if pos < b {
			return i
		}
	}
	return len(bounds) - 1
}
