package components

import (
	"strings"

	"github.com/theirongolddev/savrate/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name string
	Key  rune
}

// Tabs defines all available tabs. Each key is the first letter of its name.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o'},
	{Name: "Breakdown", Key: 'b'},
	{Name: "Projections", Key: 'p'},
}

const tabSeparator = "  "

// TabWidth returns the rendered width of tab i.
func TabWidth(i, activeIdx int) int {
	w := len(Tabs[i].Name)
	if i != activeIdx {
		w += 2 // brackets around the shortcut letter
	}
	return w
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Underline(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	dimKeyStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	parts := make([]string, 0, len(Tabs))
	for i, tab := range Tabs {
		if i == activeIdx {
			parts = append(parts, activeStyle.Render(tab.Name))
			continue
		}
		// Highlight the shortcut letter: [O]verview
		parts = append(parts, dimKeyStyle.Render("[")+keyStyle.Render(tab.Name[:1])+
			dimKeyStyle.Render("]")+inactiveStyle.Render(tab.Name[1:]))
	}

	return lipgloss.NewStyle().MaxWidth(width).Render(" " + strings.Join(parts, tabSeparator))
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}

// TabAtX returns the tab under column x of the rendered bar, or -1.
func TabAtX(x, activeIdx int) int {
	pos := 1 // leading space
	for i := range Tabs {
		w := TabWidth(i, activeIdx)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + len(tabSeparator)
	}
	return -1
}
