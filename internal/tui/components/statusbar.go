package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/savrate/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, loadInfo string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [o/b/p]tabs  [r]eload  [q]uit"
	right := ""
	if loadInfo != "" {
		right = fmt.Sprintf("%s ", loadInfo)
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return style.Render(left + strings.Repeat(" ", padding) + right)
}
