package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Banner renders the boxed REPL greeting: the title on the first line and
// each detail line below it in the muted color.
func Banner(title string, details ...string) string {
	theme := GetCurrentTheme()
	titleStyle := lipgloss.NewStyle().Bold(theme.Name != "none").Foreground(theme.Accent)
	detailStyle := lipgloss.NewStyle().Foreground(theme.Muted)

	lines := make([]string, 0, len(details)+1)
	lines = append(lines, titleStyle.Render(title))
	for _, d := range details {
		lines = append(lines, detailStyle.Render(d))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(0, 1)
	return box.Render(strings.Join(lines, "\n"))
}

// Header renders a section title such as "Comparison Summary".
func Header(title string) string {
	theme := GetCurrentTheme()
	return lipgloss.NewStyle().
		Bold(theme.Name != "none").
		Underline(theme.Name != "none").
		Foreground(theme.Accent).
		Render(title)
}
