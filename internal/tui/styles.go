package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/ui"
)

// Style variables for the dashboard, rebuilt from the ui theme by
// initTUIStyles.
var (
	panelStyle       lipgloss.Style
	headerStyle      lipgloss.Style
	titleStyle       lipgloss.Style
	dimStyle         lipgloss.Style
	accentStyle      lipgloss.Style
	successStyle     lipgloss.Style
	warningStyle     lipgloss.Style
	errorStyle       lipgloss.Style
	footerKeyStyle   lipgloss.Style
	cpuSparkStyle    lipgloss.Style
	memSparkStyle    lipgloss.Style
	statusDoneStyle  lipgloss.Style
	statusErrorStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme.
// Called at package init and again from Run after InitTheme.
func initTUIStyles() {
	t := ui.GetCurrentTheme()
	bold := t.Name != "none"

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Muted)

	headerStyle = lipgloss.NewStyle().Bold(bold).Foreground(t.Accent).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(bold).Foreground(t.Accent)
	dimStyle = lipgloss.NewStyle().Foreground(t.Muted)
	accentStyle = lipgloss.NewStyle().Foreground(t.Accent)

	successStyle = lipgloss.NewStyle().Foreground(t.SuccessColor)
	warningStyle = lipgloss.NewStyle().Foreground(t.WarningColor)
	errorStyle = lipgloss.NewStyle().Foreground(t.ErrorColor)

	footerKeyStyle = lipgloss.NewStyle().Bold(bold).Foreground(t.Accent)
	cpuSparkStyle = lipgloss.NewStyle().Foreground(t.Accent)
	memSparkStyle = lipgloss.NewStyle().Foreground(t.WarningColor)
	statusDoneStyle = lipgloss.NewStyle().Bold(bold).Foreground(t.SuccessColor)
	statusErrorStyle = lipgloss.NewStyle().Bold(bold).Foreground(t.ErrorColor)
}
