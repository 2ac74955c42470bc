package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders the key help and the run status.
type FooterModel struct {
	bindings []key.Binding
	done     bool
	failed   bool
	paused   bool
	width    int
}

// NewFooterModel creates a footer listing bindings.
func NewFooterModel(bindings []key.Binding) FooterModel {
	return FooterModel{bindings: bindings}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) { f.width = w }

// SetDone marks the run as finished; failed colors the status red.
func (f *FooterModel) SetDone(done, failed bool) {
	f.done = done
	f.failed = failed
}

// SetPaused toggles the paused indicator.
func (f *FooterModel) SetPaused(p bool) { f.paused = p }

// View renders the footer.
func (f FooterModel) View() string {
	parts := make([]string, 0, len(f.bindings))
	for _, b := range f.bindings {
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+dimStyle.Render(h.Desc))
	}

	var status string
	switch {
	case f.done && f.failed:
		status = statusErrorStyle.Render("DONE (errors)")
	case f.done:
		status = statusDoneStyle.Render("DONE")
	case f.paused:
		status = warningStyle.Render("PAUSED")
	default:
		status = accentStyle.Render("RUNNING")
	}

	row := " " + strings.Join(parts, "  ")
	if f.width > 0 {
		return padTo(row, f.width-lipgloss.Width(status)-1) + status
	}
	return row + "  " + status
}
