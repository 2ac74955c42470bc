package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/format"
)

// HeaderModel renders the top bar: title, input file, elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	source    string
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version, source string) HeaderModel {
	return HeaderModel{startTime: time.Now(), version: version, source: source}
}

// SetDone freezes the elapsed timer.
func (h *HeaderModel) SetDone() { h.endTime = time.Now() }

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) { h.width = w }

func (h HeaderModel) elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	title := "bigcalc monitor"
	if h.version != "" && h.version != "dev" {
		title += " " + h.version
	}
	row := titleStyle.Render(title)
	if h.source != "" {
		row += dimStyle.Render(" | ") + accentStyle.Render(h.source)
	}
	row += dimStyle.Render(" | ") +
		accentStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.elapsed())))

	if h.width > 0 {
		return headerStyle.Width(h.width).MaxWidth(h.width).Render(row)
	}
	return headerStyle.Render(row)
}

// padTo right-pads s with spaces to a visible width of w.
func padTo(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return s + fmt.Sprintf("%*s", gap, "")
	}
	return s
}
