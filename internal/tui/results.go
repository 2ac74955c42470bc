package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
)

// ResultsModel shows batch progress, then the per-line outcomes with
// scrolling.
type ResultsModel struct {
	done    int
	total   int
	items   []orchestration.BatchItem
	summary orchestration.BatchSummary
	final   bool
	verbose bool
	offset  int

	width  int
	height int
}

// NewResultsModel creates the panel for a batch of total lines.
func NewResultsModel(total int, verbose bool) ResultsModel {
	return ResultsModel{total: total, verbose: verbose}
}

// SetSize updates dimensions.
func (m *ResultsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.clampOffset()
}

// SetProgress records Done of Total lines.
func (m *ResultsModel) SetProgress(done, total int) {
	m.done = done
	if total > 0 {
		m.total = total
	}
}

// SetItems stores the final outcomes.
func (m *ResultsModel) SetItems(items []orchestration.BatchItem, summary orchestration.BatchSummary) {
	m.items = items
	m.summary = summary
	m.final = true
	m.done = len(items)
	m.offset = 0
}

// Reset returns to the in-progress state.
func (m *ResultsModel) Reset() {
	m.done = 0
	m.items = nil
	m.summary = orchestration.BatchSummary{}
	m.final = false
	m.offset = 0
}

// Scroll moves the visible window by delta lines.
func (m *ResultsModel) Scroll(delta int) {
	m.offset += delta
	m.clampOffset()
}

// pageSize is the number of item rows that fit in the panel.
func (m ResultsModel) pageSize() int {
	// borders, progress line, blank line, summary line
	return max(m.height-5, 1)
}

func (m *ResultsModel) clampOffset() {
	m.offset = min(m.offset, len(m.items)-m.pageSize())
	m.offset = max(m.offset, 0)
}

func (m ResultsModel) fraction() float64 {
	if m.total == 0 {
		return 1
	}
	return float64(m.done) / float64(m.total)
}

// View renders the panel.
func (m ResultsModel) View() string {
	inner := max(m.width-4, 10)
	barWidth := max(inner-30, 10)

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %6.2f%%  %s/%s lines",
		accentStyle.Render(format.ProgressBar(m.fraction(), barWidth)), m.fraction()*100,
		format.FormatCount(m.done), format.FormatCount(m.total))

	if !m.final {
		b.WriteString("\n\n" + dimStyle.Render("Evaluating..."))
	} else {
		b.WriteString("\n")
		end := min(m.offset+m.pageSize(), len(m.items))
		for _, item := range m.items[m.offset:end] {
			b.WriteString("\n" + m.renderItem(item, inner))
		}
		fmt.Fprintf(&b, "\n%s %s  %s %s  %s %s",
			dimStyle.Render("Succeeded:"), successStyle.Render(format.FormatCount(m.summary.Succeeded)),
			dimStyle.Render("Failed:"), errorStyle.Render(format.FormatCount(m.summary.Failed)),
			dimStyle.Render("Mismatched:"), warningStyle.Render(format.FormatCount(m.summary.Mismatched)))
	}

	style := panelStyle
	if m.width > 2 {
		style = style.Width(m.width - 2)
	}
	if m.height > 2 {
		style = style.Height(m.height - 2)
	}
	return style.Render(b.String())
}

func (m ResultsModel) renderItem(item orchestration.BatchItem, width int) string {
	value := cli.FormatBatchLine(item, m.verbose)
	valueStyle := successStyle
	if strings.HasPrefix(value, "error:") {
		valueStyle = errorStyle
	}
	// "nnnn  " + expr + " => " + value
	room := max(width-10, 2)
	expr := truncate(item.Expression, room/2)
	value = truncate(value, room-len([]rune(expr)))
	return fmt.Sprintf("%s  %s => %s", dimStyle.Render(fmt.Sprintf("%4d", item.Line)), expr, valueStyle.Render(value))
}

// truncate cuts s to at most w runes, marking the cut with an ellipsis.
func truncate(s string, w int) string {
	runes := []rune(s)
	if len(runes) <= w {
		return s
	}
	if w <= 1 {
		return "…"
	}
	return string(runes[:w-1]) + "…"
}
