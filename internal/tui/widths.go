package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/sysmon"
)

// historyLimit is the number of resource samples kept for the sparklines.
const historyLimit = 60

// WidthStats aggregates the observations of one calculator.
type WidthStats struct {
	Ops    int
	Errors int
	Total  time.Duration
	Last   time.Duration
}

// Average returns the mean evaluation time.
func (s WidthStats) Average() time.Duration {
	if s.Ops == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Ops)
}

// WidthsModel shows per-width evaluation statistics and resource usage.
type WidthsModel struct {
	names []string
	stats map[string]*WidthStats

	heapAlloc  uint64
	goroutines int
	cpu        *History
	mem        *History

	width  int
	height int
}

// NewWidthsModel creates the panel for the given calculator names, kept in
// that order.
func NewWidthsModel(names []string) WidthsModel {
	m := WidthsModel{
		names: names,
		stats: make(map[string]*WidthStats, len(names)),
		cpu:   NewHistory(historyLimit),
		mem:   NewHistory(historyLimit),
	}
	for _, n := range names {
		m.stats[n] = &WidthStats{}
	}
	return m
}

// SetSize updates dimensions.
func (m *WidthsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	if spark := w - 20; spark > 0 {
		m.cpu.SetLimit(spark)
		m.mem.SetLimit(spark)
	}
}

// Observe records one evaluation. Unknown calculator names are appended.
func (m *WidthsModel) Observe(o calc.Observation) {
	s, ok := m.stats[o.Calculator]
	if !ok {
		s = &WidthStats{}
		m.stats[o.Calculator] = s
		m.names = append(m.names, o.Calculator)
	}
	s.Ops++
	s.Total += o.Duration
	s.Last = o.Duration
	if o.Err != nil {
		s.Errors++
	}
}

// Stats returns the statistics of one calculator.
func (m WidthsModel) Stats(name string) WidthStats {
	if s, ok := m.stats[name]; ok {
		return *s
	}
	return WidthStats{}
}

// UpdateSys records a resource snapshot.
func (m *WidthsModel) UpdateSys(s sysmon.Stats) {
	m.heapAlloc = s.HeapAlloc
	m.goroutines = s.Goroutines
	m.cpu.Push(s.CPUPercent)
	m.mem.Push(s.MemPercent)
}

// Reset clears the statistics but keeps the resource history.
func (m *WidthsModel) Reset() {
	for _, n := range m.names {
		m.stats[n] = &WidthStats{}
	}
}

// View renders the panel.
func (m WidthsModel) View() string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf(" %-6s %8s %6s %10s %10s", "Width", "Ops", "Errors", "Avg", "Last")))
	for _, n := range m.names {
		s := m.stats[n]
		errCell := fmt.Sprintf("%6d", s.Errors)
		if s.Errors > 0 {
			errCell = errorStyle.Render(errCell)
		}
		fmt.Fprintf(&b, "\n %s %8s %s %10s %10s",
			accentStyle.Render(fmt.Sprintf("%-6s", n)),
			format.FormatCount(s.Ops), errCell,
			durationCell(s.Average()), durationCell(s.Last))
	}

	b.WriteString("\n\n")
	fmt.Fprintf(&b, " %s %s %5.1f%%\n", dimStyle.Render("CPU"), cpuSparkStyle.Render(RenderSparkline(m.cpu.Values())), m.cpu.Last())
	fmt.Fprintf(&b, " %s %s %5.1f%%\n", dimStyle.Render("MEM"), memSparkStyle.Render(RenderSparkline(m.mem.Values())), m.mem.Last())
	fmt.Fprintf(&b, " %s %s  %s %d",
		dimStyle.Render("Heap:"), accentStyle.Render(format.FormatBytes(m.heapAlloc)),
		dimStyle.Render("Goroutines:"), m.goroutines)

	style := panelStyle
	if m.width > 2 {
		style = style.Width(m.width - 2)
	}
	if m.height > 2 {
		style = style.Height(m.height - 2)
	}
	return style.Render(b.String())
}

func durationCell(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	return format.FormatExecutionDuration(d)
}
