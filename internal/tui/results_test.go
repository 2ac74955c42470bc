package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/orchestration"
)

func okItem(line int, expr, value string) orchestration.BatchItem {
	return orchestration.BatchItem{
		Line:       line,
		Expression: expr,
		Results: []orchestration.EvaluationResult{
			{Name: "w32", Result: calc.Result{Calculator: "w32", Op: calc.OpAdd, Value: value, Digits: len(value)}},
		},
	}
}

func TestResultsModel_InProgress(t *testing.T) {
	m := NewResultsModel(4, false)
	m.SetSize(80, 20)
	m.SetProgress(1, 4)

	view := m.View()
	if !strings.Contains(view, "1/4 lines") {
		t.Errorf("View() should show progress\n%s", view)
	}
	if !strings.Contains(view, "Evaluating...") {
		t.Errorf("View() should show the running state\n%s", view)
	}
	if f := m.fraction(); f != 0.25 {
		t.Errorf("fraction() = %v, want 0.25", f)
	}
}

func TestResultsModel_Final(t *testing.T) {
	items := []orchestration.BatchItem{
		okItem(1, "1 + 2", "3"),
		{Line: 2, Expression: "1 plus", Err: errors.New("cannot parse")},
	}
	m := NewResultsModel(2, false)
	m.SetSize(80, 20)
	m.SetItems(items, orchestration.SummarizeBatch(items))

	view := m.View()
	for _, want := range []string{"1 + 2 => 3", "1 plus => error: cannot parse", "Succeeded:", "Mismatched:", "2/2 lines"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() should contain %q\n%s", want, view)
		}
	}

	m.Reset()
	if m.final || m.done != 0 || !strings.Contains(m.View(), "Evaluating...") {
		t.Error("Reset() should return to the running state")
	}
}

func TestResultsModel_Scroll(t *testing.T) {
	items := make([]orchestration.BatchItem, 20)
	for i := range items {
		items[i] = okItem(i+1, fmt.Sprintf("%d + 0", i), fmt.Sprint(i))
	}
	m := NewResultsModel(len(items), false)
	m.SetSize(80, 10) // pageSize 5
	m.SetItems(items, orchestration.SummarizeBatch(items))

	tests := []struct {
		name  string
		delta int
		want  int
	}{
		{"up at top", -1, 0},
		{"down", 3, 3},
		{"past the end", 100, 15},
		{"back", -4, 11},
		{"past the start", -100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.Scroll(tt.delta)
			if m.offset != tt.want {
				t.Errorf("offset = %d, want %d", m.offset, tt.want)
			}
		})
	}
}

func TestResultsModel_ScrollShortList(t *testing.T) {
	m := NewResultsModel(1, false)
	m.SetSize(80, 20)
	items := []orchestration.BatchItem{okItem(1, "1 + 1", "2")}
	m.SetItems(items, orchestration.SummarizeBatch(items))
	m.Scroll(5)
	if m.offset != 0 {
		t.Errorf("offset = %d, want 0 when every row fits", m.offset)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s    string
		w    int
		want string
	}{
		{"12345", 10, "12345"},
		{"12345", 5, "12345"},
		{"123456", 5, "1234…"},
		{"123456", 1, "…"},
		{"héllo wörld", 6, "héllo…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.s, tt.w); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.w, got, tt.want)
		}
	}
}
