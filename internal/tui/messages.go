package tui

import (
	"time"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/sysmon"
)

// ProgressMsg reports that Done of Total batch lines are evaluated.
type ProgressMsg struct {
	Done  int
	Total int
}

// ObservationMsg carries one finished evaluation from a calculator.
type ObservationMsg calc.Observation

// BatchDoneMsg is sent when a batch run returns.
type BatchDoneMsg struct {
	Items      []orchestration.BatchItem
	Summary    orchestration.BatchSummary
	ExitCode   int
	Duration   time.Duration
	Generation uint64
}

// TickMsg drives the periodic resource sampling.
type TickMsg time.Time

// SysStatsMsg carries a resource snapshot.
type SysStatsMsg sysmon.Stats

// ContextCancelledMsg is sent when the session context ends.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
