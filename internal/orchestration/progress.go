package orchestration

import (
	"time"

	"github.com/agbru/bigcalc/internal/format"
)

// ProgressAggregator turns the stream of batch progress updates into a
// fraction and an ETA for display. It wraps format.BatchProgress.
type ProgressAggregator struct {
	state *format.BatchProgress
	total int
}

// NewProgressAggregator creates a new aggregator for a batch of total
// lines. Returns nil if total <= 0.
func NewProgressAggregator(total int) *ProgressAggregator {
	if total <= 0 {
		return nil
	}
	return &ProgressAggregator{state: format.NewBatchProgress(total), total: total}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	// Done is the number of finished lines.
	Done int
	// Total is the batch size.
	Total int
	// Fraction is Done/Total.
	Fraction float64
	// ETA is the estimated time remaining.
	ETA time.Duration
}

// Update records one finished line and returns the aggregated state. The
// update's own counters are informational; the aggregator counts calls so
// that reordered updates cannot move progress backwards.
func (a *ProgressAggregator) Update(ProgressUpdate) AggregatedProgress {
	fraction := a.state.Advance()
	done, total := a.state.Done()
	return AggregatedProgress{Done: done, Total: total, Fraction: fraction, ETA: a.state.ETA()}
}

// Fraction returns the current fraction without updating.
// Useful for periodic refresh between updates (e.g., CLI ticker).
func (a *ProgressAggregator) Fraction() float64 {
	return a.state.Fraction()
}

// GetETA returns the current ETA estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.ETA()
}

// Total returns the batch size.
func (a *ProgressAggregator) Total() int {
	return a.total
}

// DrainChannel reads all updates from the channel without processing.
// Use this when total <= 0 and updates should be discarded.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
