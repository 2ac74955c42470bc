package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/bigcalc/internal/calc"
)

// EvaluationResult is the outcome of one request on one calculator. It is
// the shared domain type between orchestration and presentation layers.
type EvaluationResult struct {
	// Name is the calculator that ran, e.g. "w32".
	Name string
	// Result is the computed value. It is the zero Result if Err is set.
	Result calc.Result
	// Duration is the wall time of the evaluation.
	Duration time.Duration
	// Err contains any error that occurred during the evaluation.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Verbose bool
	Quiet   bool
}

// ProgressUpdate reports batch progress: Done of Total lines evaluated.
type ProgressUpdate struct {
	Done  int
	Total int
}

// ProgressReporter defines the interface for displaying batch progress.
// This interface decouples the orchestration layer from the presentation
// layer: implementations draw spinners or bars while the orchestration
// layer coordinates the evaluations.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed, then
	// calls wg.Done.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving progress updates.
	//   - total: The number of lines in the batch.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer) {
	f(wg, progressChan, total, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Used in quiet mode and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
	}
}

// ResultPresenter defines the interface for presenting evaluation results,
// allowing different output formats without modifying the orchestration
// logic.
type ResultPresenter interface {
	// PresentComparisonTable displays one row per calculator.
	PresentComparisonTable(results []EvaluationResult, out io.Writer)

	// PresentResult displays the final value.
	PresentResult(result EvaluationResult, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler handles evaluation errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
