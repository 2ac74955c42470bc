package orchestration

import (
	"context"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/bigcalc/internal/calc"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// BatchItem is the outcome of one batch line.
type BatchItem struct {
	// Line is the 1-based line number in the input.
	Line int
	// Expression is the raw text of the line.
	Expression string
	// Results holds one entry per calculator. Empty when Err is set.
	Results []EvaluationResult
	// Err is a parse error or the context error for lines never started.
	Err error
}

// Outcome returns the first successful result, or the first error when no
// calculator succeeded. Mismatch reports whether the widths disagree.
func (b BatchItem) Outcome() (res EvaluationResult, mismatch bool, err error) {
	if b.Err != nil {
		return EvaluationResult{}, false, b.Err
	}
	c := checkConsistency(b.Results)
	if c.first == nil {
		return EvaluationResult{}, false, c.firstErr
	}
	return *c.first, c.mismatch, nil
}

// BatchLine is one expression to evaluate together with its position.
type BatchLine struct {
	Line       int
	Expression string
}

// ExecuteBatch evaluates every line on every calculator, running at most
// workers lines at a time. Results keep input order. Progress is sent once
// per finished line; the channel is sized so that sends never block.
//
// Parameters:
//   - ctx: Cancels lines that have not started yet.
//   - calculators: The calculators to run each line on.
//   - lines: The expressions to evaluate.
//   - workers: The concurrency limit; values below 1 mean 1.
//   - progressReporter: Displays progress (NullProgressReporter in quiet mode).
//   - out: The writer for progress output.
//
// Returns:
//   - []BatchItem: One item per line.
func ExecuteBatch(ctx context.Context, calculators []calc.Calculator, lines []BatchLine, workers int, progressReporter ProgressReporter, out io.Writer) []BatchItem {
	if workers < 1 {
		workers = 1
	}
	items := make([]BatchItem, len(lines))
	progressChan := make(chan ProgressUpdate, len(lines))

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(lines), out)

	var (
		mu   sync.Mutex
		done int
	)
	var g errgroup.Group
	g.SetLimit(workers)
	for i, l := range lines {
		g.Go(func() error {
			items[i] = evaluateLine(ctx, calculators, l)
			mu.Lock()
			done++
			progressChan <- ProgressUpdate{Done: done, Total: len(lines)}
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()
	return items
}

func evaluateLine(ctx context.Context, calculators []calc.Calculator, l BatchLine) BatchItem {
	item := BatchItem{Line: l.Line, Expression: l.Expression}
	if err := ctx.Err(); err != nil {
		item.Err = err
		return item
	}
	req, err := calc.ParseRequest(l.Expression)
	if err != nil {
		item.Err = err
		return item
	}
	item.Results = ExecuteEvaluations(ctx, calculators, req)
	return item
}

// BatchSummary counts the outcomes of a batch.
type BatchSummary struct {
	Succeeded  int
	Failed     int
	Mismatched int
	FirstErr   error
}

// SummarizeBatch tallies items.
func SummarizeBatch(items []BatchItem) BatchSummary {
	var s BatchSummary
	for _, item := range items {
		_, mismatch, err := item.Outcome()
		switch {
		case err != nil:
			s.Failed++
			if s.FirstErr == nil {
				s.FirstErr = err
			}
		case mismatch:
			s.Mismatched++
		default:
			s.Succeeded++
		}
	}
	return s
}

// BatchExitCode maps a batch summary to the process exit code. A width
// mismatch wins over everything else; an expired or canceled ctxErr wins
// over ordinary line failures.
func BatchExitCode(s BatchSummary, ctxErr error) int {
	switch {
	case s.Mismatched > 0:
		return apperrors.ExitErrorMismatch
	case apperrors.IsContextError(ctxErr):
		return apperrors.ExitCode(ctxErr)
	case s.Failed > 0:
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
