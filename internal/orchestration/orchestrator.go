package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/bigcalc/internal/calc"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

const tracerName = "github.com/agbru/bigcalc/internal/orchestration"

// ExecuteEvaluations runs req on every calculator concurrently and collects
// one result per calculator, in the order given. A failing calculator does
// not cancel the others: every width reports its own outcome.
//
// Each evaluation runs in its own span of the global OpenTelemetry tracer
// provider, which is a no-op unless the caller installs one.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - calculators: The calculators to execute.
//   - req: The request to evaluate.
//
// Returns:
//   - []EvaluationResult: One result per calculator.
func ExecuteEvaluations(ctx context.Context, calculators []calc.Calculator, req calc.Request) []EvaluationResult {
	tracer := otel.Tracer(tracerName)
	results := make([]EvaluationResult, len(calculators))

	var g errgroup.Group
	for i, c := range calculators {
		g.Go(func() error {
			spanCtx, span := tracer.Start(ctx, "bigcalc.evaluate")
			span.SetAttributes(
				attribute.String("bigcalc.calculator", c.Name()),
				attribute.Int("bigcalc.width", int(c.Width())),
				attribute.String("bigcalc.op", string(req.Op)),
			)
			defer span.End()

			start := time.Now()
			res, err := c.Evaluate(spanCtx, req)
			results[i] = EvaluationResult{Name: c.Name(), Result: res, Duration: time.Since(start), Err: err}
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// consistency summarizes a set of results for the same request.
type consistency struct {
	first        *EvaluationResult
	firstErr     error
	successCount int
	mismatch     bool
}

func checkConsistency(results []EvaluationResult) consistency {
	var c consistency
	for i := range results {
		if results[i].Err != nil {
			if c.firstErr == nil {
				c.firstErr = results[i].Err
			}
			continue
		}
		c.successCount++
		if c.first == nil {
			c.first = &results[i]
		} else if !results[i].Result.Equal(c.first.Result) {
			c.mismatch = true
		}
	}
	if c.first != nil && c.first.Result.Op.WidthDependent() {
		c.mismatch = false
	}
	return c
}

// AnalyzeComparisonResults processes the results of one request on several
// calculators and generates a summary report.
//
// It sorts the results by success then execution time, displays a
// comparison table when more than one calculator ran, validates that all
// successful widths agree and presents the value.
//
// Parameters:
//   - results: The slice of evaluation results to analyze.
//   - opts: Presentation options.
//   - presenter: The result presenter for display formatting.
//   - errHandler: Reports the failure when no calculator succeeded.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []EvaluationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	compare := len(results) > 1
	if compare && !opts.Quiet {
		presenter.PresentComparisonTable(results, out)
	}

	c := checkConsistency(results)
	if c.successCount == 0 {
		if compare && !opts.Quiet {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No width could complete the evaluation.\n")
		}
		return errHandler.HandleError(c.firstErr, 0, out)
	}

	if c.mismatch {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the results of the digit widths.\n")
		return apperrors.ExitErrorMismatch
	}

	if compare && !opts.Quiet {
		if c.first.Result.Op.WidthDependent() {
			fmt.Fprintf(out, "\nGlobal Status: Success. %s results depend on the digit width.\n", c.first.Result.Op)
		} else {
			fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
		}
	}
	presenter.PresentResult(*c.first, opts, out)
	return apperrors.ExitSuccess
}
