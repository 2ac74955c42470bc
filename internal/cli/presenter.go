package cli

import (
	"fmt"
	"io"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/agbru/bigcalc/internal/calc"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter for CLI output.
// It wraps the DisplayProgress function to provide a spinner and progress bar
// display during batch runs.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for a running batch.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, total int, out io.Writer) {
	DisplayProgress(wg, progressChan, total, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
// Request labels the presented value; Output selects the file to save it to.
type CLIResultPresenter struct {
	Request calc.Request
	Output  OutputConfig

	saveErr error
}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter   = (*CLIResultPresenter)(nil)
	_ orchestration.DurationFormatter = (*CLIResultPresenter)(nil)
	_ orchestration.ErrorHandler      = (*CLIResultPresenter)(nil)
)

// PresentComparisonTable displays the comparison summary table with
// calculator names, durations, and status in a formatted tabular layout.
// Uses manual padding, counted in runes, to correctly handle ANSI color
// codes and the µ sign.
func (p *CLIResultPresenter) PresentComparisonTable(results []orchestration.EvaluationResult, out io.Writer) {
	fmt.Fprintf(out, "\n%s\n", ui.Header("Comparison Summary"))

	const (
		nameHeader     = "Width"
		durationHeader = "Duration"
	)
	maxNameLen := len(nameHeader)
	maxDurationLen := len(durationHeader)
	for _, res := range results {
		maxNameLen = max(maxNameLen, len(res.Name))
		maxDurationLen = max(maxDurationLen, utf8.RuneCountInString(p.FormatDuration(res.Duration)))
	}

	fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %sStatus%s\n",
		ui.ColorUnderline(), nameHeader, ui.ColorReset(), padRight("", maxNameLen-len(nameHeader)),
		ui.ColorUnderline(), durationHeader, ui.ColorReset(), padRight("", maxDurationLen-len(durationHeader)),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		duration := p.FormatDuration(res.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-utf8.RuneCountInString(duration)),
			status)
	}
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult displays the final value and saves it when an output file
// is configured. A save failure is kept for SaveErr.
func (p *CLIResultPresenter) PresentResult(result orchestration.EvaluationResult, opts orchestration.PresentationOptions, out io.Writer) {
	cfg := p.Output
	cfg.Quiet = opts.Quiet
	cfg.Verbose = opts.Verbose
	p.saveErr = DisplayResultWithConfig(out, p.Request, result, cfg)
}

// SaveErr returns the error of the last output file write, if any.
func (p *CLIResultPresenter) SaveErr() error {
	return p.saveErr
}

// FormatDuration formats a duration for display; zero durations are shown
// as "< 1µs".
func (p *CLIResultPresenter) FormatDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// HandleError handles evaluation errors and returns an appropriate exit code.
func (p *CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}
