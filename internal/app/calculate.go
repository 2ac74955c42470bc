package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/cli"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/tui"
)

// selectedWidth is the width to run; -verify always runs every width.
func (a *Application) selectedWidth() string {
	if a.Config.Verify {
		return "all"
	}
	return a.Config.Width
}

// runCalculate orchestrates the evaluation of the expression given on the
// command line.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	if a.Config.Expression == "" {
		fmt.Fprintln(a.ErrWriter, "Error: no expression given (see -h, -repl or -file)")
		return apperrors.ExitErrorConfig
	}
	req, err := calc.ParseRequest(a.Config.Expression)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitCode(err)
	}

	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	calculatorsToRun := orchestration.GetCalculatorsToRun(a.selectedWidth(), a.Factory)

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(req, a.Config, out)
		cli.PrintExecutionMode(calculatorsToRun, out)
	}

	results := orchestration.ExecuteEvaluations(ctx, calculatorsToRun, req)

	presenter := &cli.CLIResultPresenter{
		Request: req,
		Output: cli.OutputConfig{
			OutputFile: a.Config.OutputFile,
			Quiet:      a.Config.Quiet,
			Verbose:    a.Config.Verbose,
		},
	}
	opts := orchestration.PresentationOptions{Verbose: a.Config.Verbose, Quiet: a.Config.Quiet}
	exitCode := orchestration.AnalyzeComparisonResults(results, opts, presenter, presenter, out)

	if err := presenter.SaveErr(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		if exitCode == apperrors.ExitSuccess {
			return apperrors.ExitErrorGeneric
		}
	}
	return exitCode
}

// runBatch evaluates every line of the input file. The timeout bounds the
// whole batch.
func (a *Application) runBatch(ctx context.Context, out io.Writer) int {
	lines, code := a.readBatchFile()
	if code != apperrors.ExitSuccess {
		return code
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	calculatorsToRun := orchestration.GetCalculatorsToRun(a.selectedWidth(), a.Factory)

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
		cli.PrintExecutionMode(calculatorsToRun, out)
	}

	items := orchestration.ExecuteBatch(ctx, calculatorsToRun, lines, a.Config.Workers, progressReporter, progressOut)
	opts := orchestration.PresentationOptions{Verbose: a.Config.Verbose, Quiet: a.Config.Quiet}
	summary := cli.DisplayBatchResults(items, opts, out)

	if code := a.saveBatch(items, out); code != apperrors.ExitSuccess {
		return code
	}
	return orchestration.BatchExitCode(summary, ctx.Err())
}

// readBatchFile loads the expressions of the -file input.
func (a *Application) readBatchFile() ([]orchestration.BatchLine, int) {
	f, err := os.Open(a.Config.InputFile)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return nil, apperrors.ExitErrorConfig
	}
	defer f.Close()
	lines, err := cli.ReadBatch(f)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error reading %s: %v\n", a.Config.InputFile, err)
		return nil, apperrors.ExitErrorGeneric
	}
	return lines, apperrors.ExitSuccess
}

// saveBatch writes the batch outcomes to the -output file, if any.
func (a *Application) saveBatch(items []orchestration.BatchItem, out io.Writer) int {
	if err := cli.WriteBatchToFile(items, a.Config.OutputFile); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving results: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	if a.Config.OutputFile != "" && !a.Config.Quiet {
		fmt.Fprintf(out, "Results saved to: %s\n", a.Config.OutputFile)
	}
	return apperrors.ExitSuccess
}

// runTUI evaluates the -file input under the live dashboard, then prints
// the outcomes once the dashboard is closed.
func (a *Application) runTUI(ctx context.Context, out io.Writer) int {
	lines, code := a.readBatchFile()
	if code != apperrors.ExitSuccess {
		return code
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	exitCode, items := tui.Run(ctx, a.Subject, tui.Options{
		Calculators: orchestration.GetCalculatorsToRun(a.selectedWidth(), a.Factory),
		Lines:       lines,
		Workers:     a.Config.Workers,
		Timeout:     a.Config.Timeout,
		Verbose:     a.Config.Verbose,
		Source:      a.Config.InputFile,
		Version:     Version,
	})
	if items == nil {
		return exitCode
	}

	cli.DisplayBatchResults(items, orchestration.PresentationOptions{Verbose: a.Config.Verbose}, out)
	if code := a.saveBatch(items, out); code != apperrors.ExitSuccess {
		return code
	}
	return exitCode
}
