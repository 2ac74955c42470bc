package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the user.
// It shows the expression, the timeout, environment details and limits.
//
// Parameters:
//   - req: The request about to be evaluated.
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(req calc.Request, cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "%s\n", ui.Header("Execution Configuration"))
	fmt.Fprintf(out, "Evaluating %s%s%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), req, ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Limits: shift count <= %s%s%s bits",
		ui.ColorCyan(), format.FormatCount(int(cfg.MaxShift)), ui.ColorReset())
	if cfg.MaxMulDigits > 0 {
		fmt.Fprintf(out, ", mul/div operands <= %s%s%s digits",
			ui.ColorCyan(), format.FormatCount(cfg.MaxMulDigits), ui.ColorReset())
	}
	fmt.Fprintln(out, ".")
}

// PrintExecutionMode displays the execution mode (single width vs comparison).
//
// Parameters:
//   - calculators: The calculators that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(calculators []calc.Calculator, out io.Writer) {
	var modeDesc string
	switch len(calculators) {
	case 0:
		modeDesc = "No calculator selected"
	case 1:
		modeDesc = fmt.Sprintf("Single evaluation with %s%d-bit%s digits",
			ui.ColorGreen(), calculators[0].Width(), ui.ColorReset())
	default:
		modeDesc = fmt.Sprintf("Parallel comparison of %d digit widths", len(calculators))
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n%s\n", ui.Header("Starting Execution"))
}
