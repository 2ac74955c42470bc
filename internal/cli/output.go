// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult], [FormatValue].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode prints the bare value only.
	Quiet bool
	// Verbose shows the full value without truncation.
	Verbose bool
}

// FormatValue renders a decimal value with thousands separators, truncated
// to its first and last DisplayEdges digits when it exceeds TruncationLimit
// digits and verbose is false. The second return reports truncation.
func FormatValue(value string, verbose bool) (string, bool) {
	digits := strings.TrimPrefix(value, "-")
	if verbose || len(digits) <= TruncationLimit {
		return format.FormatNumberString(value), false
	}
	sign := value[:len(value)-len(digits)]
	return fmt.Sprintf("%s%s...%s", sign, digits[:DisplayEdges], digits[len(digits)-DisplayEdges:]), true
}

// decimalDigits counts the decimal digits of a value, ignoring its sign.
func decimalDigits(value string) int {
	return len(strings.TrimPrefix(value, "-"))
}

// DisplayResult prints the outcome of an evaluation: the expression, its
// value and a short analysis (time, decimal digits, native digits).
//
// Parameters:
//   - req: The evaluated request; its String form labels the value.
//   - result: The evaluation outcome.
//   - verbose: Disables truncation of long values.
//   - out: The destination writer.
func DisplayResult(req calc.Request, result orchestration.EvaluationResult, verbose bool, out io.Writer) {
	r := result.Result
	fmt.Fprintf(out, "\n%s\n", ui.Header("Result"))
	fmt.Fprintf(out, "Calculator:      %s%s%s\n", ui.ColorCyan(), result.Name, ui.ColorReset())
	fmt.Fprintf(out, "Evaluation time: %s%s%s\n", ui.ColorYellow(), format.FormatExecutionDuration(result.Duration), ui.ColorReset())
	fmt.Fprintf(out, "Decimal digits:  %s%s%s\n", ui.ColorCyan(), format.FormatCount(decimalDigits(r.Value)), ui.ColorReset())
	fmt.Fprintf(out, "Native digits:   %s%s%s\n", ui.ColorGrey(), format.FormatCount(r.Digits), ui.ColorReset())

	value, truncated := FormatValue(r.Value, verbose)
	fmt.Fprintf(out, "\n%s = %s%s%s\n", req, ui.ColorGreen(), value, ui.ColorReset())
	if r.Op == calc.OpDivMod {
		rem, remTruncated := FormatValue(r.Remainder, verbose)
		truncated = truncated || remTruncated
		fmt.Fprintf(out, "remainder = %s%s%s\n", ui.ColorGreen(), rem, ui.ColorReset())
	}
	if truncated {
		fmt.Fprintf(out, "%s(truncated) Tip: use -v to print the full value.%s\n", ui.ColorYellow(), ui.ColorReset())
	}
}

// FormatQuietResult formats a result for quiet mode output: the value, and
// for divmod the remainder separated by a space.
func FormatQuietResult(r calc.Result) string {
	if r.Op == calc.OpDivMod {
		return r.Value + " " + r.Remainder
	}
	return r.Value
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
func DisplayQuietResult(out io.Writer, r calc.Result) {
	fmt.Fprintln(out, FormatQuietResult(r))
}

// WriteResultToFile writes an evaluation result to a file with a small
// commented header.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(req calc.Request, result orchestration.EvaluationResult, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	file, err := createOutputFile(config.OutputFile)
	if err != nil {
		return err
	}
	defer file.Close()

	r := result.Result
	fmt.Fprintf(file, "# bigcalc result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Calculator: %s\n", result.Name)
	fmt.Fprintf(file, "# Duration: %s\n", result.Duration)
	fmt.Fprintf(file, "# Digits: %d\n", decimalDigits(r.Value))
	fmt.Fprintf(file, "\n%s =\n%s\n", req, r.Value)
	if r.Op == calc.OpDivMod {
		fmt.Fprintf(file, "remainder =\n%s\n", r.Remainder)
	}
	return nil
}

// createOutputFile creates path, including missing parent directories.
func createOutputFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, nil
}

// DisplayResultWithConfig displays a result with the given output
// configuration and saves it when an output file is configured.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, req calc.Request, result orchestration.EvaluationResult, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, result.Result)
	} else {
		DisplayResult(req, result, config.Verbose, out)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(req, result, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}
	return nil
}
