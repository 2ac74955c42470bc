// Package config parses and validates the bigcalc command-line configuration.
//
// Values are resolved in this order, highest priority first: explicit
// command-line flags, BIGCALC_* environment variables, hardware-derived
// limits (see limits.go), static defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// EnvPrefix is prepended to every environment variable read by the
// configuration layer.
const EnvPrefix = "BIGCALC_"

// Default values applied when neither a flag nor an environment variable is set.
const (
	DefaultWidth     = "all"
	DefaultTimeout   = 1 * time.Minute
	DefaultPort      = "8080"
	DefaultMaxShift     = 1 << 24
	DefaultMaxDigits    = 100_000
	DefaultMaxMulDigits = 20_000
)

// maxShiftCeiling is the largest -max-shift accepted. Larger counts would
// overflow the digit count of the shifted result.
const maxShiftCeiling = math.MaxInt / 2

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Width selects the digit width to evaluate with ("w8".."w64" or "all").
	Width string
	// Timeout bounds a single evaluation or a whole batch run.
	Timeout time.Duration
	// InputFile, when set, switches to batch mode: one expression per line.
	InputFile string
	// OutputFile receives the result(s) in addition to stdout.
	OutputFile string
	// Quiet prints bare results only.
	Quiet bool
	// Verbose prints full values without truncation.
	Verbose bool
	// Verify evaluates on every width and reports disagreements.
	Verify bool
	// REPL starts the interactive prompt.
	REPL bool
	// TUI shows a live dashboard while a batch file is evaluated.
	TUI bool
	// ServerMode starts the HTTP API instead of evaluating.
	ServerMode bool
	// Port is the listening port for the HTTP API.
	Port string
	// NoColor disables ANSI colors.
	NoColor bool
	// ShowVersion prints the version and exits.
	ShowVersion bool
	// Completion names a shell to print a completion script for.
	Completion string
	// Workers caps concurrent evaluations in batch mode. Zero means derived
	// from the CPU count.
	Workers int
	// MaxShift caps the shift count accepted by shl. Right shifts are not
	// limited since they only shrink the operand.
	MaxShift uint64
	// MaxDigits caps the decimal length of an operand accepted by the server.
	MaxDigits int
	// MaxMulDigits caps the decimal length of the operands of mul, div, mod
	// and divmod, whose cost grows with the product of the lengths. Zero
	// disables the check.
	MaxMulDigits int
	// Expression is the positional arguments joined by spaces.
	Expression string
}

// ParseConfig parses the command-line arguments into an AppConfig, applies
// environment overrides for flags that were not set explicitly and
// validates the result.
//
// Parameters:
//   - programName: The name reported in usage output.
//   - args: The command-line arguments, without the program name.
//   - errorWriter: Where usage and parse errors are written.
//   - availableWidths: The registered calculator names, used for validation.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when -h was given, a ConfigError otherwise.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableWidths []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [flags] [expression]\n\n", programName)
		fmt.Fprintf(errorWriter, "Examples:\n  %s 12345678901234567890 '*' 98765432109876543210\n  %s -width w8 -verify div 1000000 7\n\nFlags:\n", programName, programName)
		fs.PrintDefaults()
	}

	config := AppConfig{}
	widthHelp := fmt.Sprintf("Digit width to use (%s, or all).", strings.Join(availableWidths, ", "))
	fs.StringVar(&config.Width, "width", DefaultWidth, widthHelp)
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum time for an evaluation or a batch.")
	fs.StringVar(&config.InputFile, "file", "", "Evaluate one expression per line from this file.")
	fs.StringVar(&config.OutputFile, "output", "", "Also write results to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Also write results to this file (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print bare results only.")
	fs.BoolVar(&config.Quiet, "q", false, "Print bare results only (shorthand).")
	fs.BoolVar(&config.Verbose, "verbose", false, "Print full values without truncation.")
	fs.BoolVar(&config.Verbose, "v", false, "Print full values without truncation (shorthand).")
	fs.BoolVar(&config.Verify, "verify", false, "Evaluate on every width and compare.")
	fs.BoolVar(&config.REPL, "repl", false, "Start the interactive prompt.")
	fs.BoolVar(&config.TUI, "tui", false, "Show a live dashboard while evaluating -file.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start the HTTP API.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Listening port for -server.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print the version and exit.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script (bash, zsh, fish, powershell).")
	fs.IntVar(&config.Workers, "workers", 0, "Concurrent evaluations in batch mode (0 = auto).")
	fs.Uint64Var(&config.MaxShift, "max-shift", DefaultMaxShift, "Largest shift count accepted by shl.")
	fs.IntVar(&config.MaxDigits, "max-digits", DefaultMaxDigits, "Largest operand length (decimal digits) accepted by the server.")
	fs.IntVar(&config.MaxMulDigits, "max-mul-digits", DefaultMaxMulDigits, "Largest operand length (decimal digits) of mul, div, mod and divmod (0 = no limit).")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	config.Expression = strings.Join(fs.Args(), " ")

	applyEnvOverrides(&config, fs)

	if err := config.Validate(availableWidths); err != nil {
		fmt.Fprintln(errorWriter, "Error:", err)
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the semantic consistency of the configuration.
//
// Returns:
//   - error: A ConfigError describing the first problem found, or nil.
func (c AppConfig) Validate(availableWidths []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("workers must be zero or positive, got %d", c.Workers)
	}
	if c.MaxDigits <= 0 {
		return apperrors.NewConfigError("max-digits must be positive, got %d", c.MaxDigits)
	}
	if c.MaxMulDigits < 0 {
		return apperrors.NewConfigError("max-mul-digits must be zero or positive, got %d", c.MaxMulDigits)
	}
	if c.MaxShift > maxShiftCeiling {
		return apperrors.NewConfigError("max-shift must be at most %d, got %d", uint64(maxShiftCeiling), c.MaxShift)
	}
	if c.Width != "all" && !slices.Contains(availableWidths, c.Width) {
		return apperrors.NewConfigError("unknown width %q (available: %s, all)", c.Width, strings.Join(availableWidths, ", "))
	}
	if c.ServerMode && (c.REPL || c.InputFile != "") {
		return apperrors.NewConfigError("-server cannot be combined with -repl or -file")
	}
	if c.REPL && c.InputFile != "" {
		return apperrors.NewConfigError("-repl cannot be combined with -file")
	}
	if c.TUI && c.InputFile == "" {
		return apperrors.NewConfigError("-tui needs a batch file (-file)")
	}
	if c.TUI && c.Quiet {
		return apperrors.NewConfigError("-tui and -quiet are mutually exclusive")
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("-quiet and -verbose are mutually exclusive")
	}
	return nil
}
