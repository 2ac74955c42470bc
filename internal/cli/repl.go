package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/sysmon"
	"github.com/agbru/bigcalc/internal/ui"
)

// lastResultToken stands for the previous result in an expression.
const lastResultToken = "_"

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Width is the initial calculator name; "all" or empty selects the first.
	Width string
	// Timeout is the maximum duration for each evaluation.
	Timeout time.Duration
	// Verify starts the session with cross-width verification enabled.
	Verify bool
	// Verbose disables truncation of long values.
	Verbose bool
}

// REPL represents an interactive evaluation session.
type REPL struct {
	config       REPLConfig
	factory      calc.CalculatorFactory
	currentWidth string
	last         string
	in           io.Reader
	out          io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - factory: Provides the available calculators.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(factory calc.CalculatorFactory, config REPLConfig) *REPL {
	current := config.Width
	if current == "" || current == "all" {
		if names := factory.List(); len(names) > 0 {
			current = names[0]
		}
		if current != "" && config.Width == "all" {
			config.Verify = true
		}
	}
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}

	return &REPL{
		config:       config,
		factory:      factory,
		currentWidth: current,
		in:           os.Stdin,
		out:          os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive session. It reads commands until exit, EOF
// or ctx cancellation.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for ctx.Err() == nil {
		fmt.Fprint(r.out, ui.ColorGreen()+"big> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && input != "") {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !r.processCommand(ctx, input) {
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s\n\n", ui.Banner("bigcalc - Interactive Mode",
		fmt.Sprintf("widths: %s", strings.Join(r.factory.List(), ", ")),
		"use _ for the previous result"))
}

func (r *REPL) printHelp() {
	y, rst := ui.ColorYellow(), ui.ColorReset()
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), rst)
	fmt.Fprintf(r.out, "  %s<expr>%s         - Evaluate, e.g. 12 * 34, divmod 17 5, ~5\n", y, rst)
	fmt.Fprintf(r.out, "  %swidth <name>%s   - Change digit width (%s)\n", y, rst, strings.Join(r.factory.List(), ", "))
	fmt.Fprintf(r.out, "  %sverify%s         - Toggle evaluation on every width\n", y, rst)
	fmt.Fprintf(r.out, "  %sverify <expr>%s  - Evaluate one expression on every width\n", y, rst)
	fmt.Fprintf(r.out, "  %sdigits <n>%s     - Show the native digits of n\n", y, rst)
	fmt.Fprintf(r.out, "  %sstatus%s         - Display current configuration\n", y, rst)
	fmt.Fprintf(r.out, "  %shelp%s           - Display this help\n", y, rst)
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s    - Exit interactive mode\n", y, rst, y, rst)
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "width", "w":
		r.cmdWidth(args)
	case "verify":
		if len(args) > 0 {
			r.evaluate(ctx, strings.Join(args, " "), true)
			break
		}
		r.config.Verify = !r.config.Verify
		fmt.Fprintf(r.out, "Verification: %s%s%s\n", ui.ColorGreen(), onOff(r.config.Verify), ui.ColorReset())
	case "digits", "dump":
		r.cmdDigits(args)
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		r.evaluate(ctx, input, r.config.Verify)
	}
	return true
}

func (r *REPL) cmdWidth(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: width <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available widths: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	name := strings.ToLower(args[0])
	if _, err := r.factory.Get(name); err != nil {
		fmt.Fprintf(r.out, "%sUnknown width: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available widths: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	r.currentWidth = name
	fmt.Fprintf(r.out, "Width changed to: %s%s%s\n", ui.ColorGreen(), name, ui.ColorReset())
}

func (r *REPL) cmdDigits(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: digits <n>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	operand, err := r.substitute(args)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	c, err := r.factory.Get(r.currentWidth)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	dump, err := c.Dump(operand[0])
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "  %s%s%s %s\n", ui.ColorCyan(), c.Name(), ui.ColorReset(), dump)
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Width:    %s%s%s\n", ui.ColorCyan(), r.currentWidth, ui.ColorReset())
	fmt.Fprintf(r.out, "  Verify:   %s%s%s\n", ui.ColorCyan(), onOff(r.config.Verify), ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:  %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	last := r.last
	if last == "" {
		last = "(none)"
	}
	value, _ := FormatValue(last, false)
	fmt.Fprintf(r.out, "  Last:     %s%s%s\n", ui.ColorCyan(), value, ui.ColorReset())
	stats := sysmon.Sample(context.Background())
	fmt.Fprintf(r.out, "  Memory:   %sheap %s, host %.1f%% used%s\n",
		ui.ColorGrey(), format.FormatBytes(stats.HeapAlloc), stats.MemPercent, ui.ColorReset())
	fmt.Fprintln(r.out)
}

// substitute replaces the previous-result token in fields.
func (r *REPL) substitute(fields []string) ([]string, error) {
	out := make([]string, len(fields))
	for i, f := range fields {
		switch f {
		case lastResultToken, "~" + lastResultToken:
			if r.last == "" {
				return nil, errors.New("no previous result")
			}
			out[i] = strings.Replace(f, lastResultToken, r.last, 1)
		default:
			out[i] = f
		}
	}
	return out, nil
}

// evaluate runs an expression on the current width, or on every width when
// verify is set.
func (r *REPL) evaluate(ctx context.Context, input string, verify bool) {
	fields, err := r.substitute(strings.Fields(input))
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	req, err := calc.ParseRequest(strings.Join(fields, " "))
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		return
	}

	width := r.currentWidth
	if verify {
		width = "all"
	}
	calculators := orchestration.GetCalculatorsToRun(width, r.factory)
	if len(calculators) == 0 {
		fmt.Fprintf(r.out, "%sWidth not found: %s%s\n", ui.ColorRed(), width, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()
	results := orchestration.ExecuteEvaluations(ctx, calculators, req)

	if len(results) > 1 {
		r.printComparison(results)
	}

	var first *orchestration.EvaluationResult
	for i := range results {
		if results[i].Err == nil {
			first = &results[i]
			break
		}
	}
	if first == nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), results[0].Err, ui.ColorReset())
		return
	}

	value, truncated := FormatValue(first.Result.Value, r.config.Verbose)
	fmt.Fprintf(r.out, "  %s = %s%s%s", req, ui.ColorGreen(), value, ui.ColorReset())
	if first.Result.Op == calc.OpDivMod {
		rem, _ := FormatValue(first.Result.Remainder, r.config.Verbose)
		fmt.Fprintf(r.out, " remainder %s%s%s", ui.ColorGreen(), rem, ui.ColorReset())
	}
	fmt.Fprintf(r.out, "  %s(%s, %s digits)%s\n", ui.ColorGrey(),
		format.FormatExecutionDuration(first.Duration), format.FormatCount(decimalDigits(first.Result.Value)), ui.ColorReset())
	if truncated {
		fmt.Fprintf(r.out, "  %s(truncated)%s\n", ui.ColorYellow(), ui.ColorReset())
	}
	r.last = first.Result.Value
}

// printComparison lists each width's outcome and flags disagreements.
func (r *REPL) printComparison(results []orchestration.EvaluationResult) {
	var reference *calc.Result
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(r.out, "  %s%-4s%s %sError - %v%s\n",
				ui.ColorYellow(), res.Name, ui.ColorReset(), ui.ColorRed(), res.Err, ui.ColorReset())
			continue
		}
		status := ui.ColorGreen() + "✓" + ui.ColorReset()
		switch {
		case reference == nil:
			reference = &res.Result
		case res.Result.Op.WidthDependent():
			status = ui.ColorGrey() + "width-dependent" + ui.ColorReset()
		case !res.Result.Equal(*reference):
			status = ui.ColorRed() + "✗ INCONSISTENT" + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "  %s%-4s%s %s%10s%s %s\n",
			ui.ColorYellow(), res.Name, ui.ColorReset(),
			ui.ColorCyan(), format.FormatExecutionDuration(res.Duration), ui.ColorReset(), status)
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
