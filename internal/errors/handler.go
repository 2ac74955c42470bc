package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the ANSI sequences used when reporting errors. The
// CLI passes its theme colors; callers without a terminal pass nil.
type ColorProvider interface {
	Yellow() string
	Red() string
	Reset() string
}

type noColors struct{}

func (noColors) Yellow() string { return "" }
func (noColors) Red() string    { return "" }
func (noColors) Reset() string  { return "" }

// ExitCode maps an error to the process exit code without printing anything.
// Input problems (configuration, validation, limits) exit 4, expired and
// canceled contexts exit 2 and 130, anything else 1.
func ExitCode(err error) int {
	var (
		configErr     ConfigError
		validationErr ValidationError
		limitErr      LimitError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &configErr), errors.As(err, &validationErr), errors.As(err, &limitErr):
		return ExitErrorConfig
	}
	return ExitErrorGeneric
}

// HandleCalculationError reports an evaluation error on out and returns the
// matching exit code. duration is the time spent before the failure; it is
// shown for timeouts and cancellations when non-zero.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = noColors{}
	}

	code := ExitCode(err)
	elapsed := ""
	if duration > 0 {
		elapsed = fmt.Sprintf(" after %s", duration)
	}

	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sStatus: Failure (Timeout). The evaluation did not finish%s.%s\n", colors.Red(), elapsed, colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled by user%s.%s\n", colors.Yellow(), elapsed, colors.Reset())
	default:
		fmt.Fprintf(out, "%sStatus: Failure. %v%s\n", colors.Red(), err, colors.Reset())
	}
	return code
}
