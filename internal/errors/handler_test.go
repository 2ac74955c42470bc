package apperrors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/kernel"
)

type testColors struct{}

func (testColors) Yellow() string { return "<y>" }
func (testColors) Red() string    { return "<r>" }
func (testColors) Reset() string  { return "</>" }

func TestExitCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"deadline", context.DeadlineExceeded, ExitErrorTimeout},
		{"wrapped deadline", fmt.Errorf("w8: %w", context.DeadlineExceeded), ExitErrorTimeout},
		{"canceled", CalculationError{Cause: context.Canceled}, ExitErrorCanceled},
		{"config", NewConfigError("bad width"), ExitErrorConfig},
		{"validation", ValidationError{Field: "op", Message: "unknown"}, ExitErrorConfig},
		{"limit", LimitError{Subject: "operand digits", Value: 2, Limit: 1}, ExitErrorConfig},
		{"division by zero", CalculationError{Cause: kernel.ErrDivisionByZero}, ExitErrorGeneric},
		{"unknown", errors.New("boom"), ExitErrorGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHandleCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		duration time.Duration
		colors   ColorProvider
		wantCode int
		wantOut  []string
	}{
		{"nil error prints nothing", nil, 0, nil, ExitSuccess, nil},
		{"timeout", context.DeadlineExceeded, 2 * time.Second, testColors{}, ExitErrorTimeout, []string{"<r>", "Timeout", "after 2s", "</>"}},
		{"canceled", context.Canceled, 0, testColors{}, ExitErrorCanceled, []string{"<y>", "Canceled by user."}},
		{"generic without colors", errors.New("division by zero"), 0, nil, ExitErrorGeneric, []string{"Status: Failure. division by zero"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := HandleCalculationError(tt.err, tt.duration, &buf, tt.colors)
			if code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
			if tt.wantOut == nil && buf.Len() != 0 {
				t.Errorf("unexpected output %q", buf.String())
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output %q does not contain %q", buf.String(), want)
				}
			}
		})
	}
}
