package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/server"
	"github.com/agbru/bigcalc/internal/ui"
)

// Application represents the bigcalc application instance.
type Application struct {
	Config    config.AppConfig
	Factory   calc.CalculatorFactory
	ErrWriter io.Writer

	// Subject receives one observation per evaluation when the factory was
	// built by New. Server metrics and debug logging register on it.
	Subject *calc.Subject

	logger logging.Logger
	in     io.Reader
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom CalculatorFactory for the application. The
// factory is used as is: limits from the configuration are not applied to it.
func WithFactory(f calc.CalculatorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithInput sets the reader used by the interactive prompt.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.in = r }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, Subject: calc.NewSubject(), in: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}

	widths := calc.NewDefaultFactory().List()
	if app.Factory != nil {
		widths = app.Factory.List()
	}

	programName := "bigcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, widths)
	if err != nil {
		return nil, err
	}
	cfg = config.ApplyAdaptiveLimits(cfg)

	if app.Factory == nil {
		app.Factory = calc.NewDefaultFactory(
			calc.WithMaxShift(cfg.MaxShift),
			calc.WithMaxMulDigits(cfg.MaxMulDigits),
			calc.WithObserver(app.Subject),
		)
	}
	app.logger = newLogger(errWriter)
	app.Subject.Register(debugObserver(app.logger))

	app.Config = cfg
	return app, nil
}

// newLogger returns the console logger used by the application. The level
// comes from BIGCALC_LOG_LEVEL.
func newLogger(w io.Writer) logging.Logger {
	level, err := zerolog.ParseLevel(config.LogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	return logging.NewZerologAdapter(zerolog.New(output).Level(level).With().Timestamp().Logger())
}

// debugObserver logs every evaluation at debug level.
func debugObserver(l logging.Logger) calc.Observer {
	return calc.ObserverFunc(func(o calc.Observation) {
		fields := []logging.Field{
			logging.String("width", o.Calculator),
			logging.String("op", string(o.Op)),
			logging.Duration("duration", o.Duration),
		}
		if o.Err != nil {
			fields = append(fields, logging.Err(o.Err))
		}
		l.Debug("evaluation", fields...)
	})
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	ui.InitTheme(a.Config.NoColor)

	switch {
	case a.Config.ServerMode:
		return a.runServer(ctx)
	case a.Config.REPL:
		return a.runREPL(ctx, out)
	case a.Config.TUI:
		return a.runTUI(ctx, out)
	case a.Config.InputFile != "":
		return a.runBatch(ctx, out)
	}
	return a.runCalculate(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runServer serves the HTTP API until SIGINT or SIGTERM.
func (a *Application) runServer(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	security := server.DefaultSecurityConfig()
	security.MaxOperandDigits = a.Config.MaxDigits
	width := a.Config.Width
	if width == "all" {
		width = ""
	}

	srv := server.NewServer(a.Factory, server.Config{
		Port:         a.Config.Port,
		Timeout:      a.Config.Timeout,
		DefaultWidth: width,
		Security:     security,
	}, server.WithLogger(a.logger))
	a.Subject.Register(srv.Metrics())

	if err := srv.Start(ctx); err != nil {
		a.logger.Error("server failed", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runREPL launches the interactive prompt.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		Width:   a.Config.Width,
		Timeout: a.Config.Timeout,
		Verify:  a.Config.Verify,
		Verbose: a.Config.Verbose,
	})
	repl.SetInput(a.in)
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
