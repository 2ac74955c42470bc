// Package server exposes the width calculators over a small read-only HTTP
// API with Prometheus metrics and OpenTelemetry request spans.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/bigcalc/internal/calc"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/sysmon"
)

const (
	tracerName = "github.com/agbru/bigcalc/internal/server"

	// DefaultWidth is used by /eval when the request names no width.
	DefaultWidth = "w64"
	// DefaultRequestTimeout bounds one evaluation when Config.Timeout is unset.
	DefaultRequestTimeout = 30 * time.Second

	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 60 * time.Second
)

// Config configures the HTTP API.
type Config struct {
	// Port is the TCP port to listen on; "0" picks a free port.
	Port string
	// Timeout bounds the evaluation of a single request.
	Timeout time.Duration
	// DefaultWidth is the calculator used by /eval without a width parameter.
	DefaultWidth string
	// Security configures headers, CORS and operand limits.
	Security SecurityConfig
}

// Server serves evaluations over HTTP.
type Server struct {
	factory    calc.CalculatorFactory
	config     Config
	logger     logging.Logger
	metrics    *Metrics
	httpServer *http.Server
	startTime  time.Time
}

// Option customizes a Server.
type Option func(*Server)

// WithLogger replaces the default stderr logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics replaces the metrics created by NewServer.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewServer builds a server over factory. Zero config fields take their
// defaults.
func NewServer(factory calc.CalculatorFactory, cfg Config, opts ...Option) *Server {
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRequestTimeout
	}
	if cfg.DefaultWidth == "" {
		cfg.DefaultWidth = DefaultWidth
	}
	if cfg.Security.AllowedMethods == nil {
		cfg.Security = DefaultSecurityConfig()
	}

	s := &Server{
		factory:   factory,
		config:    cfg,
		logger:    logging.NewDefaultLogger(),
		metrics:   NewMetrics(),
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.httpServer = &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      cfg.Timeout + 5*time.Second,
		IdleTimeout:       idleTimeout,
	}
	return s
}

// Metrics returns the server's collectors so that they can be registered
// as a calc.Observer.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Handler returns the routed handler with all middlewares applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/eval", s.chain(s.handleEval))
	mux.HandleFunc("/verify", s.chain(s.handleVerify))
	mux.HandleFunc("/health", s.chain(s.handleHealth))
	mux.HandleFunc("/metrics", s.chain(s.handleMetrics))
	return mux
}

func (s *Server) chain(h http.HandlerFunc) http.HandlerFunc {
	return SecurityMiddleware(s.config.Security, s.loggingMiddleware(s.metricsMiddleware(s.tracingMiddleware(h))))
}

// Start listens until ctx is canceled, then shuts down gracefully, letting
// in-flight requests finish within shutdownTimeout.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		s.logger.Info("server listening",
			logging.String("addr", s.httpServer.Addr),
			logging.Duration("timeout", s.config.Timeout),
			logging.String("max_operand_digits", formatLimit(s.config.Security.MaxOperandDigits)))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	<-errCh
	s.logger.Info("server stopped")
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Middlewares
// ─────────────────────────────────────────────────────────────────────────────

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func recorderFor(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

// metricsMiddleware tracks active requests and response codes.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := recorderFor(w)
		next(rec, r)
		s.metrics.RecordResponse(r.URL.Path, rec.status)
	}
}

// loggingMiddleware logs one line per request.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := recorderFor(w)
		next(rec, r)
		s.logger.Debug("request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", rec.status),
			logging.Duration("duration", time.Since(start)))
	}
}

// tracingMiddleware starts a server span; evaluation spans become its
// children through the request context.
func (s *Server) tracingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := otel.Tracer(tracerName).Start(r.Context(), "HTTP "+r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", r.URL.Path),
			))
		defer span.End()

		rec := recorderFor(w)
		next(rec, r.WithContext(ctx))
		span.SetAttributes(attribute.Int("http.status_code", rec.status))
		if rec.status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(rec.status))
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Responses
// ─────────────────────────────────────────────────────────────────────────────

// ErrorResponse is the JSON body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: http.StatusText(status), Message: err.Error()})
}

// statusFor maps an evaluation error to an HTTP status code.
func statusFor(err error) int {
	var (
		validationErr  apperrors.ValidationError
		limitErr       apperrors.LimitError
		calculationErr apperrors.CalculationError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &limitErr), errors.Is(err, calc.ErrUnknownCalculator):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	case errors.As(err, &calculationErr):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status     string   `json:"status"`
	Uptime     string   `json:"uptime"`
	Widths     []string `json:"widths"`
	HeapAlloc  string   `json:"heap_alloc"`
	Goroutines int      `json:"goroutines"`
	CPUPercent float64  `json:"cpu_percent"`
	MemPercent float64  `json:"mem_percent"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	stats := sysmon.Sample(r.Context())
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:     "ok",
		Uptime:     time.Since(s.startTime).Round(time.Second).String(),
		Widths:     s.factory.List(),
		HeapAlloc:  format.FormatBytes(stats.HeapAlloc),
		Goroutines: stats.Goroutines,
		CPUPercent: stats.CPUPercent,
		MemPercent: stats.MemPercent,
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	if s.logger != nil {
		s.logger.Debug("method not allowed", logging.String("method", r.Method), logging.String("path", r.URL.Path))
	}
	w.Header().Set("Allow", http.MethodGet)
	writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
}
