package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/agbru/bigcalc/internal/calc"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/orchestration"
)

// EvalResponse is the result of one evaluation on one width.
type EvalResponse struct {
	Width      string  `json:"width"`
	Op         calc.Op `json:"op"`
	Value      string  `json:"value,omitempty"`
	Remainder  string  `json:"remainder,omitempty"`
	Digits     int     `json:"digits,omitempty"`
	DurationMS float64 `json:"duration_ms"`
	Error      string  `json:"error,omitempty"`
}

// VerifyResponse is the result of one request evaluated on every width.
type VerifyResponse struct {
	Op             calc.Op        `json:"op"`
	Expression     string         `json:"expression"`
	Consistent     bool           `json:"consistent"`
	WidthDependent bool           `json:"width_dependent"`
	Value          string         `json:"value,omitempty"`
	Remainder      string         `json:"remainder,omitempty"`
	Results        []EvalResponse `json:"results"`
}

// requestFromQuery builds a request from either expr=<expression> or
// op=<op>&a=<x>[&b=<y>].
func requestFromQuery(q url.Values) (calc.Request, error) {
	if expr := q.Get("expr"); expr != "" {
		return calc.ParseRequest(expr)
	}
	op, ok := calc.ParseOp(q.Get("op"))
	if !ok {
		return calc.Request{}, apperrors.ValidationError{Field: "op", Message: fmt.Sprintf("unknown operation %q", q.Get("op"))}
	}
	args := []string{q.Get("a")}
	if op.Arity() == 2 {
		args = append(args, q.Get("b"))
	}
	for i, a := range args {
		if a == "" {
			return calc.Request{}, apperrors.ValidationError{Field: []string{"a", "b"}[i], Message: "missing operand"}
		}
	}
	req := calc.Request{Op: op, Args: args}
	return req, req.Validate()
}

func toEvalResponse(r orchestration.EvaluationResult) EvalResponse {
	resp := EvalResponse{
		Width:      r.Name,
		Op:         r.Result.Op,
		Value:      r.Result.Value,
		Remainder:  r.Result.Remainder,
		Digits:     r.Result.Digits,
		DurationMS: float64(r.Duration.Microseconds()) / 1000,
	}
	if r.Err != nil {
		resp.Error = r.Err.Error()
	}
	return resp
}

// handleEval evaluates a request on a single width.
//
//	GET /eval?op=div&a=100&b=7&width=w32
//	GET /eval?expr=100+/+7
func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	q := r.URL.Query()
	req, err := requestFromQuery(q)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	width := q.Get("width")
	if width == "" {
		width = s.config.DefaultWidth
	}
	c, err := s.factory.Get(width)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w (use /verify to run every width)", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.config.Timeout)
	defer cancel()
	res := orchestration.ExecuteEvaluations(ctx, []calc.Calculator{c}, req)[0]
	if res.Err != nil {
		s.logger.Debug("evaluation failed", logging.String("request", req.String()), logging.Err(res.Err))
		writeError(w, statusFor(res.Err), res.Err)
		return
	}
	writeJSON(w, http.StatusOK, toEvalResponse(res))
}

// handleVerify evaluates a request on every width and reports whether the
// widths agree. A disagreement on a width-independent operation is an
// internal error and answers 500.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	req, err := requestFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.config.Timeout)
	defer cancel()
	results := orchestration.ExecuteEvaluations(ctx, s.factory.GetAll(), req)

	resp := VerifyResponse{
		Op:             req.Op,
		Expression:     req.String(),
		WidthDependent: req.Op.WidthDependent(),
		Results:        make([]EvalResponse, len(results)),
	}
	for i, res := range results {
		resp.Results[i] = toEvalResponse(res)
	}

	first, mismatch, err := orchestration.BatchItem{Results: results}.Outcome()
	switch {
	case err != nil:
		writeError(w, statusFor(err), err)
		return
	case mismatch:
		s.logger.Error("width mismatch", fmt.Errorf("widths disagree on %s", req), logging.String("request", req.String()))
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}
	resp.Consistent = true
	if !resp.WidthDependent {
		resp.Value = first.Result.Value
		resp.Remainder = first.Result.Remainder
	}
	writeJSON(w, http.StatusOK, resp)
}
