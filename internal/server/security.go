package server

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// DefaultMaxOperandDigits bounds the decimal length of a single operand.
const DefaultMaxOperandDigits = 100_000

// SecurityConfig configures the security middleware.
type SecurityConfig struct {
	// EnableCORS adds CORS headers for allowed origins.
	EnableCORS bool
	// AllowedOrigins lists the accepted Origin values; "*" accepts any.
	AllowedOrigins []string
	// AllowedMethods is advertised in Access-Control-Allow-Methods.
	AllowedMethods []string
	// MaxOperandDigits rejects requests with a longer operand. Zero disables
	// the check.
	MaxOperandDigits int
}

// DefaultSecurityConfig returns a permissive CORS policy for a read-only
// API and the default operand limit.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:       true,
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		MaxOperandDigits: DefaultMaxOperandDigits,
	}
}

// SecurityMiddleware sets security headers, answers CORS preflight requests
// and rejects operands longer than config.MaxOperandDigits with 400.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if origin, ok := allowedOrigin(config.AllowedOrigins, r.Header.Get("Origin")); ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type")
				h.Set("Access-Control-Max-Age", "86400")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if err := checkOperandLength(r, config.MaxOperandDigits); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		next(w, r)
	}
}

// allowedOrigin returns the value for Access-Control-Allow-Origin.
func allowedOrigin(allowed []string, origin string) (string, bool) {
	if slices.Contains(allowed, "*") {
		return "*", true
	}
	if origin != "" && slices.Contains(allowed, origin) {
		return origin, true
	}
	return "", false
}

// operandParams are the query parameters that carry operands.
var operandParams = []string{"a", "b", "expr"}

// checkOperandLength returns a LimitError if any operand in the query is
// longer than limit decimal digits.
func checkOperandLength(r *http.Request, limit int) error {
	if limit <= 0 {
		return nil
	}
	q := r.URL.Query()
	for _, p := range operandParams {
		for _, v := range q[p] {
			for _, field := range strings.Fields(v) {
				n := len(strings.TrimPrefix(strings.TrimPrefix(field, "-"), "~"))
				if n > limit {
					return apperrors.LimitError{
						Subject: "operand digits (" + p + ")",
						Value:   uint64(n),
						Limit:   uint64(limit),
					}
				}
			}
		}
	}
	return nil
}

// formatLimit renders a limit for log fields.
func formatLimit(n int) string {
	if n <= 0 {
		return "unlimited"
	}
	return strconv.Itoa(n)
}
