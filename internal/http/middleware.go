package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mbakke/courtside/internal/ratelimit"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// contextKey is a custom type to avoid key collisions in context.
type contextKey string

const (
	dryRunKey contextKey = "dryRun"
)

// paramsMiddleware handles common query parameters like 'verbose' and 'dry_run'.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info("incoming request", "method", r.Method, "url", r.URL.String())
		// Handle 'verbose' for request-scoped verbose logging.
		if r.URL.Query().Get("verbose") == "true" {
			originalLevel := log.GetLevel()
			log.SetLevel(log.DebugLevel)
			defer log.SetLevel(originalLevel)
		}

		// Handle 'dry_run' and add it to the request context.
		isDryRun := r.URL.Query().Get("dry_run") == "true"
		ctx := context.WithValue(r.Context(), dryRunKey, isDryRun)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// isDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func isDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(dryRunKey).(bool)
	return ok && dryRun
}

// rateLimit rejects requests over the sliding-window limit for the given
// endpoint type with a 429 and standard rate-limit headers.
func (s *Server) rateLimit(t ratelimit.Type) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identifier := ratelimit.ClientIdentifier(r)
			if err := s.Limiter.Assert(identifier, t); err != nil {
				var limitErr *ratelimit.LimitError
				if errors.As(err, &limitErr) {
					s.Metrics.IncRateLimited()
					log.Warn("Rate limit exceeded", "type", t, "identifier", identifier)
					w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limitErr.Limit))
					w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limitErr.Remaining))
					w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(limitErr.Reset, 10))
					w.Header().Set("Retry-After", strconv.Itoa(limitErr.RetryAfter))
					http.Error(w, "Too many requests", http.StatusTooManyRequests)
					return
				}
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
