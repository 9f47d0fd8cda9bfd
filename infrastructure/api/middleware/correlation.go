package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/helixml/primes/internal/log"
)

// CorrelationIDHeader carries the correlation ID on requests and responses.
const CorrelationIDHeader = "X-Correlation-ID"

// CorrelationID propagates the caller's correlation ID, falling back to the
// chi request ID, and echoes it on the response.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(CorrelationIDHeader)
		if id == "" {
			id = middleware.GetReqID(r.Context())
		}

		ctx := r.Context()
		if id != "" {
			ctx = log.WithCorrelationID(ctx, id)
			w.Header().Set(CorrelationIDHeader, id)
		}
		ctx = log.WithRequestID(ctx, middleware.GetReqID(r.Context()))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCorrelationID returns the correlation ID stored on ctx.
func GetCorrelationID(ctx context.Context) string {
	return log.CorrelationID(ctx)
}
