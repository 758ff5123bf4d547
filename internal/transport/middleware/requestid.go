package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/frahmantamala/onboarding-management/pkg/logger"
)

// RequestID attaches a trace id to each request. Incoming X-Trace-ID headers
// are honored so the id survives hops through upstream proxies.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		lg := logger.From(r.Context()).With("trace_id", traceID)
		ctx := logger.With(r.Context(), lg)

		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
