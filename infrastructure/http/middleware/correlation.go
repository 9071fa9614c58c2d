package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/verdemed/verdemed/infrastructure/service/logger"
)

const CorrelationIDHeader = "X-Correlation-ID"

// CorrelationID ensures every request carries a correlation ID, echoes it on
// the response, and puts it in the context for structured logging.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cid := r.Header.Get(CorrelationIDHeader)
		if cid == "" {
			cid = uuid.NewString()
		}

		w.Header().Set(CorrelationIDHeader, cid)

		ctx := logger.WithCorrelationID(r.Context(), cid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
