package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rogerio-castellano/listing-search/internal/logger"
)

const traceHeader = "X-Trace-ID"

// RequestLogger attaches a trace-scoped logger to the request context and
// logs every request once it completes.
func RequestLogger(base *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(traceHeader)
			if _, err := uuid.Parse(traceID); err != nil {
				traceID = uuid.New().String()
			}
			w.Header().Set(traceHeader, traceID)

			reqLogger := base.With("trace_id", traceID)
			ctx := logger.WithContext(r.Context(), reqLogger)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("request finished",
				"http_method", r.Method,
				"http_path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
				"status_code", ww.Status(),
				"bytes_written", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
