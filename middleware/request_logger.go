package middleware

import (
	"net/http"
	"time"

	"skill-exchange/logging"

	"github.com/felixge/httpsnoop"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RequestLogger attaches a request-scoped logger carrying the trace ids and
// logs one line per request once it completes.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		spanContext := trace.SpanFromContext(r.Context()).SpanContext()
		logger := logging.FromContext(r.Context())
		if spanContext.IsValid() {
			logger = logger.With(
				zap.String("trace_id", spanContext.TraceID().String()),
				zap.String("span_id", spanContext.SpanID().String()),
			)
		}
		r = r.WithContext(logging.WithLogger(r.Context(), logger))

		metrics := httpsnoop.CaptureMetrics(next, w, r)
		duration := metrics.Duration
		if duration == 0 {
			duration = time.Since(start)
		}

		logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", metrics.Code),
			zap.Int64("bytes", metrics.Written),
			zap.Duration("duration", duration),
		)
	})
}
