package middlewares

import (
	"log/slog"
	"net/http"
	"time"
)

// statusWriter wraps a ResponseWriter to observe the status and body size.
type statusWriter struct {
	http.ResponseWriter
	status  int
	size    int64
	written bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.written {
		w.written = true
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.written = true
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}

// Logging emits one structured log line per request: method, path, status,
// bytes, duration. Pair with RequestID and RequestIDExtractor to correlate
// lines across a trace.
func Logging(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(sw, r)

			log.InfoContext(r.Context(), "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Int64("bytes", sw.size),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}
