package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/rent-pe-easy/internal/logger"
)

// withLogging writes one access-log entry per request. Server errors are
// logged at warn level.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := h.now()
		rw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(rw, r)

		level := zerolog.InfoLevel
		if rw.Status() >= http.StatusInternalServerError {
			level = zerolog.WarnLevel
		}

		entry := logger.FromRequest(r).WithLevel(level).
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Str("remote_addr", r.RemoteAddr).
			Int("status", rw.Status()).
			Dur("duration", h.now().Sub(start)).
			Int("size", rw.size)

		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			entry = entry.Str("route", rctx.RoutePattern())
		}

		entry.Send()
	})
}
