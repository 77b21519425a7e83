package http

import (
	"net"
	"net/http"
	"strconv"

	"github.com/MKhiriev/rent-pe-easy/internal/app"
	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/internal/store"
)

// rateLimit applies the per-client token bucket. Buckets are keyed by
// client IP; limiter failures let the request through.
func (h *Handler) rateLimit(next http.Handler) http.Handler {
	if h.limiter == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		decision, err := h.limiter.Take(r.Context(), "ip:"+clientIP(r))
		if err != nil {
			log.Warn().Err(err).Msg("rate limiter unavailable, request let through")
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))

		if !decision.Allowed {
			w.Header().Set("Retry-After", strconv.Itoa(store.RetryAfterSeconds(decision.RetryAfter)))
			log.Info().Str("client", clientIP(r)).Msg("rate limit exceeded")
			h.writeErrorResponse(w, r, http.StatusTooManyRequests, app.MsgTooManyRequests, nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP expects middleware.RealIP to have rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host == "" {
		return "unknown"
	}
	return host
}
