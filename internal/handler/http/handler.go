package http

import (
	"context"
	"time"

	"github.com/MKhiriev/rent-pe-easy/internal/config"
	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/internal/service"
	"github.com/MKhiriev/rent-pe-easy/internal/store"
)

// RateLimiter takes one token from the bucket identified by key.
type RateLimiter interface {
	Take(ctx context.Context, key string) (store.RateLimitDecision, error)
}

type Handler struct {
	services *service.Services
	cfg      config.Server

	// limiter is nil when rate limiting is disabled.
	limiter RateLimiter
	metrics *Metrics

	now    func() time.Time
	logger *logger.Logger
}

// Option customizes a Handler.
type Option func(*Handler)

// WithRateLimiter enables the token-bucket limiter on /api/auth routes.
func WithRateLimiter(limiter RateLimiter) Option {
	return func(h *Handler) {
		h.limiter = limiter
	}
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		services: services,
		cfg:      cfg,
		metrics:  NewMetrics(),
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(h)
	}

	logger.Info().Bool("rate_limit", h.limiter != nil).Msg("http handler created")
	return h
}
