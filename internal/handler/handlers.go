package handler

import (
	"github.com/MKhiriev/rent-pe-easy/internal/config"
	"github.com/MKhiriev/rent-pe-easy/internal/handler/grpc"
	"github.com/MKhiriev/rent-pe-easy/internal/handler/http"
	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers creates a transport handler for every configured address.
// limiter may be nil.
func NewHandlers(services *service.Services, cfg config.Server, limiter http.RateLimiter, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		var opts []http.Option
		if limiter != nil {
			opts = append(opts, http.WithRateLimiter(limiter))
		}
		handlers.HTTP = http.NewHandler(services, cfg, logger, opts...)
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, ErrNoTransportConfigured
	}

	return handlers, nil
}
