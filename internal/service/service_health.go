package service

import (
	"context"
	"time"

	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/internal/store"
)

const healthCheckTimeout = 2 * time.Second

type healthService struct {
	pinger store.Pinger

	logger *logger.Logger
}

func NewHealthService(pinger store.Pinger, logger *logger.Logger) HealthService {
	return &healthService{pinger: pinger, logger: logger}
}

// Check pings the database with a short deadline.
func (h *healthService) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Err(err).Str("func", "*healthService.Check").Msg("database is unreachable")
		return internalError("pinging database", err)
	}
	return nil
}
