package workers

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/internal/store"
)

// cleanupTimeout bounds a single purge.
const cleanupTimeout = 30 * time.Second

// TokenCleanupWorker purges expired refresh tokens. Expired tokens are
// already rejected on refresh; purging only keeps the table small.
type TokenCleanupWorker struct {
	refreshTokens store.RefreshTokenRepository
	interval      time.Duration
	now           func() time.Time

	logger *logger.Logger
}

func NewTokenCleanupWorker(refreshTokens store.RefreshTokenRepository, interval time.Duration, logger *logger.Logger) *TokenCleanupWorker {
	return &TokenCleanupWorker{
		refreshTokens: refreshTokens,
		interval:      interval,
		now:           func() time.Time { return time.Now().UTC() },
		logger:        logger.WithField("worker", "token_cleanup"),
	}
}

// Run purges once immediately, then on every interval until ctx is
// cancelled. A purge in progress when the next tick fires is not doubled.
func (w *TokenCleanupWorker) Run(ctx context.Context) {
	w.Cleanup(ctx)

	cronLogger := cron.PrintfLogger(&w.logger.Logger)
	scheduler := cron.New(cron.WithChain(
		cron.Recover(cronLogger),
		cron.SkipIfStillRunning(cronLogger),
	))
	scheduler.Schedule(cron.Every(w.interval), cron.FuncJob(func() {
		w.Cleanup(ctx)
	}))

	scheduler.Start()
	w.logger.Info().Dur("interval", w.interval).Msg("refresh token cleanup scheduled")

	<-ctx.Done()
	<-scheduler.Stop().Done()
	w.logger.Info().Msg("refresh token cleanup stopped")
}

// Cleanup deletes every refresh token that has expired by now.
func (w *TokenCleanupWorker) Cleanup(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, cleanupTimeout)
	defer cancel()

	removed, err := w.refreshTokens.DeleteExpired(ctx, w.now())
	if err != nil {
		w.logger.Err(err).Str("func", "TokenCleanupWorker.Cleanup").Msg("error deleting expired refresh tokens")
		return
	}

	if removed > 0 {
		w.logger.Info().Int64("removed", removed).Msg("expired refresh tokens deleted")
	}
}
