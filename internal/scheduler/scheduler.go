// Package scheduler runs the periodic exchange-rate refresh.
package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Refresher is the job the scheduler drives.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RateRefresher triggers a rate refresh on a fixed interval, and
// optionally once immediately at startup.
type RateRefresher struct {
	job      Refresher
	interval time.Duration
	onBoot   bool
	log      zerolog.Logger
}

func NewRateRefresher(job Refresher, interval time.Duration, onBoot bool, log zerolog.Logger) *RateRefresher {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &RateRefresher{job: job, interval: interval, onBoot: onBoot, log: log}
}

// Run blocks until ctx is cancelled. Refresh errors are logged, never
// fatal; each tick gets a fresh attempt.
func (r *RateRefresher) Run(ctx context.Context) {
	if r.onBoot {
		r.refresh(ctx)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info().Msg("rate refresher stopped")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *RateRefresher) refresh(ctx context.Context) {
	started := time.Now()
	if err := r.job.Refresh(ctx); err != nil {
		r.log.Error().Err(err).Msg("rate refresh run failed")
		return
	}
	r.log.Info().Dur("took", time.Since(started)).Msg("rate refresh run complete")
}
