// Package sweep runs the retention policy: pending feedback requests older
// than the configured window are transitioned to expired on a fixed interval.
package sweep

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const defaultInterval = time.Hour

// Expirer is the slice of the workflow engine the sweeper needs.
type Expirer interface {
	ExpireStale(ctx context.Context) (int64, error)
}

// Sweeper periodically expires stale pending requests.
type Sweeper struct {
	svc      Expirer
	interval time.Duration
	log      zerolog.Logger
}

// NewSweeper creates a Sweeper. If interval <= 0, defaultInterval is used.
func NewSweeper(svc Expirer, interval time.Duration, log zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Sweeper{svc: svc, interval: interval, log: log}
}

// Start launches the sweep loop in its own goroutine. One sweep runs
// immediately, then on every tick. The loop stops when ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Sweeper) run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	if _, err := s.svc.ExpireStale(ctx); err != nil {
		s.log.Error().Err(err).Msg("expiry sweep failed")
	}
}
