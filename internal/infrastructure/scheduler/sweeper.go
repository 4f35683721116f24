// Package scheduler runs the periodic document status sweep. The original
// deployment defined the sweep but never scheduled it; here it runs on an
// in-process ticker so the one-day new→pending promotion actually happens.
package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper is the minimal interface the scheduler drives.
type Sweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

// StatusSweeper invokes the sweep service on a fixed interval until its
// context is cancelled.
type StatusSweeper struct {
	sweeper  Sweeper
	interval time.Duration
	log      zerolog.Logger
}

func NewStatusSweeper(sweeper Sweeper, interval time.Duration, log zerolog.Logger) *StatusSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &StatusSweeper{sweeper: sweeper, interval: interval, log: log}
}

// Start launches the sweep loop goroutine. One pass runs immediately so a
// restarted process catches up without waiting a full interval.
func (s *StatusSweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *StatusSweeper) run(ctx context.Context) {
	s.log.Info().Dur("interval", s.interval).Msg("status sweeper started")

	s.sweepOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("status sweeper stopped")
			return
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

func (s *StatusSweeper) sweepOnce(ctx context.Context) {
	if _, err := s.sweeper.Sweep(ctx); err != nil {
		s.log.Error().Err(err).Msg("status sweep failed")
	}
}
