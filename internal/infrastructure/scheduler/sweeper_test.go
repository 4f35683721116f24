package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type countingSweeper struct {
	calls atomic.Int64
}

func (c *countingSweeper) Sweep(ctx context.Context) (int64, error) {
	c.calls.Add(1)
	return 0, nil
}

func TestStatusSweeper_RunsImmediatelyAndOnTicks(t *testing.T) {
	sweeper := &countingSweeper{}
	s := NewStatusSweeper(sweeper, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	deadline := time.After(time.Second)
	for sweeper.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 3 sweeps, got %d", sweeper.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestStatusSweeper_StopsOnCancel(t *testing.T) {
	sweeper := &countingSweeper{}
	s := NewStatusSweeper(sweeper, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	time.Sleep(20 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)

	settled := sweeper.calls.Load()
	time.Sleep(30 * time.Millisecond)
	if sweeper.calls.Load() != settled {
		t.Fatalf("sweeper kept running after cancel")
	}
}

func TestNewStatusSweeper_DefaultsInterval(t *testing.T) {
	s := NewStatusSweeper(&countingSweeper{}, 0, zerolog.Nop())
	if s.interval != time.Hour {
		t.Fatalf("expected 1h default, got %s", s.interval)
	}
}
