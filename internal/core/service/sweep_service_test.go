package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSweepService_UsesOneDayCutoff(t *testing.T) {
	var gotCutoff time.Time
	docs := &stubDocumentRepo{
		promoteStaleFn: func(ctx context.Context, cutoff time.Time) (int64, error) {
			gotCutoff = cutoff
			return 2, nil
		},
	}
	svc := NewSweepService(docs, zerolog.Nop())

	promoted, err := svc.Sweep(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if promoted != 2 {
		t.Fatalf("expected 2 promoted, got %d", promoted)
	}

	want := time.Now().UTC().Add(-24 * time.Hour)
	if diff := want.Sub(gotCutoff); diff < -time.Minute || diff > time.Minute {
		t.Fatalf("expected cutoff about one day ago, got %s", gotCutoff)
	}
}

func TestSweepService_PropagatesRepositoryError(t *testing.T) {
	repoErr := errors.New("write conflict")
	docs := &stubDocumentRepo{
		promoteStaleFn: func(ctx context.Context, cutoff time.Time) (int64, error) {
			return 0, repoErr
		},
	}
	svc := NewSweepService(docs, zerolog.Nop())

	if _, err := svc.Sweep(context.Background()); !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error surfaced, got %v", err)
	}
}
