package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/contractflow/review-api/internal/api/metrics"
	"github.com/contractflow/review-api/internal/core/ports"
)

// staleAfter is how long a document may sit in "new" before the sweep
// promotes it to "pending".
const staleAfter = 24 * time.Hour

// SweepService promotes stale "new" documents to "pending". The scheduler
// invokes it periodically; it is also callable on demand.
type SweepService struct {
	docs ports.DocumentRepository
	log  zerolog.Logger
}

func NewSweepService(docs ports.DocumentRepository, log zerolog.Logger) *SweepService {
	return &SweepService{docs: docs, log: log}
}

// Sweep runs one promotion pass and returns the number of promoted documents.
func (s *SweepService) Sweep(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-staleAfter)

	promoted, err := s.docs.PromoteStale(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if promoted > 0 {
		metrics.SweepPromotedTotal.Add(float64(promoted))
		s.log.Info().Int64("promoted", promoted).Time("cutoff", cutoff).Msg("stale documents promoted to pending")
	}
	return promoted, nil
}
