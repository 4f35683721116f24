package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/contractflow/review-api/internal/core/domain"
	"github.com/contractflow/review-api/internal/core/ports"
)

// ClauseService implements CRUD over clause reference data.
type ClauseService struct {
	clauses ports.ClauseRepository
	log     zerolog.Logger
}

func NewClauseService(clauses ports.ClauseRepository, log zerolog.Logger) *ClauseService {
	return &ClauseService{clauses: clauses, log: log}
}

func (s *ClauseService) List(ctx context.Context, domainFilter string) ([]*domain.Clause, error) {
	return s.clauses.List(ctx, domainFilter)
}

func (s *ClauseService) Create(ctx context.Context, in ports.ClauseInput) (*domain.Clause, error) {
	if in.Title == "" || in.Description == "" || in.Domain == "" {
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	clause := &domain.Clause{
		Title:        in.Title,
		Description:  in.Description,
		Domain:       in.Domain,
		CreatedAt:    now,
		LastModified: now,
	}

	if err := s.clauses.Create(ctx, clause); err != nil {
		return nil, err
	}

	s.log.Info().Str("clause_id", clause.ID).Str("domain", clause.Domain).Msg("clause created")
	return clause, nil
}

func (s *ClauseService) Update(ctx context.Context, id string, in ports.ClauseInput) (*domain.Clause, error) {
	if _, err := s.clauses.FindByID(ctx, id); err != nil {
		return nil, err
	}

	if err := s.clauses.Update(ctx, id, in.Title, in.Description, in.Domain); err != nil {
		return nil, err
	}

	return s.clauses.FindByID(ctx, id)
}

func (s *ClauseService) Delete(ctx context.Context, id string) error {
	if _, err := s.clauses.FindByID(ctx, id); err != nil {
		return err
	}
	return s.clauses.Delete(ctx, id)
}
