package ports

import (
	"context"

	"github.com/contractflow/review-api/internal/core/domain"
)

// ClauseInput carries the writable fields of a clause.
type ClauseInput struct {
	Title       string
	Description string
	Domain      string
}

// ClauseService defines CRUD over clause reference data.
type ClauseService interface {
	List(ctx context.Context, domainFilter string) ([]*domain.Clause, error)
	Create(ctx context.Context, in ClauseInput) (*domain.Clause, error)
	Update(ctx context.Context, id string, in ClauseInput) (*domain.Clause, error)
	Delete(ctx context.Context, id string) error
}
