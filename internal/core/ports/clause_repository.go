package ports

import (
	"context"

	"github.com/contractflow/review-api/internal/core/domain"
)

// ClauseRepository defines persistence operations for clause reference data.
type ClauseRepository interface {
	// List returns all clauses, optionally filtered by legal domain.
	List(ctx context.Context, domainFilter string) ([]*domain.Clause, error)
	// Create inserts the clause and fills in its generated ID.
	Create(ctx context.Context, c *domain.Clause) error
	FindByID(ctx context.Context, id string) (*domain.Clause, error)
	Update(ctx context.Context, id, title, description, legalDomain string) error
	Delete(ctx context.Context, id string) error
}
