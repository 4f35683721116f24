package ports

import (
	"context"
	"time"

	"github.com/contractflow/review-api/internal/core/domain"
)

// DocumentPatch is a partial update applied to a document. Nil fields are
// left untouched; the repository always bumps last_modified.
type DocumentPatch struct {
	Content        *string
	Approvers      *[]string
	Status         *domain.DocumentStatus
	Notes          *string
	LastReviewedBy *string
	ChangesSummary *string
}

// DocumentRepository defines persistence operations for documents.
type DocumentRepository interface {
	Create(ctx context.Context, d *domain.Document) error
	FindByID(ctx context.Context, id string) (*domain.Document, error)
	// ListForUser returns documents assigned to the user: reviewer role
	// matches reviewer_id, approver role matches approvers membership.
	// An empty status applies no status filter.
	ListForUser(ctx context.Context, userID string, role domain.Role, status domain.DocumentStatus) ([]*domain.Document, error)
	Update(ctx context.Context, id string, patch DocumentPatch) error
	// PromoteStale moves documents still in status "new" created before the
	// cutoff to "pending" and returns how many were promoted.
	PromoteStale(ctx context.Context, cutoff time.Time) (int64, error)
}
