package ports

import (
	"context"

	"github.com/contractflow/review-api/internal/core/domain"
)

// Actor identifies the authenticated caller of a workflow operation.
type Actor struct {
	ID   string
	Role domain.Role
}

// CreateDocumentInput carries the data for a new document. The acting
// reviewer becomes the document's reviewer_id.
type CreateDocumentInput struct {
	Title   string
	Content string // opaque base64 blob, may be empty
}

// UpdateDocumentInput is the workflow mutation payload for PUT /documents/:id.
// Nil fields were not supplied by the caller.
type UpdateDocumentInput struct {
	Content        *string
	Status         *domain.DocumentStatus
	Notes          *string
	ChangesSummary *string
}

// SendDocumentEmailInput carries the parameters for mailing a document out.
type SendDocumentEmailInput struct {
	DocumentID     string
	RecipientEmail string
	Subject        string
	Message        string
}

// DocumentService defines the review workflow use cases.
type DocumentService interface {
	Create(ctx context.Context, actor Actor, in CreateDocumentInput) (*domain.Document, error)
	// List returns the caller's assigned documents, optionally filtered by status.
	List(ctx context.Context, actor Actor, status domain.DocumentStatus) ([]*domain.Document, error)
	// Get returns the document and, on the first authorized read of a
	// new/pending document, transitions it to in_progress.
	Get(ctx context.Context, actor Actor, id string) (*domain.Document, error)
	Update(ctx context.Context, actor Actor, id string, in UpdateDocumentInput) (*domain.Document, error)
	// AddApprovers assigns approvers after validating that every id belongs
	// to an existing user with the approver role. Nothing is mutated when any
	// id fails validation.
	AddApprovers(ctx context.Context, actor Actor, id string, approverIDs []string) error
	SendByEmail(ctx context.Context, in SendDocumentEmailInput) error
}
