package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/contractflow/review-api/internal/api/metrics"
	"github.com/contractflow/review-api/internal/core/domain"
	"github.com/contractflow/review-api/internal/core/ports"
)

// DocumentService implements the review workflow use cases. Every status
// change goes through the domain transition table.
type DocumentService struct {
	docs   ports.DocumentRepository
	users  ports.UserRepository
	queue  ports.NotificationQueue
	mailer ports.Mailer
	log    zerolog.Logger
}

func NewDocumentService(
	docs ports.DocumentRepository,
	users ports.UserRepository,
	queue ports.NotificationQueue,
	mailer ports.Mailer,
	log zerolog.Logger,
) *DocumentService {
	return &DocumentService{docs: docs, users: users, queue: queue, mailer: mailer, log: log}
}

// Create registers a new document with the acting reviewer as its reviewer.
func (s *DocumentService) Create(ctx context.Context, actor ports.Actor, in ports.CreateDocumentInput) (*domain.Document, error) {
	if actor.Role != domain.RoleReviewer {
		return nil, domain.ErrForbidden
	}
	if in.Title == "" {
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	doc := &domain.Document{
		ID:           uuid.NewString(),
		Title:        in.Title,
		Content:      in.Content,
		ReviewerID:   actor.ID,
		Approvers:    []string{},
		Status:       domain.StatusNew,
		CreatedAt:    now,
		LastModified: now,
	}

	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}

	metrics.DocumentsCreatedTotal.Inc()
	s.log.Info().Str("document_id", doc.ID).Str("reviewer_id", actor.ID).Msg("document created")
	return doc, nil
}

// List returns the caller's assigned documents, optionally filtered by status.
func (s *DocumentService) List(ctx context.Context, actor ports.Actor, status domain.DocumentStatus) ([]*domain.Document, error) {
	return s.docs.ListForUser(ctx, actor.ID, actor.Role, status)
}

// Get returns a document the caller is assigned to. The first authorized read
// of a new/pending document transitions it to in_progress; re-reading an
// in_progress document is a no-op on status.
func (s *DocumentService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Document, error) {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !doc.AccessibleBy(actor.ID) {
		return nil, domain.ErrForbidden
	}

	if doc.Status == domain.StatusNew || doc.Status == domain.StatusPending {
		next, err := domain.NextStatus(doc.Status, actor.Role, domain.ActionOpen)
		if err != nil {
			return nil, err
		}
		if err := s.docs.Update(ctx, id, ports.DocumentPatch{Status: &next}); err != nil {
			return nil, err
		}
		metrics.StatusTransitionsTotal.WithLabelValues(string(doc.Status), string(next)).Inc()
		s.log.Info().Str("document_id", id).Str("from", string(doc.Status)).Str("to", string(next)).Msg("document opened")
		doc.Status = next
	}

	return doc, nil
}

// Update applies a workflow mutation. Reviewers submit changes or edit their
// working copy; approvers either approve or send the document back with notes.
func (s *DocumentService) Update(ctx context.Context, actor ports.Actor, id string, in ports.UpdateDocumentInput) (*domain.Document, error) {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case domain.RoleReviewer:
		if doc.ReviewerID != actor.ID {
			return nil, domain.ErrForbidden
		}
		return s.updateAsReviewer(ctx, doc, in)
	case domain.RoleApprover:
		if !contains(doc.Approvers, actor.ID) {
			return nil, domain.ErrForbidden
		}
		return s.updateAsApprover(ctx, actor, doc, in)
	default:
		return nil, domain.ErrForbidden
	}
}

func (s *DocumentService) updateAsReviewer(ctx context.Context, doc *domain.Document, in ports.UpdateDocumentInput) (*domain.Document, error) {
	// Marking changes complete is the only status a reviewer may request.
	if in.Status != nil {
		if *in.Status != domain.StatusChangesMade {
			return nil, fmt.Errorf("%w: reviewer cannot set status %s", domain.ErrInvalidTransition, *in.Status)
		}
		next, err := domain.NextStatus(doc.Status, domain.RoleReviewer, domain.ActionSubmitChanges)
		if err != nil {
			return nil, err
		}

		patch := ports.DocumentPatch{
			Status:         &next,
			Notes:          in.Notes,
			ChangesSummary: in.ChangesSummary,
			Content:        in.Content,
		}
		if err := s.applyPatch(ctx, doc, patch); err != nil {
			return nil, err
		}
		s.notifyApprovers(ctx, doc, in)
		return doc, nil
	}

	// Plain edit: content, notes, changes summary only.
	patch := ports.DocumentPatch{
		Content:        in.Content,
		Notes:          in.Notes,
		ChangesSummary: in.ChangesSummary,
	}
	if err := s.applyPatch(ctx, doc, patch); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) updateAsApprover(ctx context.Context, actor ports.Actor, doc *domain.Document, in ports.UpdateDocumentInput) (*domain.Document, error) {
	if in.Status != nil && *in.Status == domain.StatusApproved {
		next, err := domain.NextStatus(doc.Status, domain.RoleApprover, domain.ActionApprove)
		if err != nil {
			return nil, err
		}
		patch := ports.DocumentPatch{Status: &next, Notes: in.Notes}
		if err := s.applyPatch(ctx, doc, patch); err != nil {
			return nil, err
		}
		s.notifyReviewer(ctx, doc, ports.NotificationApproved, in.Notes)
		return doc, nil
	}

	// Anything else from an approver sends the document back to the reviewer.
	next, err := domain.NextStatus(doc.Status, domain.RoleApprover, domain.ActionRequestChanges)
	if err != nil {
		return nil, err
	}
	patch := ports.DocumentPatch{
		Status:         &next,
		Notes:          in.Notes,
		LastReviewedBy: &actor.ID,
		Content:        in.Content,
	}
	if err := s.applyPatch(ctx, doc, patch); err != nil {
		return nil, err
	}
	s.notifyReviewer(ctx, doc, ports.NotificationReturned, in.Notes)
	return doc, nil
}

// applyPatch persists the patch, records the transition metric, and mirrors
// the change onto the in-memory document returned to the caller.
func (s *DocumentService) applyPatch(ctx context.Context, doc *domain.Document, patch ports.DocumentPatch) error {
	if err := s.docs.Update(ctx, doc.ID, patch); err != nil {
		return err
	}

	if patch.Status != nil && *patch.Status != doc.Status {
		metrics.StatusTransitionsTotal.WithLabelValues(string(doc.Status), string(*patch.Status)).Inc()
		s.log.Info().
			Str("document_id", doc.ID).
			Str("from", string(doc.Status)).
			Str("to", string(*patch.Status)).
			Msg("document status updated")
		doc.Status = *patch.Status
	}
	if patch.Content != nil {
		doc.Content = *patch.Content
	}
	if patch.Notes != nil {
		doc.Notes = *patch.Notes
	}
	if patch.ChangesSummary != nil {
		doc.ChangesSummary = *patch.ChangesSummary
	}
	if patch.LastReviewedBy != nil {
		doc.LastReviewedBy = *patch.LastReviewedBy
	}
	doc.LastModified = time.Now().UTC()
	return nil
}

// AddApprovers assigns approvers to a document. Every id must resolve to an
// existing user with the approver role before anything is written.
func (s *DocumentService) AddApprovers(ctx context.Context, actor ports.Actor, id string, approverIDs []string) error {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if actor.Role != domain.RoleReviewer || doc.ReviewerID != actor.ID {
		return domain.ErrForbidden
	}

	for _, approverID := range approverIDs {
		user, err := s.users.FindByID(ctx, approverID)
		if err != nil || user.Role != domain.RoleApprover {
			return fmt.Errorf("%w: invalid approver id %s", domain.ErrValidation, approverID)
		}
	}

	return s.docs.Update(ctx, id, ports.DocumentPatch{Approvers: &approverIDs})
}

// SendByEmail mails the document to a recipient with its content attached.
func (s *DocumentService) SendByEmail(ctx context.Context, in ports.SendDocumentEmailInput) error {
	doc, err := s.docs.FindByID(ctx, in.DocumentID)
	if err != nil {
		return err
	}
	if in.RecipientEmail == "" {
		return domain.ErrValidation
	}
	if s.mailer == nil {
		return fmt.Errorf("%w: no mail sender configured", domain.ErrUpstreamUnavailable)
	}

	msg := ports.MailMessage{
		To:      in.RecipientEmail,
		Subject: in.Subject,
		Body:    in.Message,
	}
	if doc.Content != "" {
		msg.AttachmentName = doc.Title + ".docx"
		msg.Attachment = decodeContent(doc.Content)
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Error().Err(err).Str("document_id", doc.ID).Msg("failed to send document email")
		return fmt.Errorf("%w: smtp send failed", domain.ErrUpstreamUnavailable)
	}

	s.log.Info().Str("document_id", doc.ID).Str("recipient", in.RecipientEmail).Msg("document emailed")
	return nil
}

// decodeContent decodes the stored base64 blob; malformed content is attached
// verbatim since the field is opaque to this system.
func decodeContent(content string) []byte {
	raw, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return []byte(content)
	}
	return raw
}

func (s *DocumentService) notifyApprovers(ctx context.Context, doc *domain.Document, in ports.UpdateDocumentInput) {
	if s.queue == nil {
		return
	}
	notes := ""
	if in.ChangesSummary != nil {
		notes = *in.ChangesSummary
	}
	for _, approverID := range doc.Approvers {
		approver, err := s.users.FindByID(ctx, approverID)
		if err != nil {
			s.log.Warn().Err(err).Str("approver_id", approverID).Msg("skipping notification for unknown approver")
			continue
		}
		s.queue.Enqueue(ports.Notification{
			DocumentID:     doc.ID,
			DocumentTitle:  doc.Title,
			Kind:           ports.NotificationChangesReady,
			RecipientEmail: approver.Email,
			Notes:          notes,
		})
	}
}

func (s *DocumentService) notifyReviewer(ctx context.Context, doc *domain.Document, kind ports.NotificationKind, notes *string) {
	if s.queue == nil {
		return
	}
	reviewer, err := s.users.FindByID(ctx, doc.ReviewerID)
	if err != nil {
		s.log.Warn().Err(err).Str("reviewer_id", doc.ReviewerID).Msg("skipping notification for unknown reviewer")
		return
	}
	n := ports.Notification{
		DocumentID:     doc.ID,
		DocumentTitle:  doc.Title,
		Kind:           kind,
		RecipientEmail: reviewer.Email,
	}
	if notes != nil {
		n.Notes = *notes
	}
	s.queue.Enqueue(n)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
