package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/contractflow/review-api/internal/core/domain"
	"github.com/contractflow/review-api/internal/core/ports"
)

type stubDocumentRepo struct {
	createFn       func(ctx context.Context, d *domain.Document) error
	findByIDFn     func(ctx context.Context, id string) (*domain.Document, error)
	listForUserFn  func(ctx context.Context, userID string, role domain.Role, status domain.DocumentStatus) ([]*domain.Document, error)
	updateFn       func(ctx context.Context, id string, patch ports.DocumentPatch) error
	promoteStaleFn func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (s *stubDocumentRepo) Create(ctx context.Context, d *domain.Document) error {
	return s.createFn(ctx, d)
}

func (s *stubDocumentRepo) FindByID(ctx context.Context, id string) (*domain.Document, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubDocumentRepo) ListForUser(ctx context.Context, userID string, role domain.Role, status domain.DocumentStatus) ([]*domain.Document, error) {
	return s.listForUserFn(ctx, userID, role, status)
}

func (s *stubDocumentRepo) Update(ctx context.Context, id string, patch ports.DocumentPatch) error {
	return s.updateFn(ctx, id, patch)
}

func (s *stubDocumentRepo) PromoteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.promoteStaleFn(ctx, cutoff)
}

type stubUserRepo struct {
	createFn      func(ctx context.Context, u *domain.User) error
	findByIDFn    func(ctx context.Context, id string) (*domain.User, error)
	findByEmailFn func(ctx context.Context, email string) (*domain.User, error)
}

func (s *stubUserRepo) Create(ctx context.Context, u *domain.User) error {
	return s.createFn(ctx, u)
}

func (s *stubUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findByEmailFn(ctx, email)
}

type stubQueue struct {
	enqueued []ports.Notification
}

func (s *stubQueue) Enqueue(n ports.Notification) {
	s.enqueued = append(s.enqueued, n)
}

type stubMailer struct {
	sent   []ports.MailMessage
	sendFn func(ctx context.Context, msg ports.MailMessage) error
}

func (s *stubMailer) Send(ctx context.Context, msg ports.MailMessage) error {
	s.sent = append(s.sent, msg)
	if s.sendFn != nil {
		return s.sendFn(ctx, msg)
	}
	return nil
}

func testDocument(status domain.DocumentStatus) *domain.Document {
	return &domain.Document{
		ID:         "doc-1",
		Title:      "nda.sfdt",
		Content:    "Y29udGVudA==",
		ReviewerID: "rev-1",
		Approvers:  []string{"app-1"},
		Status:     status,
	}
}

func newTestDocumentService(docs ports.DocumentRepository, users ports.UserRepository, queue ports.NotificationQueue, mailer ports.Mailer) *DocumentService {
	return NewDocumentService(docs, users, queue, mailer, zerolog.Nop())
}

func TestDocumentService_Create_RequiresReviewer(t *testing.T) {
	svc := newTestDocumentService(&stubDocumentRepo{}, &stubUserRepo{}, nil, nil)

	_, err := svc.Create(context.Background(), ports.Actor{ID: "app-1", Role: domain.RoleApprover}, ports.CreateDocumentInput{Title: "x"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestDocumentService_Create_SetsDefaults(t *testing.T) {
	var created *domain.Document
	docs := &stubDocumentRepo{
		createFn: func(ctx context.Context, d *domain.Document) error {
			created = d
			return nil
		},
	}
	svc := newTestDocumentService(docs, &stubUserRepo{}, nil, nil)

	doc, err := svc.Create(context.Background(), ports.Actor{ID: "rev-1", Role: domain.RoleReviewer}, ports.CreateDocumentInput{Title: "nda.sfdt"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created == nil {
		t.Fatalf("repository not called")
	}
	if doc.Status != domain.StatusNew {
		t.Fatalf("expected status new, got %s", doc.Status)
	}
	if doc.ReviewerID != "rev-1" {
		t.Fatalf("expected acting reviewer as owner, got %s", doc.ReviewerID)
	}
	if doc.ID == "" {
		t.Fatalf("expected generated id")
	}
	if doc.Approvers == nil || len(doc.Approvers) != 0 {
		t.Fatalf("expected empty approver list, got %v", doc.Approvers)
	}
}

func TestDocumentService_Get_ForbiddenForUnassigned(t *testing.T) {
	docs := &stubDocumentRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.Document, error) {
			return testDocument(domain.StatusNew), nil
		},
	}
	svc := newTestDocumentService(docs, &stubUserRepo{}, nil, nil)

	_, err := svc.Get(context.Background(), ports.Actor{ID: "stranger", Role: domain.RoleReviewer}, "doc-1")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestDocumentService_Get_OpensNewDocument(t *testing.T) {
	var patched *ports.DocumentPatch
	docs := &stubDocumentRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.Document, error) {
			return testDocument(domain.StatusNew), nil
		},
		updateFn: func(ctx context.Context, id string, patch ports.DocumentPatch) error {
			patched = &patch
			return nil
		},
	}
	svc := newTestDocumentService(docs, &stubUserRepo{}, nil, nil)

	doc, err := svc.Get(context.Background(), ports.Actor{ID: "rev-1", Role: domain.RoleReviewer}, "doc-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if doc.Status != domain.StatusInProgress {
		t.Fatalf("expected in_progress, got %s", doc.Status)
	}
	if patched == nil || patched.Status == nil || *patched.Status != domain.StatusInProgress {
		t.Fatalf("expected status patch to in_progress, got %+v", patched)
	}
}

func TestDocumentService_Get_InProgressIsNoOp(t *testing.T) {
	docs := &stubDocumentRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.Document, error) {
			return testDocument(domain.StatusInProgress), nil
		},
		updateFn: func(ctx context.Context, id string, patch ports.DocumentPatch) error {
			t.Fatalf("no write expected on re-read")
			return nil
		},
	}
	svc := newTestDocumentService(docs, &stubUserRepo{}, nil, nil)

	doc, err := svc.Get(context.Background(), ports.Actor{ID: "app-1", Role: domain.RoleApprover}, "doc-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if doc.Status != domain.StatusInProgress {
		t.Fatalf("expected in_progress, got %s", doc.Status)
	}
}

func TestDocumentService_Update_ReviewerSubmitsChanges(t *testing.T) {
	queue := &stubQueue{}
	users := &stubUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Email: id + "@example.com", Role: domain.RoleApprover}, nil
		},
	}
	var patched *ports.DocumentPatch
	docs := &stubDocumentRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.Document, error) {
			return testDocument(domain.StatusInProgress), nil
		},
		updateFn: func(ctx context.Context, id string, patch ports.DocumentPatch) error {
			patched = &patch
			return nil
		},
	}
	svc := newTestDocumentService(docs, users, queue, nil)

	status := domain.StatusChangesMade
	summary := "tightened the indemnity clause"
	doc, err := svc.Update(context.Background(), ports.Actor{ID: "rev-1", Role: domain.RoleReviewer}, "doc-1",
		ports.UpdateDocumentInput{Status: &status, ChangesSummary: &summary})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if doc.Status != domain.StatusChangesMade {
		t.Fatalf("expected changes_made, got %s", doc.Status)
	}
	if patched == nil || patched.Status == nil || *patched.Status != domain.StatusChangesMade {
		t.Fatalf("expected persisted status changes_made, got %+v", patched)
	}
	if len(queue.enqueued) != 1 {
		t.Fatalf("expected one approver notification, got %d", len(queue.enqueued))
	}
	n := queue.enqueued[0]
	if n.Kind != ports.NotificationChangesReady || n.RecipientEmail != "app-1@example.com" {
		t.Fatalf("unexpected notification: %+v", n)
	}
	if n.Notes != summary {
		t.Fatalf("expected summary forwarded, got %q", n.Notes)
	}
}

func TestDocumentService_Update_ReviewerCannotApprove(t *testing.T) {
	docs := &stubDocumentRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.Document, error) {
			return testDocument(domain.StatusInProgress), nil
		},
	}
	svc := newTestDocumentService(docs, &stubUserRepo{}, nil, nil)

	status := domain.StatusApproved
	_, err := svc.Update(context.Background(), ports.Actor{ID: "rev-1", Role: domain.RoleReviewer}, "doc-1",
		ports.UpdateDocumentInput{Status: &status})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestDocumentService_Update_ApproverApproves(t *testing.T) {
	for _, from := range []domain.DocumentStatus{domain.StatusInProgress, domain.StatusChangesMade} {
		queue := &stubQueue{}
		users := &stubUserRepo{
			findByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
				return &domain.User{ID: id, Email: "rev@example.com", Role: domain.RoleReviewer}, nil
			},
		}
		docs := &stubDocumentRepo{
			findByIDFn: func(ctx context.Context, id string) (*domain.Document, error) {
				return testDocument(from), nil
			},
			updateFn: func(ctx context.Context, id string, patch ports.DocumentPatch) error {
				return nil
			},
		}
		svc := newTestDocumentService(docs, users, queue, nil)

		status := domain.StatusApproved
		doc, err := svc.Update(context.Background(), ports.Actor{ID: "app-1", Role: domain.RoleApprover}, "doc-1",
			ports.UpdateDocumentInput{Status: &status})
		if err != nil {
			t.Fatalf("approve from %s: %v", from, err)
		}
		if doc.Status != domain.StatusApproved {
			t.Fatalf("expected approved from %s, got %s", from, doc.Status)
		}
		if len(queue.enqueued) != 1 || queue.enqueued[0].Kind != ports.NotificationApproved {
			t.Fatalf("expected approval notification, got %+v", queue.enqueued)
		}
	}
}

func TestDocumentService_Update_ApproverCannotApproveNew(t *testing.T) {
	docs := &stubDocumentRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.Document, error) {
			return testDocument(domain.StatusNew), nil
		},
	}
	svc := newTestDocumentService(docs, &stubUserRepo{}, nil, nil)

	status := domain.StatusApproved
	_, err := svc.Update(context.Background(), ports.Actor{ID: "app-1", Role: domain.RoleApprover}, "doc-1",
		ports.UpdateDocumentInput{Status: &status})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestDocumentService_Update_ApproverRequestsChanges(t *testing.T) {
	queue := &stubQueue{}
	users := &stubUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Email: "rev@example.com", Role: domain.RoleReviewer}, nil
		},
	}
	var patched *ports.DocumentPatch
	docs := &stubDocumentRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.Document, error) {
			return testDocument(domain.StatusChangesMade), nil
		},
		updateFn: func(ctx context.Context, id string, patch ports.DocumentPatch) error {
			patched = &patch
			return nil
		},
	}
	svc := newTestDocumentService(docs, users, queue, nil)

	notes := "section 4 needs a cap on liability"
	doc, err := svc.Update(context.Background(), ports.Actor{ID: "app-1", Role: domain.RoleApprover}, "doc-1",
		ports.UpdateDocumentInput{Notes: &notes})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if doc.Status != domain.StatusInProgress {
		t.Fatalf("expected document returned to in_progress, got %s", doc.Status)
	}
	if doc.LastReviewedBy != "app-1" {
		t.Fatalf("expected last_reviewed_by recorded, got %q", doc.LastReviewedBy)
	}
	if patched == nil || patched.LastReviewedBy == nil || *patched.LastReviewedBy != "app-1" {
		t.Fatalf("expected last_reviewed_by persisted, got %+v", patched)
	}
	if len(queue.enqueued) != 1 || queue.enqueued[0].Kind != ports.NotificationReturned {
		t.Fatalf("expected returned notification, got %+v", queue.enqueued)
	}
}

func TestDocumentService_Update_UnassignedApproverForbidden(t *testing.T) {
	docs := &stubDocumentRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.Document, error) {
			return testDocument(domain.StatusInProgress), nil
		},
	}
	svc := newTestDocumentService(docs, &stubUserRepo{}, nil, nil)

	status := domain.StatusApproved
	_, err := svc.Update(context.Background(), ports.Actor{ID: "other-approver", Role: domain.RoleApprover}, "doc-1",
		ports.UpdateDocumentInput{Status: &status})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestDocumentService_AddApprovers_RejectsNonApprover(t *testing.T) {
	users := &stubUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			if id == "app-ok" {
				return &domain.User{ID: id, Role: domain.RoleApprover}, nil
			}
			return &domain.User{ID: id, Role: domain.RoleReviewer}, nil
		},
	}
	docs := &stubDocumentRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.Document, error) {
			return testDocument(domain.StatusNew), nil
		},
		updateFn: func(ctx context.Context, id string, patch ports.DocumentPatch) error {
			t.Fatalf("no write expected when validation fails")
			return nil
		},
	}
	svc := newTestDocumentService(docs, users, nil, nil)

	err := svc.AddApprovers(context.Background(), ports.Actor{ID: "rev-1", Role: domain.RoleReviewer}, "doc-1",
		[]string{"app-ok", "not-an-approver"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestDocumentService_AddApprovers_OnlyOwningReviewer(t *testing.T) {
	docs := &stubDocumentRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.Document, error) {
			return testDocument(domain.StatusNew), nil
		},
	}
	svc := newTestDocumentService(docs, &stubUserRepo{}, nil, nil)

	err := svc.AddApprovers(context.Background(), ports.Actor{ID: "other-reviewer", Role: domain.RoleReviewer}, "doc-1", []string{"app-1"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestDocumentService_AddApprovers_PersistsList(t *testing.T) {
	users := &stubUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Role: domain.RoleApprover}, nil
		},
	}
	var patched *ports.DocumentPatch
	docs := &stubDocumentRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.Document, error) {
			return testDocument(domain.StatusNew), nil
		},
		updateFn: func(ctx context.Context, id string, patch ports.DocumentPatch) error {
			patched = &patch
			return nil
		},
	}
	svc := newTestDocumentService(docs, users, nil, nil)

	if err := svc.AddApprovers(context.Background(), ports.Actor{ID: "rev-1", Role: domain.RoleReviewer}, "doc-1", []string{"app-2", "app-3"}); err != nil {
		t.Fatalf("add approvers: %v", err)
	}
	if patched == nil || patched.Approvers == nil || len(*patched.Approvers) != 2 {
		t.Fatalf("expected approver list persisted, got %+v", patched)
	}
}

func TestDocumentService_SendByEmail_DecodesAttachment(t *testing.T) {
	mailer := &stubMailer{}
	docs := &stubDocumentRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.Document, error) {
			return testDocument(domain.StatusApproved), nil
		},
	}
	svc := newTestDocumentService(docs, &stubUserRepo{}, nil, mailer)

	err := svc.SendByEmail(context.Background(), ports.SendDocumentEmailInput{
		DocumentID:     "doc-1",
		RecipientEmail: "legal@example.com",
		Subject:        "Final NDA",
		Message:        "Please find the document attached.",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one mail, got %d", len(mailer.sent))
	}
	msg := mailer.sent[0]
	if msg.AttachmentName != "nda.sfdt.docx" {
		t.Fatalf("unexpected attachment name %q", msg.AttachmentName)
	}
	if string(msg.Attachment) != "content" {
		t.Fatalf("expected decoded attachment, got %q", msg.Attachment)
	}
}

func TestDocumentService_SendByEmail_MailerFailure(t *testing.T) {
	mailer := &stubMailer{
		sendFn: func(ctx context.Context, msg ports.MailMessage) error {
			return errors.New("connection refused")
		},
	}
	docs := &stubDocumentRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.Document, error) {
			return testDocument(domain.StatusApproved), nil
		},
	}
	svc := newTestDocumentService(docs, &stubUserRepo{}, nil, mailer)

	err := svc.SendByEmail(context.Background(), ports.SendDocumentEmailInput{
		DocumentID:     "doc-1",
		RecipientEmail: "legal@example.com",
	})
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestDocumentService_SendByEmail_UnknownDocument(t *testing.T) {
	docs := &stubDocumentRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.Document, error) {
			return nil, domain.ErrDocumentNotFound
		},
	}
	svc := newTestDocumentService(docs, &stubUserRepo{}, nil, &stubMailer{})

	err := svc.SendByEmail(context.Background(), ports.SendDocumentEmailInput{DocumentID: "ghost", RecipientEmail: "a@b.c"})
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}
