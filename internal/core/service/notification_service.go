package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/contractflow/review-api/internal/api/metrics"
	"github.com/contractflow/review-api/internal/core/ports"
)

// NotificationService renders workflow notifications into e-mails and hands
// them to the mailer. Delivery failures are reported to the caller (the queue
// worker) which logs them; the workflow itself never blocks on mail.
type NotificationService struct {
	mailer ports.Mailer
	log    zerolog.Logger
}

func NewNotificationService(mailer ports.Mailer, log zerolog.Logger) *NotificationService {
	return &NotificationService{mailer: mailer, log: log}
}

func (s *NotificationService) Notify(ctx context.Context, n ports.Notification) error {
	if s.mailer == nil || n.RecipientEmail == "" {
		metrics.NotificationsTotal.WithLabelValues(string(n.Kind), "skipped").Inc()
		return nil
	}

	subject, body := render(n)
	if err := s.mailer.Send(ctx, ports.MailMessage{To: n.RecipientEmail, Subject: subject, Body: body}); err != nil {
		metrics.NotificationsTotal.WithLabelValues(string(n.Kind), "error").Inc()
		return fmt.Errorf("notify %s: %w", n.Kind, err)
	}

	metrics.NotificationsTotal.WithLabelValues(string(n.Kind), "sent").Inc()
	s.log.Info().
		Str("document_id", n.DocumentID).
		Str("kind", string(n.Kind)).
		Str("recipient", n.RecipientEmail).
		Msg("notification sent")
	return nil
}

func render(n ports.Notification) (subject, body string) {
	switch n.Kind {
	case ports.NotificationChangesReady:
		subject = fmt.Sprintf("Changes ready for review: %s", n.DocumentTitle)
		body = fmt.Sprintf("The reviewer has finished edits on %q and it is ready for your review.", n.DocumentTitle)
	case ports.NotificationApproved:
		subject = fmt.Sprintf("Document approved: %s", n.DocumentTitle)
		body = fmt.Sprintf("Your document %q has been approved.", n.DocumentTitle)
	case ports.NotificationReturned:
		subject = fmt.Sprintf("Changes requested: %s", n.DocumentTitle)
		body = fmt.Sprintf("An approver has sent %q back to you with requested changes.", n.DocumentTitle)
	default:
		subject = fmt.Sprintf("Update on document: %s", n.DocumentTitle)
		body = fmt.Sprintf("There is an update on document %q.", n.DocumentTitle)
	}
	if n.Notes != "" {
		body += "\n\nNotes:\n" + n.Notes
	}
	return subject, body
}
