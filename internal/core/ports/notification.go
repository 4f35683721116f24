package ports

import "context"

// NotificationKind distinguishes the workflow events that trigger mail.
type NotificationKind string

const (
	// NotificationChangesReady tells an approver the reviewer finished edits.
	NotificationChangesReady NotificationKind = "changes_ready"
	// NotificationApproved tells the reviewer the document was signed off.
	NotificationApproved NotificationKind = "approved"
	// NotificationReturned tells the reviewer an approver requested changes.
	NotificationReturned NotificationKind = "returned"
)

// Notification is one pending workflow notification.
type Notification struct {
	DocumentID     string
	DocumentTitle  string
	Kind           NotificationKind
	RecipientEmail string
	Notes          string
}

// NotificationQueue accepts notifications for asynchronous delivery.
type NotificationQueue interface {
	Enqueue(n Notification)
}

// Notifier delivers a single notification.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// MailMessage is a rendered outbound e-mail.
type MailMessage struct {
	To             string
	Subject        string
	Body           string
	AttachmentName string // empty = no attachment
	Attachment     []byte
}

// Mailer sends e-mail over the configured SMTP transport.
type Mailer interface {
	Send(ctx context.Context, m MailMessage) error
}
