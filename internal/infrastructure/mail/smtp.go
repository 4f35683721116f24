// Package mail implements ports.Mailer over SMTP.
package mail

import (
	"bytes"
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/contractflow/review-api/internal/core/ports"
)

// Config captures the SMTP settings. An empty Email disables sending.
type Config struct {
	Host     string
	Port     int
	Email    string
	Password string
}

// Mailer sends e-mail through an implicit-TLS SMTP endpoint (port 465 style).
type Mailer struct {
	client *gomail.Client
	from   string
}

// NewMailer builds the SMTP client. Returns (nil, nil) when no sender
// address is configured so callers can wire a no-op.
func NewMailer(cfg Config) (*Mailer, error) {
	if cfg.Email == "" {
		return nil, nil
	}

	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSSL(),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Email),
		gomail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &Mailer{client: client, from: cfg.Email}, nil
}

func (m *Mailer) Send(ctx context.Context, msg ports.MailMessage) error {
	message := gomail.NewMsg()
	if err := message.From(m.from); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := message.To(msg.To); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	message.Subject(msg.Subject)
	message.SetBodyString(gomail.TypeTextPlain, msg.Body)

	if msg.AttachmentName != "" {
		if err := message.AttachReader(msg.AttachmentName, bytes.NewReader(msg.Attachment)); err != nil {
			return fmt.Errorf("smtp attach: %w", err)
		}
	}

	if err := m.client.DialAndSendWithContext(ctx, message); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
