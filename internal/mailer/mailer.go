// Package mailer wraps the Mailgun client behind a small transport
// interface so the notification dispatcher can be tested without sending
// real mail.
package mailer

import (
	"context"

	"github.com/mailgun/mailgun-go/v3"

	"food-donation-api-server/config"
)

// Transport sends plain-text email, optionally with a single binary
// attachment. Both calls are best effort from the caller's point of view.
type Transport interface {
	Send(ctx context.Context, to, subject, body string) error
	SendWithAttachment(ctx context.Context, to, subject, body string, attachment []byte, filename, mimeType string) error
}

type Mailgun struct {
	mg     *mailgun.MailgunImpl
	sender string
}

func NewMailgun(cfg config.MailConfig) *Mailgun {
	return &Mailgun{
		mg:     mailgun.NewMailgun(cfg.Domain, cfg.APIKey),
		sender: cfg.Sender,
	}
}

func (m *Mailgun) Send(ctx context.Context, to, subject, body string) error {
	message := m.mg.NewMessage(m.sender, subject, body, to)
	_, _, err := m.mg.Send(ctx, message)
	return err
}

// SendWithAttachment attaches the raw bytes under the given filename. The
// mimeType is derived from the filename by Mailgun; the parameter is kept
// so callers do not need to know that.
func (m *Mailgun) SendWithAttachment(ctx context.Context, to, subject, body string, attachment []byte, filename, mimeType string) error {
	if filename == "" {
		filename = "proof.jpg"
	}
	message := m.mg.NewMessage(m.sender, subject, body, to)
	message.AddBufferAttachment(filename, attachment)
	_, _, err := m.mg.Send(ctx, message)
	return err
}
