// Package email implements the transactional-email collaborator: a SendGrid
// provider and the HTML bodies for order, contact, and verification mail.
package email

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer delivers email through the SendGrid v3 API.
type SendGridMailer struct {
	fromEmail string
	fromName  string
	client    *sendgrid.Client
}

// NewSendGridMailer returns a mailer backed by SendGrid. An empty apiKey
// yields a disabled mailer: Enabled() is false and Send is never reached
// by well-behaved callers.
func NewSendGridMailer(apiKey, fromEmail, fromName string) *SendGridMailer {
	m := &SendGridMailer{fromEmail: fromEmail, fromName: fromName}
	if apiKey != "" {
		m.client = sendgrid.NewSendClient(apiKey)
	}
	return m
}

func (m *SendGridMailer) Enabled() bool {
	return m.client != nil
}

func (m *SendGridMailer) Send(ctx context.Context, to, subject, html string) error {
	if m.client == nil {
		return fmt.Errorf("sendgrid: no API key configured")
	}

	from := mail.NewEmail(m.fromName, m.fromEmail)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), "", html)

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}
