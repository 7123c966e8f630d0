package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/opendev-studio/site-api/internal/api/metrics"
	"github.com/opendev-studio/site-api/internal/core/ports"
	"github.com/opendev-studio/site-api/internal/infrastructure/email"
)

// NotifyService turns dispatched notifications into outbound emails.
// It runs on the dispatcher workers, off the request path; any failure is
// logged and counted, never propagated back to the primary operation.
type NotifyService struct {
	mailer     ports.Mailer
	adminEmail func(ctx context.Context) string
	baseURL    string
	logger     zerolog.Logger
}

// NewNotifyService builds a NotifyService. adminEmail resolves the current
// admin notification address per delivery (the site footer can change at
// any time); baseURL is used for links in email bodies.
func NewNotifyService(mailer ports.Mailer, adminEmail func(ctx context.Context) string, baseURL string, logger zerolog.Logger) *NotifyService {
	return &NotifyService{
		mailer:     mailer,
		adminEmail: adminEmail,
		baseURL:    baseURL,
		logger:     logger,
	}
}

func (s *NotifyService) Process(ctx context.Context, n ports.Notification) error {
	if !s.mailer.Enabled() {
		metrics.EmailsSentTotal.WithLabelValues("skipped").Inc()
		s.logger.Info().
			Str("kind", n.Kind).
			Str("to", n.CustomerEmail).
			Msg("email provider not configured, notification logged only")
		return nil
	}

	var err error
	switch n.Kind {
	case ports.NotifyOrder:
		err = s.processOrder(ctx, n)
	case ports.NotifyContact:
		err = s.processContact(ctx, n)
	case ports.NotifyVerify:
		err = s.processVerification(ctx, n)
	default:
		err = fmt.Errorf("unknown notification kind %q", n.Kind)
	}

	if err != nil {
		metrics.EmailsSentTotal.WithLabelValues("failed").Inc()
		s.logger.Warn().Err(err).Str("kind", n.Kind).Msg("notification delivery failed")
		return err
	}
	metrics.EmailsSentTotal.WithLabelValues("delivered").Inc()
	return nil
}

// processOrder notifies the admin address and confirms to the submitter.
// The admin email goes first; a submitter failure does not undo it.
func (s *NotifyService) processOrder(ctx context.Context, n ports.Notification) error {
	admin := s.adminEmail(ctx)
	if admin != "" {
		subject, html := email.OrderAdminEmail(s.baseURL, email.OrderData{
			OrderID:       n.OrderID,
			ServiceName:   n.ServiceName,
			CustomerName:  n.CustomerName,
			CustomerEmail: n.CustomerEmail,
			Message:       n.Message,
			FileURL:       n.FileURL,
		})
		if err := s.mailer.Send(ctx, admin, subject, html); err != nil {
			return fmt.Errorf("admin notification: %w", err)
		}
	}

	subject, html := email.OrderCustomerEmail(n.CustomerName, n.ServiceName)
	if err := s.mailer.Send(ctx, n.CustomerEmail, subject, html); err != nil {
		return fmt.Errorf("customer confirmation: %w", err)
	}
	return nil
}

func (s *NotifyService) processContact(ctx context.Context, n ports.Notification) error {
	admin := s.adminEmail(ctx)
	if admin == "" {
		s.logger.Info().Str("from", n.CustomerEmail).Msg("contact message received, no admin address configured")
		return nil
	}

	subject, html := email.ContactEmail(email.ContactData{
		Name:    n.CustomerName,
		Email:   n.CustomerEmail,
		Subject: n.Subject,
		Message: n.Message,
	})
	return s.mailer.Send(ctx, admin, subject, html)
}

func (s *NotifyService) processVerification(ctx context.Context, n ports.Notification) error {
	subject, html := email.VerificationEmail(s.baseURL, n.CustomerName, n.VerifyToken)
	return s.mailer.Send(ctx, n.CustomerEmail, subject, html)
}
