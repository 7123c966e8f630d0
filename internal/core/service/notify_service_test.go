package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/opendev-studio/site-api/internal/core/ports"
)

type stubMailer struct {
	enabled bool
	sent    []string // "to|subject"
	sendErr error
}

func (m *stubMailer) Enabled() bool { return m.enabled }

func (m *stubMailer) Send(_ context.Context, to, subject, _ string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, to+"|"+subject)
	return nil
}

func fixedAdmin(addr string) func(ctx context.Context) string {
	return func(context.Context) string { return addr }
}

func TestNotifyService_Disabled_SkipsDelivery(t *testing.T) {
	mailer := &stubMailer{enabled: false}
	svc := NewNotifyService(mailer, fixedAdmin("admin@opendev.com"), "http://localhost:8080", testLogger())

	err := svc.Process(context.Background(), ports.Notification{
		Kind:          ports.NotifyOrder,
		CustomerEmail: "alice@example.com",
	})
	if err != nil {
		t.Fatalf("disabled mailer must not error: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("nothing should be sent")
	}
}

func TestNotifyService_Order_NotifiesAdminAndCustomer(t *testing.T) {
	mailer := &stubMailer{enabled: true}
	svc := NewNotifyService(mailer, fixedAdmin("admin@opendev.com"), "http://localhost:8080", testLogger())

	err := svc.Process(context.Background(), ports.Notification{
		Kind:          ports.NotifyOrder,
		OrderID:       "order_1",
		ServiceName:   "Dév Web",
		CustomerName:  "Alice",
		CustomerEmail: "alice@example.com",
		Message:       "please build my site",
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(mailer.sent) != 2 {
		t.Fatalf("expected admin + customer emails, got %d", len(mailer.sent))
	}
	if !strings.HasPrefix(mailer.sent[0], "admin@opendev.com|") {
		t.Fatalf("admin email must go first: %v", mailer.sent)
	}
	if !strings.HasPrefix(mailer.sent[1], "alice@example.com|") {
		t.Fatalf("customer confirmation missing: %v", mailer.sent)
	}
}

func TestNotifyService_Contact_NoAdminAddressConfigured(t *testing.T) {
	mailer := &stubMailer{enabled: true}
	svc := NewNotifyService(mailer, fixedAdmin(""), "http://localhost:8080", testLogger())

	err := svc.Process(context.Background(), ports.Notification{
		Kind:          ports.NotifyContact,
		CustomerName:  "Alice",
		CustomerEmail: "alice@example.com",
		Message:       "bonjour",
	})
	if err != nil {
		t.Fatalf("missing admin address must not error: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("nothing should be sent without a recipient")
	}
}

func TestNotifyService_DeliveryFailureReported(t *testing.T) {
	mailer := &stubMailer{enabled: true, sendErr: errors.New("sendgrid 500")}
	svc := NewNotifyService(mailer, fixedAdmin("admin@opendev.com"), "http://localhost:8080", testLogger())

	err := svc.Process(context.Background(), ports.Notification{
		Kind:          ports.NotifyVerify,
		CustomerName:  "Alice",
		CustomerEmail: "alice@example.com",
		VerifyToken:   "tok",
	})
	if err == nil {
		t.Fatalf("delivery failure must be reported to the dispatcher for logging")
	}
}
