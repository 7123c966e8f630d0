package ports

import "context"

// Notification kinds.
const (
	NotifyOrder   = "order"
	NotifyContact = "contact"
	NotifyVerify  = "verification"
)

// Notification is the DTO handed to the dispatcher after a primary write.
// Delivery is best-effort and never affects the triggering operation.
type Notification struct {
	Kind          string
	OrderID       string
	ServiceName   string
	CustomerName  string
	CustomerEmail string
	Subject       string
	Message       string
	FileURL       string
	// VerifyToken is set for verification notifications.
	VerifyToken string
}

// NotificationService delivers a single notification. Implementations report
// an error for logging/metrics only; callers must not propagate it.
type NotificationService interface {
	Process(ctx context.Context, n Notification) error
}

// Mailer is the outbound transactional-email collaborator.
type Mailer interface {
	// Enabled reports whether a real provider credential is configured.
	// When false, callers log the message locally and report the send as
	// skipped rather than attempting delivery.
	Enabled() bool
	Send(ctx context.Context, to, subject, html string) error
}
