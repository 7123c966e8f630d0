package ports

import (
	"context"

	"github.com/opendev-studio/site-api/internal/core/domain"
)

// AuditRepository persists admin actions.
type AuditRepository interface {
	Insert(ctx context.Context, a *domain.AdminAction) error
	// ListRecent returns the most recent actions, newest first.
	ListRecent(ctx context.Context, limit int) ([]*domain.AdminAction, error)
}

// AuditLogger records privileged mutations. Recording is best-effort: a
// failed write is logged and swallowed, never surfaced to the caller.
type AuditLogger interface {
	Log(ctx context.Context, adminID, action, targetType, targetID string, details map[string]any)
	Recent(ctx context.Context, limit int) ([]*domain.AdminAction, error)
}
