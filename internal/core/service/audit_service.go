package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/opendev-studio/site-api/internal/api/metrics"
	"github.com/opendev-studio/site-api/internal/core/domain"
	"github.com/opendev-studio/site-api/internal/core/ports"
)

const defaultAuditLimit = 50

// AuditService appends AdminAction records. Writes are best-effort: failures
// are logged and counted, never returned, so the triggering mutation is
// unaffected.
type AuditService struct {
	repo   ports.AuditRepository
	logger zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, logger zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger}
}

func (s *AuditService) Log(ctx context.Context, adminID, action, targetType, targetID string, details map[string]any) {
	if details == nil {
		details = map[string]any{}
	}
	a := &domain.AdminAction{
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, a); err != nil {
		metrics.AuditWriteFailuresTotal.Inc()
		s.logger.Warn().Err(err).
			Str("action", action).
			Str("target_type", targetType).
			Str("target_id", targetID).
			Msg("audit write failed")
	}
}

func (s *AuditService) Recent(ctx context.Context, limit int) ([]*domain.AdminAction, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	return s.repo.ListRecent(ctx, limit)
}
