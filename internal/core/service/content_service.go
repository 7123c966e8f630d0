package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/opendev-studio/site-api/internal/core/domain"
	"github.com/opendev-studio/site-api/internal/core/ports"
)

// ContentService manages the SiteContent singleton.
type ContentService struct {
	repo   ports.ContentRepository
	audit  ports.AuditLogger
	logger zerolog.Logger
}

func NewContentService(repo ports.ContentRepository, audit ports.AuditLogger, logger zerolog.Logger) *ContentService {
	return &ContentService{repo: repo, audit: audit, logger: logger}
}

// Get returns the singleton document, creating it with defaults on first read.
func (s *ContentService) Get(ctx context.Context) (*domain.SiteContent, error) {
	content, err := s.repo.Find(ctx)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, domain.ErrContentNotFound) {
		return nil, err
	}

	defaults := domain.DefaultSiteContent()
	defaults.UpdatedAt = time.Now().UTC()
	created, err := s.repo.Create(ctx, &defaults)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Msg("site content created with defaults")
	return created, nil
}

func (s *ContentService) Update(ctx context.Context, actorID string, c *domain.SiteContent) (*domain.SiteContent, error) {
	c.UpdatedAt = time.Now().UTC()

	existing, err := s.repo.Find(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrContentNotFound) {
			return nil, err
		}
		created, err := s.repo.Create(ctx, c)
		if err != nil {
			return nil, err
		}
		s.audit.Log(ctx, actorID, "update_content", domain.TargetContent, created.ID, nil)
		return created, nil
	}

	c.ID = existing.ID
	updated, err := s.repo.Replace(ctx, c)
	if err != nil {
		return nil, err
	}

	s.audit.Log(ctx, actorID, "update_content", domain.TargetContent, updated.ID, nil)
	return updated, nil
}

// AdminEmail returns the notification address for order/contact emails:
// the site footer address when set, the configured fallback otherwise.
func (s *ContentService) AdminEmail(ctx context.Context, fallback string) string {
	content, err := s.repo.Find(ctx)
	if err == nil && content.Footer.Email != "" {
		return content.Footer.Email
	}
	return fallback
}
