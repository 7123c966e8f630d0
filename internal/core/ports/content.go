package ports

import (
	"context"

	"github.com/opendev-studio/site-api/internal/core/domain"
)

// ContentRepository persists the SiteContent singleton.
type ContentRepository interface {
	// Find returns the singleton document, or domain.ErrContentNotFound when
	// it has never been written.
	Find(ctx context.Context) (*domain.SiteContent, error)
	Create(ctx context.Context, c *domain.SiteContent) (*domain.SiteContent, error)
	// Replace overwrites the singleton with c and returns the stored copy.
	Replace(ctx context.Context, c *domain.SiteContent) (*domain.SiteContent, error)
}

// ContentService exposes the site copy singleton.
type ContentService interface {
	// Get returns the singleton, creating it with defaults on first read.
	Get(ctx context.Context) (*domain.SiteContent, error)
	Update(ctx context.Context, actorID string, c *domain.SiteContent) (*domain.SiteContent, error)
}
