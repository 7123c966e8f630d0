package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/opendev-studio/site-api/internal/core/domain"
	"github.com/opendev-studio/site-api/internal/core/ports"
)

// CatalogService implements use-cases for services, projects, and gallery
// images. Slug uniqueness is enforced here with an explicit lookup in
// addition to the repository's unique index.
type CatalogService struct {
	services ports.ServiceRepository
	projects ports.ProjectRepository
	images   ports.ProjectImageRepository
	audit    ports.AuditLogger
	logger   zerolog.Logger
}

func NewCatalogService(
	services ports.ServiceRepository,
	projects ports.ProjectRepository,
	images ports.ProjectImageRepository,
	audit ports.AuditLogger,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		services: services,
		projects: projects,
		images:   images,
		audit:    audit,
		logger:   logger,
	}
}

// NormalizeSlug lowercases and trims a slug; slugs are stored and compared
// on this form only.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// --- Services ---

func (s *CatalogService) ListServices(ctx context.Context, includeArchived bool) ([]*domain.Service, error) {
	return s.services.List(ctx, includeArchived)
}

func (s *CatalogService) GetService(ctx context.Context, ref string) (*domain.Service, error) {
	if _, err := primitive.ObjectIDFromHex(ref); err == nil {
		return s.services.FindByID(ctx, ref)
	}
	return s.services.FindBySlug(ctx, NormalizeSlug(ref))
}

func (s *CatalogService) CreateService(ctx context.Context, actorID string, in ports.CreateServiceInput) (*domain.Service, error) {
	slug := NormalizeSlug(in.Slug)

	if _, err := s.services.FindBySlug(ctx, slug); err == nil {
		return nil, domain.ErrSlugExists
	} else if !errors.Is(err, domain.ErrServiceNotFound) {
		return nil, err
	}

	created, err := s.services.Create(ctx, &domain.Service{
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		Slug:        slug,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log(ctx, actorID, "create_service", domain.TargetService, created.ID, map[string]any{"slug": created.Slug})
	s.logger.Info().Str("service_id", created.ID).Str("slug", created.Slug).Msg("service created")
	return created, nil
}

func (s *CatalogService) UpdateService(ctx context.Context, actorID, id string, in ports.UpdateServiceInput) (*domain.Service, error) {
	if in.Slug != nil {
		slug := NormalizeSlug(*in.Slug)
		in.Slug = &slug
		existing, err := s.services.FindBySlug(ctx, slug)
		if err == nil && existing.ID != id {
			return nil, domain.ErrSlugExists
		}
		if err != nil && !errors.Is(err, domain.ErrServiceNotFound) {
			return nil, err
		}
	}

	updated, err := s.services.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	s.audit.Log(ctx, actorID, "update_service", domain.TargetService, id, nil)
	return updated, nil
}

func (s *CatalogService) DeleteService(ctx context.Context, actorID, id string) error {
	if err := s.services.Delete(ctx, id); err != nil {
		return err
	}
	// Orders referencing the service are kept for historical record-keeping.
	s.audit.Log(ctx, actorID, "delete_service", domain.TargetService, id, nil)
	s.logger.Info().Str("service_id", id).Msg("service deleted")
	return nil
}

// --- Projects ---

func (s *CatalogService) ListProjects(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	return s.projects.List(ctx, includeArchived)
}

func (s *CatalogService) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.FindByID(ctx, id)
}

func (s *CatalogService) CreateProject(ctx context.Context, actorID string, in ports.CreateProjectInput) (*domain.Project, error) {
	created, err := s.projects.Create(ctx, &domain.Project{
		Title:        in.Title,
		Category:     in.Category,
		Description:  in.Description,
		MainImage:    in.MainImage,
		ExternalLink: in.ExternalLink,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log(ctx, actorID, "create_project", domain.TargetProject, created.ID, map[string]any{"title": created.Title})
	return created, nil
}

func (s *CatalogService) UpdateProject(ctx context.Context, actorID, id string, in ports.UpdateProjectInput) (*domain.Project, error) {
	updated, err := s.projects.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.audit.Log(ctx, actorID, "update_project", domain.TargetProject, id, nil)
	return updated, nil
}

// DeleteProject removes the project and cascades to its gallery images,
// which have no value once the parent is gone.
func (s *CatalogService) DeleteProject(ctx context.Context, actorID, id string) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}

	removed, err := s.images.DeleteByProject(ctx, id)
	if err != nil {
		// The parent is already gone; orphaned images are reported, not fatal.
		s.logger.Warn().Err(err).Str("project_id", id).Msg("image cascade failed")
	}

	s.audit.Log(ctx, actorID, "delete_project", domain.TargetProject, id, map[string]any{"imagesRemoved": removed})
	s.logger.Info().Str("project_id", id).Int64("images_removed", removed).Msg("project deleted")
	return nil
}

// --- Project images ---

func (s *CatalogService) ListProjectImages(ctx context.Context, projectID string) ([]*domain.ProjectImage, error) {
	return s.images.FindByProject(ctx, projectID)
}

func (s *CatalogService) AddProjectImage(ctx context.Context, actorID, projectID, imageURL string) (*domain.ProjectImage, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}

	created, err := s.images.Create(ctx, &domain.ProjectImage{
		ProjectID: projectID,
		ImageURL:  imageURL,
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log(ctx, actorID, "add_project_image", domain.TargetProject, projectID, map[string]any{"imageUrl": imageURL})
	return created, nil
}

func (s *CatalogService) DeleteProjectImage(ctx context.Context, actorID, id string) error {
	if err := s.images.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Log(ctx, actorID, "delete_project_image", domain.TargetProject, id, nil)
	return nil
}
