package ports

import (
	"context"

	"github.com/opendev-studio/site-api/internal/core/domain"
)

// CreateServiceInput carries the fields accepted when creating a service.
type CreateServiceInput struct {
	Title       string
	Description string
	Image       string
	Slug        string
}

// UpdateServiceInput carries a partial update; nil fields are left untouched.
type UpdateServiceInput struct {
	Title       *string
	Description *string
	Image       *string
	Slug        *string
	IsArchived  *bool
}

// CreateProjectInput carries the fields accepted when creating a project.
type CreateProjectInput struct {
	Title        string
	Category     string
	Description  string
	MainImage    string
	ExternalLink string
}

// UpdateProjectInput carries a partial update; nil fields are left untouched.
type UpdateProjectInput struct {
	Title        *string
	Category     *string
	Description  *string
	MainImage    *string
	ExternalLink *string
	IsArchived   *bool
}

// ServiceRepository defines persistence operations for services.
type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) (*domain.Service, error)
	FindByID(ctx context.Context, id string) (*domain.Service, error)
	// FindBySlug looks a service up by its normalized slug.
	FindBySlug(ctx context.Context, slug string) (*domain.Service, error)
	// List returns services sorted by createdAt descending. Archived entries
	// are excluded unless includeArchived is set.
	List(ctx context.Context, includeArchived bool) ([]*domain.Service, error)
	Update(ctx context.Context, id string, in UpdateServiceInput) (*domain.Service, error)
	Delete(ctx context.Context, id string) error
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, id string, in UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

// ProjectImageRepository defines persistence operations for gallery images.
type ProjectImageRepository interface {
	Create(ctx context.Context, img *domain.ProjectImage) (*domain.ProjectImage, error)
	FindByProject(ctx context.Context, projectID string) ([]*domain.ProjectImage, error)
	Delete(ctx context.Context, id string) error
	// DeleteByProject removes every image belonging to projectID and reports
	// how many were removed.
	DeleteByProject(ctx context.Context, projectID string) (int64, error)
}

// CatalogService defines use-case operations over services, projects, and
// project images. Mutations take the acting admin's id for audit logging.
type CatalogService interface {
	ListServices(ctx context.Context, includeArchived bool) ([]*domain.Service, error)
	// GetService resolves ref as an ObjectID when it parses as one, and as a
	// slug otherwise.
	GetService(ctx context.Context, ref string) (*domain.Service, error)
	CreateService(ctx context.Context, actorID string, in CreateServiceInput) (*domain.Service, error)
	UpdateService(ctx context.Context, actorID, id string, in UpdateServiceInput) (*domain.Service, error)
	DeleteService(ctx context.Context, actorID, id string) error

	ListProjects(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	CreateProject(ctx context.Context, actorID string, in CreateProjectInput) (*domain.Project, error)
	UpdateProject(ctx context.Context, actorID, id string, in UpdateProjectInput) (*domain.Project, error)
	// DeleteProject removes the project and cascades to its gallery images.
	// Orders referencing a deleted service are intentionally retained.
	DeleteProject(ctx context.Context, actorID, id string) error

	ListProjectImages(ctx context.Context, projectID string) ([]*domain.ProjectImage, error)
	AddProjectImage(ctx context.Context, actorID, projectID, imageURL string) (*domain.ProjectImage, error)
	DeleteProjectImage(ctx context.Context, actorID, id string) error
}
