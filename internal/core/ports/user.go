package ports

import (
	"context"
	"time"

	"github.com/opendev-studio/site-api/internal/core/domain"
)

// ListUsersFilter carries all query parameters for listing users.
type ListUsersFilter struct {
	Search string // optional: case-insensitive substring over name, email
	Page   int    // 1-based
	Limit  int
}

// UserPage is the uniform paginated envelope body for user listings.
type UserPage struct {
	Items      []*domain.User `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail matches the normalized (lowercase, trimmed) email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, f ListUsersFilter) ([]*domain.User, int64, error)
	UpdateRole(ctx context.Context, id, role string) (*domain.User, error)
	// UpdatePassword replaces the stored bcrypt hash.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateBan(ctx context.Context, id string, banned bool) (*domain.User, error)
	// SetVerificationToken stores a pending verification token and its expiry.
	SetVerificationToken(ctx context.Context, id, token string, expiry time.Time) error
	// MarkVerified sets isVerified and clears the verification token fields.
	MarkVerified(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// UserService defines admin use-case operations over accounts.
type UserService interface {
	List(ctx context.Context, f ListUsersFilter) (*UserPage, error)
	ChangeRole(ctx context.Context, actorID, id, role string) (*domain.User, error)
	SetBanned(ctx context.Context, actorID, id string, banned bool) (*domain.User, error)
	Delete(ctx context.Context, actorID, id string) error
}
