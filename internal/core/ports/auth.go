package ports

import (
	"context"

	"github.com/opendev-studio/site-api/internal/core/domain"
)

// AuthService implements credential registration, login, and email
// verification. Token issuance and password hashing live here; the transport
// layer only carries the opaque token.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	// Login returns a signed session token and the authenticated user.
	// Banned accounts are rejected; unverified accounts are rejected when
	// verification is required by configuration.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// VerifyEmail consumes a verification token and marks the account verified.
	VerifyEmail(ctx context.Context, token string) error
}
