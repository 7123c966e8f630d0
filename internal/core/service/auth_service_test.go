package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/opendev-studio/site-api/internal/core/domain"
	"github.com/opendev-studio/site-api/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := *u
	clone.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, _ ports.ListUsersFilter) ([]*domain.User, int64, error) {
	var out []*domain.User
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id, role string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) UpdateBan(_ context.Context, id string, banned bool) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.IsBanned = banned
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) SetVerificationToken(_ context.Context, id, token string, expiry time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.VerificationToken = token
	u.VerificationTokenExpiry = expiry
	return nil
}

func (r *stubUserRepo) MarkVerified(_ context.Context, id string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsVerified = true
	u.VerificationToken = ""
	u.VerificationTokenExpiry = time.Time{}
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

const testSecret = "test-secret"

func newAuth(repo *stubUserRepo, notifier Enqueuer, requireVerification bool) *AuthService {
	return NewAuthService(repo, notifier, testSecret, time.Hour, requireVerification, testLogger())
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_NormalizesAndDefaults(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuth(repo, nil, false)

	user, err := svc.Register(context.Background(), "  Alice ", " Alice@Example.COM ", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role user, got %s", user.Role)
	}
	if !user.IsVerified {
		t.Fatalf("verification off, account should be usable immediately")
	}
	if user.PasswordHash == "secret123" {
		t.Fatalf("password stored in clear")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuth(repo, nil, false)

	if _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Register(context.Background(), "Alice 2", "ALICE@example.com", "secret123")
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_IssuesVerification(t *testing.T) {
	repo := newStubUserRepo()
	notifier := &stubEnqueuer{}
	svc := newAuth(repo, notifier, true)

	user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.IsVerified {
		t.Fatalf("account should start unverified")
	}
	if len(notifier.sent) != 1 || notifier.sent[0].Kind != ports.NotifyVerify {
		t.Fatalf("expected one verification notification, got %+v", notifier.sent)
	}
	if notifier.sent[0].VerifyToken == "" {
		t.Fatalf("verification notification carries no token")
	}
	if repo.users[user.ID].VerificationToken == "" {
		t.Fatalf("token not persisted")
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuth(repo, nil, false)
	if _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailSameError(t *testing.T) {
	svc := newAuth(newStubUserRepo(), nil, false)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown account must look like a bad password, got %v", err)
	}
}

func TestAuthService_Login_Banned(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuth(repo, nil, false)
	user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	repo.users[user.ID].IsBanned = true

	_, _, err = svc.Login(context.Background(), "alice@example.com", "secret123")
	if !errors.Is(err, domain.ErrAccountBanned) {
		t.Fatalf("expected ErrAccountBanned, got %v", err)
	}
}

func TestAuthService_Login_UnverifiedWhenRequired(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuth(repo, &stubEnqueuer{}, true)
	if _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "alice@example.com", "secret123")
	if !errors.Is(err, domain.ErrEmailNotVerified) {
		t.Fatalf("expected ErrEmailNotVerified, got %v", err)
	}
}

func TestAuthService_Login_TokenClaims(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuth(repo, nil, false)
	user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, _, err := svc.Login(context.Background(), "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !tkn.Valid {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims["sub"] != user.ID || claims["role"] != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

// ---------------------------------------------------------------------------
// Email verification
// ---------------------------------------------------------------------------

func TestAuthService_VerifyEmail_Roundtrip(t *testing.T) {
	repo := newStubUserRepo()
	notifier := &stubEnqueuer{}
	svc := newAuth(repo, notifier, true)

	user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token := notifier.sent[0].VerifyToken
	if err := svc.VerifyEmail(context.Background(), token); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !repo.users[user.ID].IsVerified {
		t.Fatalf("account not marked verified")
	}

	// Login now succeeds.
	if _, _, err := svc.Login(context.Background(), "alice@example.com", "secret123"); err != nil {
		t.Fatalf("login after verify: %v", err)
	}
}

func TestAuthService_VerifyEmail_BadToken(t *testing.T) {
	svc := newAuth(newStubUserRepo(), &stubEnqueuer{}, true)

	if err := svc.VerifyEmail(context.Background(), "garbage"); !errors.Is(err, domain.ErrVerificationToken) {
		t.Fatalf("expected ErrVerificationToken, got %v", err)
	}
	if err := svc.VerifyEmail(context.Background(), ""); !errors.Is(err, domain.ErrVerificationToken) {
		t.Fatalf("expected ErrVerificationToken for empty token, got %v", err)
	}
}

func TestAuthService_VerifyEmail_StaleToken(t *testing.T) {
	repo := newStubUserRepo()
	notifier := &stubEnqueuer{}
	svc := newAuth(repo, notifier, true)

	user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	first := notifier.sent[0].VerifyToken

	// A newer token supersedes the one in flight.
	repo.users[user.ID].VerificationToken = "replaced"

	if err := svc.VerifyEmail(context.Background(), first); !errors.Is(err, domain.ErrVerificationToken) {
		t.Fatalf("expected stale token rejection, got %v", err)
	}
}
