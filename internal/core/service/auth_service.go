package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/opendev-studio/site-api/internal/core/domain"
	"github.com/opendev-studio/site-api/internal/core/ports"
)

const verificationTTL = 24 * time.Hour

// AuthService implements registration, login, and email verification.
type AuthService struct {
	repo                ports.UserRepository
	notifier            Enqueuer
	jwtSecret           string
	tokenTTL            time.Duration
	requireVerification bool
	logger              zerolog.Logger
}

// Enqueuer hands notifications to the async dispatcher. A nil Enqueuer
// disables outbound notifications entirely.
type Enqueuer interface {
	Enqueue(n ports.Notification)
}

func NewAuthService(repo ports.UserRepository, notifier Enqueuer, jwtSecret string, tokenTTL time.Duration, requireVerification bool, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:                repo,
		notifier:            notifier,
		jwtSecret:           jwtSecret,
		tokenTTL:            tokenTTL,
		requireVerification: requireVerification,
		logger:              logger,
	}
}

// NormalizeEmail lowercases and trims an address; all email matching in the
// system happens on this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" || email == "" || len(password) < 6 {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	if !s.requireVerification {
		user.IsVerified = true
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if s.requireVerification {
		s.issueVerification(ctx, created)
	}

	s.logger.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, nil
}

// issueVerification signs a verification token and dispatches it by email.
// Failures here never fail the registration.
func (s *AuthService) issueVerification(ctx context.Context, user *domain.User) {
	token, err := s.signVerificationToken(user.ID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("verification token issue failed")
		return
	}
	expiry := time.Now().UTC().Add(verificationTTL)
	if err := s.repo.SetVerificationToken(ctx, user.ID, token, expiry); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("verification token store failed")
		return
	}
	if s.notifier != nil {
		s.notifier.Enqueue(ports.Notification{
			Kind:          ports.NotifyVerify,
			CustomerName:  user.Name,
			CustomerEmail: user.Email,
			VerifyToken:   token,
		})
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if user.IsBanned {
		return "", nil, domain.ErrAccountBanned
	}
	if s.requireVerification && !user.IsVerified {
		return "", nil, domain.ErrEmailNotVerified
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.signSessionToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login succeeded")
	return token, user, nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrVerificationToken
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return domain.ErrVerificationToken
	}

	userID, _ := claims["sub"].(string)
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.VerificationToken != token {
		return domain.ErrVerificationToken
	}
	if !user.VerificationTokenExpiry.IsZero() && user.VerificationTokenExpiry.Before(time.Now().UTC()) {
		return domain.ErrVerificationToken
	}

	return s.repo.MarkVerified(ctx, user.ID)
}

func (s *AuthService) signSessionToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) signVerificationToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(verificationTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
