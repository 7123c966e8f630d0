package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/opendev-studio/site-api/internal/core/domain"
	"github.com/opendev-studio/site-api/internal/core/ports"
)

// UserService implements the admin-only account operations. Every mutation
// writes an audit record through the best-effort logger.
type UserService struct {
	repo   ports.UserRepository
	audit  ports.AuditLogger
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, audit ports.AuditLogger, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, audit: audit, logger: logger}
}

func (s *UserService) List(ctx context.Context, f ports.ListUsersFilter) (*ports.UserPage, error) {
	f.Page, f.Limit = clampPage(f.Page, f.Limit)

	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.User{}
	}

	return &ports.UserPage{
		Items:      items,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: totalPages(total, f.Limit),
	}, nil
}

func (s *UserService) ChangeRole(ctx context.Context, actorID, id, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	before, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}

	s.audit.Log(ctx, actorID, "change_role", domain.TargetUser, id, map[string]any{
		"oldRole": before.Role,
		"newRole": role,
	})
	s.logger.Info().Str("user_id", id).Str("role", role).Msg("user role changed")
	return updated, nil
}

func (s *UserService) SetBanned(ctx context.Context, actorID, id string, banned bool) (*domain.User, error) {
	updated, err := s.repo.UpdateBan(ctx, id, banned)
	if err != nil {
		return nil, err
	}

	action := "unban_user"
	if banned {
		action = "ban_user"
	}
	s.audit.Log(ctx, actorID, action, domain.TargetUser, id, map[string]any{"isBanned": banned})
	s.logger.Info().Str("user_id", id).Bool("banned", banned).Msg("user ban toggled")
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, actorID, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Log(ctx, actorID, "delete_user", domain.TargetUser, id, nil)
	return nil
}
