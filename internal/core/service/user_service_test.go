package service

import (
	"context"
	"errors"
	"testing"

	"github.com/opendev-studio/site-api/internal/core/domain"
	"github.com/opendev-studio/site-api/internal/core/ports"
)

func TestUserService_ChangeRole_InvalidRole(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["user_1"] = &domain.User{ID: "user_1", Role: domain.RoleUser}
	audit := &stubAudit{}
	svc := NewUserService(repo, audit, testLogger())

	_, err := svc.ChangeRole(context.Background(), "admin_1", "user_1", "superuser")
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if len(audit.entries) != 0 {
		t.Fatalf("rejected change must not be audited")
	}
}

func TestUserService_ChangeRole_AuditsOldAndNew(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["user_1"] = &domain.User{ID: "user_1", Role: domain.RoleUser}
	audit := &stubAudit{}
	svc := NewUserService(repo, audit, testLogger())

	updated, err := svc.ChangeRole(context.Background(), "admin_1", "user_1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("change role: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("role not applied: %s", updated.Role)
	}
	if len(audit.entries) != 1 || audit.entries[0] != "admin_1:change_role:user:user_1" {
		t.Fatalf("unexpected audit trail: %v", audit.entries)
	}
}

func TestUserService_SetBanned_AuditAction(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["user_1"] = &domain.User{ID: "user_1", Role: domain.RoleUser}
	audit := &stubAudit{}
	svc := NewUserService(repo, audit, testLogger())

	if _, err := svc.SetBanned(context.Background(), "admin_1", "user_1", true); err != nil {
		t.Fatalf("ban: %v", err)
	}
	if _, err := svc.SetBanned(context.Background(), "admin_1", "user_1", false); err != nil {
		t.Fatalf("unban: %v", err)
	}

	want := []string{
		"admin_1:ban_user:user:user_1",
		"admin_1:unban_user:user:user_1",
	}
	if len(audit.entries) != 2 || audit.entries[0] != want[0] || audit.entries[1] != want[1] {
		t.Fatalf("unexpected audit trail: %v", audit.entries)
	}
}

func TestUserService_List_ClampsAndNeverNil(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, &stubAudit{}, testLogger())

	page, err := svc.List(context.Background(), ports.ListUsersFilter{Page: -1, Limit: 0})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Page != 1 || page.Limit != 10 {
		t.Fatalf("expected defaults 1/10, got %d/%d", page.Page, page.Limit)
	}
	if page.Items == nil {
		t.Fatalf("items must never be nil")
	}
}

func TestUserService_Delete_Audited(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["user_1"] = &domain.User{ID: "user_1"}
	audit := &stubAudit{}
	svc := NewUserService(repo, audit, testLogger())

	if err := svc.Delete(context.Background(), "admin_1", "user_1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(audit.entries) != 1 || audit.entries[0] != "admin_1:delete_user:user:user_1" {
		t.Fatalf("unexpected audit trail: %v", audit.entries)
	}
}
