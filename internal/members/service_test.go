package members

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEnsureMemberReturnsExisting(t *testing.T) {
	repo := NewMemoryRepo()
	existing := Member{ID: "m-1", Email: "auditor@example.com", OrganizationID: "org-1", Role: "admin"}
	if err := repo.Create(context.Background(), existing); err != nil {
		t.Fatalf("Create: %v", err)
	}

	svc := NewService(repo, "org-default")
	member, err := svc.EnsureMember(context.Background(), "Auditor@Example.com", "Someone Else")
	if err != nil {
		t.Fatalf("EnsureMember: %v", err)
	}
	if member.ID != "m-1" || member.Role != "admin" {
		t.Fatalf("expected existing member returned, got %#v", member)
	}
}

func TestEnsureMemberProvisionsIntoDefaultOrg(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, "org-default")
	svc.Now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	svc.NewID = func() string { return "m-new" }

	member, err := svc.EnsureMember(context.Background(), "new@example.com", "New Auditor")
	if err != nil {
		t.Fatalf("EnsureMember: %v", err)
	}
	if member.ID != "m-new" || member.OrganizationID != "org-default" || member.Role != "member" {
		t.Fatalf("unexpected member %#v", member)
	}

	stored, err := repo.FindByEmail(context.Background(), "new@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if stored.ID != "m-new" {
		t.Fatalf("expected member stored, got %#v", stored)
	}
}

func TestEnsureMemberRejectsUnknownWithoutDefaultOrg(t *testing.T) {
	svc := NewService(NewMemoryRepo(), "")

	if _, err := svc.EnsureMember(context.Background(), "stranger@example.com", "Stranger"); !errors.Is(err, ErrNotInvited) {
		t.Fatalf("expected ErrNotInvited, got %v", err)
	}
}

func TestEnsureMemberRejectsEmptyEmail(t *testing.T) {
	svc := NewService(NewMemoryRepo(), "org-default")

	if _, err := svc.EnsureMember(context.Background(), "   ", "Nobody"); !errors.Is(err, ErrNotInvited) {
		t.Fatalf("expected ErrNotInvited, got %v", err)
	}
}
