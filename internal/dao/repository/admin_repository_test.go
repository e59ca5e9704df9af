package repository

import (
	"context"
	"testing"

	"ecotech_server/internal/model"
	"ecotech_server/pkg/errorx"
)

func TestAdminCreateAndFind(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	admin := &model.Admin{Username: "admin", Email: "admin@ecotechservices.com", RawPassword: "admin123", IsActive: true}
	if err := repos.Admin.Create(ctx, admin); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repos.Admin.FindByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !got.CheckPassword("admin123") {
		t.Fatalf("stored hash does not verify")
	}
	if got.CreatedAt.IsZero() {
		t.Fatalf("created_at not set")
	}

	byID, err := repos.Admin.FindByID(ctx, admin.ID)
	if err != nil || byID.Username != "admin" {
		t.Fatalf("find by id: %v %+v", err, byID)
	}

	n, err := repos.Admin.Count(ctx)
	if err != nil || n != 1 {
		t.Fatalf("count=%d err=%v", n, err)
	}
}

func TestAdminUniqueness(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	first := &model.Admin{Username: "admin", Email: "a@example.com", RawPassword: "pw-123456", IsActive: true}
	if err := repos.Admin.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	dupName := &model.Admin{Username: "admin", Email: "b@example.com", RawPassword: "pw-123456", IsActive: true}
	if err := repos.Admin.Create(ctx, dupName); errorx.GetCode(err) != errorx.CodeDBError {
		t.Fatalf("duplicate username should fail, got %v", err)
	}
	dupEmail := &model.Admin{Username: "other", Email: "a@example.com", RawPassword: "pw-123456", IsActive: true}
	if err := repos.Admin.Create(ctx, dupEmail); errorx.GetCode(err) != errorx.CodeDBError {
		t.Fatalf("duplicate email should fail, got %v", err)
	}
}

func TestAdminFindMissing(t *testing.T) {
	repos := newTestRepos(t)
	if _, err := repos.Admin.FindByUsername(context.Background(), "ghost"); !errorx.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestContactCreate(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	msg := &model.ContactMessage{FirstName: "Ravi", LastName: "K", Email: "ravi@example.com", Message: "Hello"}
	if err := repos.Contact.Create(ctx, msg); err != nil {
		t.Fatalf("create: %v", err)
	}
	if msg.ID == 0 || msg.CreatedAt.IsZero() {
		t.Fatalf("id/created_at not populated: %+v", msg)
	}
	n, err := repos.Contact.Count(ctx)
	if err != nil || n != 1 {
		t.Fatalf("count=%d err=%v", n, err)
	}
}
