package auth

import (
	"context"
	"testing"

	"ecotech_server/internal/config"
	"ecotech_server/internal/dao/repository"
	"ecotech_server/internal/dto/request"
	"ecotech_server/internal/testutil"
	"ecotech_server/pkg/errorx"
)

func newService(t *testing.T) (*authService, *repository.Repositories) {
	t.Helper()
	repos := repository.NewRepositories(testutil.NewDB(t))
	return NewAuthService(repos), repos
}

var defaultAdmin = config.AdminConfig{Username: "admin", Email: "admin@ecotechservices.com", Password: "admin123"}

func TestEnsureDefaultAdminOnlyOnce(t *testing.T) {
	svc, repos := newService(t)
	ctx := context.Background()

	created, err := svc.EnsureDefaultAdmin(ctx, defaultAdmin)
	if err != nil || !created {
		t.Fatalf("first call: created=%v err=%v", created, err)
	}
	created, err = svc.EnsureDefaultAdmin(ctx, defaultAdmin)
	if err != nil || created {
		t.Fatalf("second call: created=%v err=%v", created, err)
	}
	if n, _ := repos.Admin.Count(ctx); n != 1 {
		t.Fatalf("admins = %d", n)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	if _, err := svc.EnsureDefaultAdmin(ctx, defaultAdmin); err != nil {
		t.Fatalf("seed: %v", err)
	}

	admin, err := svc.Login(ctx, request.LoginRequest{Username: "admin", Password: "admin123"})
	if err != nil || admin.Username != "admin" {
		t.Fatalf("valid login: %v %+v", err, admin)
	}

	_, wrongPassword := svc.Login(ctx, request.LoginRequest{Username: "admin", Password: "nope"})
	_, unknownUser := svc.Login(ctx, request.LoginRequest{Username: "ghost", Password: "admin123"})
	for _, err := range []error{wrongPassword, unknownUser} {
		if errorx.GetCode(err) != errorx.CodeUnauthorized {
			t.Fatalf("expected CodeUnauthorized, got %v", err)
		}
	}
	// Same message either way, so usernames cannot be enumerated.
	if wrongPassword.Error() != unknownUser.Error() {
		t.Fatalf("messages differ: %q vs %q", wrongPassword, unknownUser)
	}
	if wrongPassword.Error() != "Invalid username or password. Please try again." {
		t.Fatalf("message = %q", wrongPassword)
	}
}

func TestLoginRejectsInactiveAdmin(t *testing.T) {
	svc, repos := newService(t)
	ctx := context.Background()
	admin, err := svc.CreateAdmin(ctx, "editor", "editor@example.com", "secret99")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	admin.IsActive = false
	if err := repos.Admin.Update(ctx, admin); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := svc.Login(ctx, request.LoginRequest{Username: "editor", Password: "secret99"}); errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("inactive admin logged in: %v", err)
	}
}

func TestCreateAdminValidation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	bad := []struct{ username, email, password string }{
		{"ab", "a@example.com", "secret99"},
		{"valid", "not-an-email", "secret99"},
		{"valid", "a@example.com", "123"},
	}
	for _, b := range bad {
		if _, err := svc.CreateAdmin(ctx, b.username, b.email, b.password); errorx.GetCode(err) != errorx.CodeInvalidParam {
			t.Fatalf("CreateAdmin(%q, %q) = %v", b.username, b.email, err)
		}
	}
}

func TestSetPassword(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	if _, err := svc.EnsureDefaultAdmin(ctx, defaultAdmin); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := svc.SetPassword(ctx, "admin", "n3w-passw0rd"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	if _, err := svc.Login(ctx, request.LoginRequest{Username: "admin", Password: "admin123"}); err == nil {
		t.Fatalf("old password still works")
	}
	if _, err := svc.Login(ctx, request.LoginRequest{Username: "admin", Password: "n3w-passw0rd"}); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
	if err := svc.SetPassword(ctx, "ghost", "whatever1"); !errorx.IsNotFound(err) {
		t.Fatalf("unknown admin: %v", err)
	}
}
