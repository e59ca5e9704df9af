// Package auth checks administrator credentials and manages admin accounts.
package auth

import (
	"context"
	"sync"

	"ecotech_server/internal/config"
	"ecotech_server/internal/dao/repository"
	"ecotech_server/internal/dto/request"
	"ecotech_server/internal/model"
	"ecotech_server/pkg/errorx"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// dummyPasswordHash is compared against when the username does not exist,
// so a miss costs the same bcrypt work as a wrong password.
func dummyPasswordHash() []byte {
	dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("ecotech-timing-guard"), bcrypt.DefaultCost)
		if err != nil {
			panic(err)
		}
		dummyHash = h
	})
	return dummyHash
}

// authService is the AuthService implementation.
type authService struct {
	repos    *repository.Repositories
	validate *validator.Validate
}

// NewAuthService injects the repositories.
func NewAuthService(repos *repository.Repositories) *authService {
	return &authService{repos: repos, validate: validator.New()}
}

// Login never says which of username or password was wrong.
func (s *authService) Login(ctx context.Context, req request.LoginRequest) (*model.Admin, error) {
	admin, err := s.repos.Admin.FindByUsername(ctx, req.Username)
	if err != nil {
		if errorx.IsNotFound(err) {
			_ = bcrypt.CompareHashAndPassword(dummyPasswordHash(), []byte(req.Password))
			return nil, errorx.ErrInvalidCredentials
		}
		zap.L().Error("load admin for login", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if !admin.CheckPassword(req.Password) || !admin.IsActive {
		return nil, errorx.ErrInvalidCredentials
	}
	zap.L().Info("admin logged in", zap.Uint("admin_id", admin.ID), zap.String("username", admin.Username))
	return admin, nil
}

func (s *authService) GetAdmin(ctx context.Context, id uint) (*model.Admin, error) {
	return s.repos.Admin.FindByID(ctx, id)
}

// EnsureDefaultAdmin creates the configured admin if the admins table is empty.
// It reports whether an account was created.
func (s *authService) EnsureDefaultAdmin(ctx context.Context, cfg config.AdminConfig) (bool, error) {
	n, err := s.repos.Admin.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if _, err := s.CreateAdmin(ctx, cfg.Username, cfg.Email, cfg.Password); err != nil {
		return false, err
	}
	zap.L().Info("default admin created", zap.String("username", cfg.Username))
	return true, nil
}

type newAdmin struct {
	Username string `validate:"required,min=3,max=80"`
	Email    string `validate:"required,email,max=120"`
	Password string `validate:"required,min=6"`
}

func (s *authService) CreateAdmin(ctx context.Context, username, email, password string) (*model.Admin, error) {
	if err := s.validate.Struct(newAdmin{Username: username, Email: email, Password: password}); err != nil {
		return nil, errorx.Wrap(err, errorx.CodeInvalidParam, "invalid admin account")
	}
	admin := &model.Admin{
		Username:    username,
		Email:       email,
		RawPassword: password,
		IsActive:    true,
	}
	if err := s.repos.Admin.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *authService) SetPassword(ctx context.Context, username, password string) error {
	if err := s.validate.Var(password, "required,min=6"); err != nil {
		return errorx.Wrap(err, errorx.CodeInvalidParam, "password must be at least 6 characters")
	}
	admin, err := s.repos.Admin.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	admin.RawPassword = password
	if err := s.repos.Admin.Update(ctx, admin); err != nil {
		return err
	}
	zap.L().Info("admin password changed", zap.String("username", username))
	return nil
}
