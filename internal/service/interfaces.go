// Package service defines the business layer interfaces used by handlers.
// Handlers depend on these interfaces so they can be tested with stubs.
package service

import (
	"context"

	"ecotech_server/internal/config"
	"ecotech_server/internal/dto/request"
	"ecotech_server/internal/dto/respond"
	"ecotech_server/internal/model"
)

// ApplicationService covers the internship intake and the admin review workflow.
type ApplicationService interface {
	// Submit validates the resume, stores it and creates a pending application
	Submit(ctx context.Context, req request.ApplyRequest) (*model.InternshipApplication, error)
	// Dashboard returns the counters and the most recent applications
	Dashboard(ctx context.Context) (*respond.DashboardRespond, error)
	// Chart returns monthly and per-status counts for the dashboard charts
	Chart(ctx context.Context) (*respond.ChartRespond, error)
	// List returns one filtered page of applications
	List(ctx context.Context, req request.ListApplicationsRequest) (*respond.ApplicationListRespond, error)
	// Get loads one application
	Get(ctx context.Context, id uint) (*model.InternshipApplication, error)
	// UpdateReview sets status and notes and stamps reviewed_at
	UpdateReview(ctx context.Context, id uint, req request.UpdateApplicationRequest) error
	// OpenResume opens the stored resume of an application
	OpenResume(ctx context.Context, id uint) (*respond.ResumeFile, error)
}

// ContactService stores contact form submissions.
type ContactService interface {
	Submit(ctx context.Context, req request.ContactRequest) error
}

// AuthService checks admin credentials and manages admin accounts.
type AuthService interface {
	// Login returns the admin for valid credentials, errorx.ErrInvalidCredentials otherwise
	Login(ctx context.Context, req request.LoginRequest) (*model.Admin, error)
	// GetAdmin loads an admin by id
	GetAdmin(ctx context.Context, id uint) (*model.Admin, error)
	// EnsureDefaultAdmin seeds the configured admin when no admin exists
	EnsureDefaultAdmin(ctx context.Context, cfg config.AdminConfig) (bool, error)
	// CreateAdmin adds an admin account
	CreateAdmin(ctx context.Context, username, email, password string) (*model.Admin, error)
	// SetPassword replaces an admin's password
	SetPassword(ctx context.Context, username, password string) error
}

// ContentService serves the static marketing content.
type ContentService interface {
	Services() respond.ServiceCatalog
	Internships() []respond.InternshipPosition
}
