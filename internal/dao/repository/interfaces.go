// Package repository defines the data access interfaces and their gorm implementations.
// Services depend on these interfaces, not on gorm directly.
package repository

import (
	"context"
	"errors"
	"time"

	"ecotech_server/internal/model"
	"ecotech_server/pkg/errorx"

	"gorm.io/gorm"
)

// ==================== error wrapping ====================

// wrapDBError maps gorm errors onto business codes:
//   - ErrRecordNotFound -> CodeNotFound
//   - anything else -> CodeDBError
func wrapDBError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrap(err, errorx.CodeNotFound, msg)
	}
	return errorx.Wrap(err, errorx.CodeDBError, msg)
}

// wrapDBErrorf is wrapDBError with a formatted message.
func wrapDBErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrapf(err, errorx.CodeNotFound, format, args...)
	}
	return errorx.Wrapf(err, errorx.CodeDBError, format, args...)
}

// ==================== query types ====================

// ApplicationFilter narrows the admin application list.
// Empty Status / Domain / Search mean "no predicate".
type ApplicationFilter struct {
	Status  string
	Domain  string
	Search  string // case-sensitive substring over name, email, college
	Page    int    // 1-based
	PerPage int
}

// StatusCount is one row of a GROUP BY status.
type StatusCount struct {
	Status string
	Count  int64
}

// DomainCount is one row of a GROUP BY internship_type.
type DomainCount struct {
	Domain string
	Count  int64
}

// ==================== repository interfaces ====================

// AdminRepository stores administrator accounts.
type AdminRepository interface {
	// FindByID loads an admin by primary key
	FindByID(ctx context.Context, id uint) (*model.Admin, error)
	// FindByUsername loads an admin by username
	FindByUsername(ctx context.Context, username string) (*model.Admin, error)
	// Count returns how many admins exist
	Count(ctx context.Context) (int64, error)
	// Create inserts an admin; RawPassword is hashed by the model hook
	Create(ctx context.Context, admin *model.Admin) error
	// Update saves every column of admin
	Update(ctx context.Context, admin *model.Admin) error
}

// ApplicationRepository stores internship applications.
type ApplicationRepository interface {
	// Create inserts a new application
	Create(ctx context.Context, app *model.InternshipApplication) error
	// FindByID loads one application
	FindByID(ctx context.Context, id uint) (*model.InternshipApplication, error)
	// List returns one page matching filter, newest first, and the total match count
	List(ctx context.Context, filter ApplicationFilter) ([]model.InternshipApplication, int64, error)
	// Recent returns the newest limit applications
	Recent(ctx context.Context, limit int) ([]model.InternshipApplication, error)
	// Count returns the number of applications
	Count(ctx context.Context) (int64, error)
	// CountByStatus groups the table by status
	CountByStatus(ctx context.Context) ([]StatusCount, error)
	// CountByDomain groups the table by internship_type
	CountByDomain(ctx context.Context) ([]DomainCount, error)
	// AppliedTimes returns every applied_at, used for the monthly chart
	AppliedTimes(ctx context.Context) ([]time.Time, error)
	// UpdateReview sets status, notes and reviewed_at in one statement
	UpdateReview(ctx context.Context, id uint, status, notes string, reviewedAt time.Time) error
}

// ContactRepository stores contact form messages.
type ContactRepository interface {
	// Create inserts a message
	Create(ctx context.Context, msg *model.ContactMessage) error
	// Count returns the number of messages
	Count(ctx context.Context) (int64, error)
}
