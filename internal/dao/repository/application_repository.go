// Package repository implements the data access layer.
// This file implements ApplicationRepository.
package repository

import (
	"context"
	"time"

	"ecotech_server/internal/model"

	"gorm.io/gorm"
)

// searchColumns are matched by ApplicationFilter.Search.
var searchColumns = []string{"name", "email", "college"}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates the application repository.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create inserts app. Status falls back to pending and AppliedAt to now.
func (r *applicationRepository) Create(ctx context.Context, app *model.InternshipApplication) error {
	if app.Status == "" {
		app.Status = model.StatusPending
	}
	if app.AppliedAt.IsZero() {
		app.AppliedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		return wrapDBError(err, "create application")
	}
	return nil
}

func (r *applicationRepository) FindByID(ctx context.Context, id uint) (*model.InternshipApplication, error) {
	var app model.InternshipApplication
	if err := r.db.WithContext(ctx).First(&app, id).Error; err != nil {
		return nil, wrapDBErrorf(err, "query application id=%d", id)
	}
	return &app, nil
}

// List pages through the applications matching filter, newest first.
// page: 1-based, values below 1 are treated as 1
// returns: the page, the total number of matches, error
func (r *applicationRepository) List(ctx context.Context, filter ApplicationFilter) ([]model.InternshipApplication, int64, error) {
	var apps []model.InternshipApplication
	var total int64

	page := filter.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * filter.PerPage

	if err := r.db.WithContext(ctx).Model(&model.InternshipApplication{}).
		Scopes(r.filterScope(filter)).
		Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err, "count filtered applications")
	}

	if err := r.db.WithContext(ctx).Model(&model.InternshipApplication{}).
		Scopes(r.filterScope(filter)).
		Order("applied_at DESC").Order("id DESC").
		Offset(offset).Limit(filter.PerPage).
		Find(&apps).Error; err != nil {
		return nil, 0, wrapDBError(err, "list applications")
	}
	return apps, total, nil
}

// filterScope applies every active predicate of filter, joined with AND.
func (r *applicationRepository) filterScope(filter ApplicationFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		if filter.Domain != "" {
			db = db.Where("internship_type = ?", filter.Domain)
		}
		if filter.Search != "" {
			dialect := r.db.Dialector.Name()
			cond := r.db.Where(containsExpr(dialect, searchColumns[0]), filter.Search)
			for _, col := range searchColumns[1:] {
				cond = cond.Or(containsExpr(dialect, col), filter.Search)
			}
			db = db.Where(cond)
		}
		return db
	}
}

// containsExpr is a case-sensitive "column contains ?" predicate for the given dialect.
// LIKE is case-insensitive under MySQL's default collations and in SQLite, so it is avoided.
func containsExpr(dialect, column string) string {
	switch dialect {
	case "postgres":
		return "strpos(" + column + ", ?) > 0"
	case "mysql":
		return "INSTR(CAST(" + column + " AS BINARY), CAST(? AS BINARY)) > 0"
	default:
		return "instr(" + column + ", ?) > 0"
	}
}

func (r *applicationRepository) Recent(ctx context.Context, limit int) ([]model.InternshipApplication, error) {
	var apps []model.InternshipApplication
	if err := r.db.WithContext(ctx).
		Order("applied_at DESC").Order("id DESC").
		Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, wrapDBError(err, "query recent applications")
	}
	return apps, nil
}

func (r *applicationRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.InternshipApplication{}).Count(&total).Error; err != nil {
		return 0, wrapDBError(err, "count applications")
	}
	return total, nil
}

func (r *applicationRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	if err := r.db.WithContext(ctx).Model(&model.InternshipApplication{}).
		Select("status, count(*) as count").
		Group("status").
		Order("status").
		Scan(&rows).Error; err != nil {
		return nil, wrapDBError(err, "count applications by status")
	}
	return rows, nil
}

func (r *applicationRepository) CountByDomain(ctx context.Context) ([]DomainCount, error) {
	var rows []DomainCount
	if err := r.db.WithContext(ctx).Model(&model.InternshipApplication{}).
		Select("internship_type as domain, count(*) as count").
		Group("internship_type").
		Order("internship_type").
		Scan(&rows).Error; err != nil {
		return nil, wrapDBError(err, "count applications by domain")
	}
	return rows, nil
}

func (r *applicationRepository) AppliedTimes(ctx context.Context) ([]time.Time, error) {
	var times []time.Time
	if err := r.db.WithContext(ctx).Model(&model.InternshipApplication{}).
		Pluck("applied_at", &times).Error; err != nil {
		return nil, wrapDBError(err, "query application dates")
	}
	return times, nil
}

// UpdateReview writes the review columns only, leaving the applicant's data untouched.
func (r *applicationRepository) UpdateReview(ctx context.Context, id uint, status, notes string, reviewedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.InternshipApplication{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":      status,
			"notes":       notes,
			"reviewed_at": reviewedAt,
		})
	if res.Error != nil {
		return wrapDBErrorf(res.Error, "update application review id=%d", id)
	}
	if res.RowsAffected == 0 {
		return wrapDBErrorf(gorm.ErrRecordNotFound, "update application review id=%d", id)
	}
	return nil
}
