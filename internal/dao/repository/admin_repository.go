package repository

import (
	"context"

	"ecotech_server/internal/model"

	"gorm.io/gorm"
)

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates the admin repository.
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) FindByID(ctx context.Context, id uint) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.WithContext(ctx).First(&admin, id).Error; err != nil {
		return nil, wrapDBErrorf(err, "query admin id=%d", id)
	}
	return &admin, nil
}

func (r *adminRepository) FindByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.WithContext(ctx).First(&admin, "username = ?", username).Error; err != nil {
		return nil, wrapDBErrorf(err, "query admin username=%s", username)
	}
	return &admin, nil
}

func (r *adminRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Admin{}).Count(&total).Error; err != nil {
		return 0, wrapDBError(err, "count admins")
	}
	return total, nil
}

func (r *adminRepository) Create(ctx context.Context, admin *model.Admin) error {
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		return wrapDBError(err, "create admin")
	}
	return nil
}

func (r *adminRepository) Update(ctx context.Context, admin *model.Admin) error {
	if err := r.db.WithContext(ctx).Save(admin).Error; err != nil {
		return wrapDBError(err, "update admin")
	}
	return nil
}
