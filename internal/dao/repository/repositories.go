package repository

import (
	"gorm.io/gorm"
)

// Repositories bundles every repository for injection into services.
type Repositories struct {
	db          *gorm.DB
	Admin       AdminRepository
	Application ApplicationRepository
	Contact     ContactRepository
}

// NewRepositories builds every repository on top of db.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:          db,
		Admin:       NewAdminRepository(db),
		Application: NewApplicationRepository(db),
		Contact:     NewContactRepository(db),
	}
}

// Transaction runs fn inside a database transaction.
// fn receives repositories bound to the transaction; a returned error rolls everything back.
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
