// Package model defines database entities.
// This file defines the administrator account.
package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Admin is the single privileged role allowed into /admin.
// Maps to the admins table.
type Admin struct {
	ID uint `gorm:"primaryKey"`

	Username string `gorm:"column:username;type:varchar(80);uniqueIndex;not null"`

	Email string `gorm:"column:email;type:varchar(120);uniqueIndex;not null"`

	// PasswordHash is a bcrypt hash, never plaintext.
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null"`

	CreatedAt time.Time `gorm:"column:created_at"`

	IsActive bool `gorm:"column:is_active;not null;default:true"`

	// RawPassword takes a plaintext password and is hashed in BeforeSave.
	// gorm:"-" keeps it out of the table.
	RawPassword string `gorm:"-" json:"-"`
}

// TableName pins the table name.
func (Admin) TableName() string {
	return "admins"
}

// BeforeSave hashes RawPassword into PasswordHash on create and update,
// so callers only ever set the plaintext.
func (a *Admin) BeforeSave(tx *gorm.DB) (err error) {
	if a.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		a.PasswordHash = string(hash)
		a.RawPassword = ""
	}
	return nil
}

// CheckPassword compares plaintext against the stored bcrypt hash.
func (a *Admin) CheckPassword(plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plaintext))
	return err == nil
}
