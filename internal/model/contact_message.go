// Package model defines database entities.
// This file defines messages from the public contact form.
package model

import "time"

// ContactMessage is a contact form submission.
// Maps to the contact_messages table. Nothing reads these back yet.
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey"`
	FirstName string    `gorm:"column:first_name;type:varchar(100);not null"`
	LastName  string    `gorm:"column:last_name;type:varchar(100);not null"`
	Email     string    `gorm:"column:email;type:varchar(120);not null"`
	Phone     string    `gorm:"column:phone;type:varchar(20)"`
	Service   string    `gorm:"column:service;type:varchar(50)"`
	Message   string    `gorm:"column:message;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName pins the table name.
func (ContactMessage) TableName() string {
	return "contact_messages"
}
