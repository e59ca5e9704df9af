// Package model defines database entities.
// This file defines the internship application and its fixed enumerations.
package model

import (
	"database/sql"
	"time"
)

// Review states of an application.
const (
	StatusPending  = "pending"
	StatusReviewed = "reviewed"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Statuses lists every valid status in display order.
var Statuses = []string{StatusPending, StatusReviewed, StatusAccepted, StatusRejected}

// Internship domains.
const (
	DomainIT          = "IT Solutions"
	DomainIoT         = "IoT Development"
	DomainAI          = "AI & Machine Learning"
	DomainFullStack   = "Full Stack Development"
	DomainDataScience = "Data Science"
)

// Domains lists every valid internship domain in display order.
var Domains = []string{DomainIT, DomainIoT, DomainAI, DomainFullStack, DomainDataScience}

// YearsOfStudy lists the accepted year_of_study values.
var YearsOfStudy = []string{"1st Year", "2nd Year", "3rd Year", "4th Year", "Final Year", "Graduate"}

// IsValidStatus reports whether s is one of Statuses.
func IsValidStatus(s string) bool {
	return contains(Statuses, s)
}

// IsValidDomain reports whether d is one of Domains.
func IsValidDomain(d string) bool {
	return contains(Domains, d)
}

// IsValidYearOfStudy reports whether y is one of YearsOfStudy.
func IsValidYearOfStudy(y string) bool {
	return contains(YearsOfStudy, y)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// InternshipApplication is a submitted internship candidacy.
// Maps to the internship_applications table.
type InternshipApplication struct {
	ID uint `gorm:"primaryKey"`

	Name  string `gorm:"column:name;type:varchar(100);not null"`
	Email string `gorm:"column:email;type:varchar(120);not null"`
	Phone string `gorm:"column:phone;type:varchar(20)"`

	College     string `gorm:"column:college;type:varchar(200);not null"`
	Course      string `gorm:"column:course;type:varchar(100);not null"`
	YearOfStudy string `gorm:"column:year_of_study;type:varchar(20);not null"`

	// InternshipType is one of Domains.
	InternshipType string `gorm:"column:internship_type;type:varchar(50);not null;index"`

	// ResumeFilename names an object in the resume store, "<timestamp>_<filename>".
	ResumeFilename string `gorm:"column:resume_filename;type:varchar(255)"`

	CoverLetter     string `gorm:"column:cover_letter;type:text"`
	Skills          string `gorm:"column:skills;type:text"`
	GithubProfile   string `gorm:"column:github_profile;type:varchar(255)"`
	LinkedinProfile string `gorm:"column:linkedin_profile;type:varchar(255)"`

	// Status is one of Statuses.
	Status string `gorm:"column:status;type:varchar(20);not null;default:pending;index"`

	AppliedAt  time.Time    `gorm:"column:applied_at;index"`
	ReviewedAt sql.NullTime `gorm:"column:reviewed_at"`

	// Notes are admin-only remarks.
	Notes string `gorm:"column:notes;type:text"`
}

// TableName pins the table name.
func (InternshipApplication) TableName() string {
	return "internship_applications"
}
