package models

import "gorm.io/gorm"

// Exam is a timed collection of questions owned by one admin. Students may
// log in to attempt it only while IsActive is true.
type Exam struct {
	gorm.Model
	Title           string `json:"title" gorm:"not null"`
	Description     string `json:"description" gorm:"default:''"`
	DurationMinutes int    `json:"duration_minutes" gorm:"not null"`
	AdminID         uint   `json:"admin_id" gorm:"index;not null"`
	OrganizationID  *uint  `json:"organization_id" gorm:"index"`
	IsActive        bool   `json:"is_active" gorm:"default:false"`
}
