package models

import "gorm.io/gorm"

// Organization groups admin accounts into one tenant
type Organization struct {
	gorm.Model
	Name string `json:"name" gorm:"not null"`
}
