package models

import "gorm.io/gorm"

// Admin roles, ordered by privilege
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Admin is an authoring-side account. AdminID is the login identifier and
// is unique across all organizations.
type Admin struct {
	gorm.Model
	AdminID        string `json:"admin_id" gorm:"uniqueIndex;not null"`
	Name           string `json:"name" gorm:"default:''"`
	Password       string `json:"-" gorm:"not null"` // bcrypt hash
	OrganizationID *uint  `json:"organization_id" gorm:"index"`
	Role           string `json:"role" gorm:"default:'member'"`
	InvitedBy      *uint  `json:"invited_by"`
	IsActive       bool   `json:"is_active" gorm:"default:true"`
}
