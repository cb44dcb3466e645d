package models

import "gorm.io/gorm"

// Student is a per-exam credentialed identity. StudentID is unique within
// its exam only; the same identifier may be issued for a different exam.
type Student struct {
	gorm.Model
	ExamID    uint   `json:"exam_id" gorm:"uniqueIndex:idx_exam_student;not null"`
	StudentID string `json:"student_id" gorm:"uniqueIndex:idx_exam_student;not null"`
	Name      string `json:"name" gorm:"default:''"`
	Password  string `json:"-" gorm:"not null"` // bcrypt hash
}
