package models

import (
	"time"

	"gorm.io/gorm"
)

// StudentResult is the outcome of one student's single attempt. The pair
// unique index is the authoritative guard against double submission: a
// second insert fails with a duplicate-key error no matter how the request
// slipped past the login-time check.
type StudentResult struct {
	gorm.Model
	StudentID        uint      `json:"student_id" gorm:"uniqueIndex:idx_result_student_exam;not null"`
	ExamID           uint      `json:"exam_id" gorm:"uniqueIndex:idx_result_student_exam;not null"`
	Score            int       `json:"score"`
	TotalQuestions   int       `json:"total_questions"`
	TimeTakenMinutes int       `json:"time_taken_minutes"`
	SubmittedAt      time.Time `json:"submitted_at"`
}
