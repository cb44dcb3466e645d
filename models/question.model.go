package models

import "gorm.io/gorm"

// Question is one multiple-choice item. OrderNumber is 1-based and unique
// within the exam. CorrectOption is one of A, B, C, D and must be blanked
// before a question is sent to a student.
type Question struct {
	gorm.Model
	ExamID        uint   `json:"exam_id" gorm:"uniqueIndex:idx_exam_order;not null"`
	QuestionText  string `json:"question_text" gorm:"not null"`
	OptionA       string `json:"option_a" gorm:"not null"`
	OptionB       string `json:"option_b" gorm:"not null"`
	OptionC       string `json:"option_c" gorm:"not null"`
	OptionD       string `json:"option_d" gorm:"not null"`
	CorrectOption string `json:"correct_option,omitempty" gorm:"not null"`
	OrderNumber   int    `json:"order_number" gorm:"uniqueIndex:idx_exam_order;not null"`
}
