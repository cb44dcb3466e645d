package examController

import (
	"examportal/middleware"
	"examportal/models"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ResultEntry is one submission joined with the student's identity.
type ResultEntry struct {
	ID               uint      `json:"id"`
	StudentID        string    `json:"student_id"`
	StudentName      string    `json:"student_name"`
	Score            int       `json:"score"`
	TotalQuestions   int       `json:"total_questions"`
	Percentage       int       `json:"percentage"`
	Grade            string    `json:"grade"`
	TimeTakenMinutes int       `json:"time_taken_minutes"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

// ExamStats aggregates over submitted results only. Every field is zero
// when no one has submitted yet.
type ExamStats struct {
	TotalStudents     int64   `json:"total_students"`
	CompletedStudents int     `json:"completed_students"`
	AverageScore      float64 `json:"average_score"`
	HighestScore      int     `json:"highest_score"`
	LowestScore       int     `json:"lowest_score"`
	AverageTime       float64 `json:"average_time"`
}

func percentageOf(score, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

// gradeFor buckets a percentage for display. Grades are never persisted.
func gradeFor(percentage int) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B"
	case percentage >= 60:
		return "C"
	default:
		return "F"
	}
}

// GetResults returns all submissions for an exam, newest first, with
// per-student percentage/grade and exam-wide statistics.
func (ctrl *Controller) GetResults(c *fiber.Ctx) error {
	adminID := c.Locals("adminId").(uint)

	examID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam id!", nil)
	}

	var exam models.Exam
	if err := ctrl.Db.First(&exam, examID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not found!", nil)
	}
	if !canAccess(&exam, adminID, actorOrgID(c)) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	type resultRow struct {
		ID               uint
		StudentID        string
		StudentName      string
		Score            int
		TotalQuestions   int
		TimeTakenMinutes int
		SubmittedAt      time.Time
	}

	var rows []resultRow
	err = ctrl.Db.Model(&models.StudentResult{}).
		Select("student_results.id, students.student_id, students.name AS student_name, student_results.score, student_results.total_questions, student_results.time_taken_minutes, student_results.submitted_at").
		Joins("JOIN students ON students.id = student_results.student_id").
		Where("student_results.exam_id = ?", exam.ID).
		Order("student_results.submitted_at DESC").
		Scan(&rows).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch exam results!", nil)
	}

	results := make([]ResultEntry, len(rows))
	for i, row := range rows {
		pct := percentageOf(row.Score, row.TotalQuestions)
		results[i] = ResultEntry{
			ID:               row.ID,
			StudentID:        row.StudentID,
			StudentName:      row.StudentName,
			Score:            row.Score,
			TotalQuestions:   row.TotalQuestions,
			Percentage:       pct,
			Grade:            gradeFor(pct),
			TimeTakenMinutes: row.TimeTakenMinutes,
			SubmittedAt:      row.SubmittedAt,
		}
	}

	stats := ExamStats{CompletedStudents: len(results)}
	ctrl.Db.Model(&models.Student{}).Where("exam_id = ?", exam.ID).Count(&stats.TotalStudents)

	if len(results) > 0 {
		sumPct, sumTime := 0, 0
		stats.HighestScore = results[0].Percentage
		stats.LowestScore = results[0].Percentage
		for _, r := range results {
			sumPct += r.Percentage
			sumTime += r.TimeTakenMinutes
			if r.Percentage > stats.HighestScore {
				stats.HighestScore = r.Percentage
			}
			if r.Percentage < stats.LowestScore {
				stats.LowestScore = r.Percentage
			}
		}
		stats.AverageScore = float64(sumPct) / float64(len(results))
		stats.AverageTime = float64(sumTime) / float64(len(results))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Results fetched successfully.", fiber.Map{
		"exam":    exam,
		"results": results,
		"stats":   stats,
	})
}
