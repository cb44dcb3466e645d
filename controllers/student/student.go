package studentController

import (
	"errors"
	"examportal/config"
	"examportal/middleware"
	"examportal/models"
	validators "examportal/validators/student"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Controller struct {
	Db  *gorm.DB
	Cfg *config.Config
}

func New(db *gorm.DB, cfg *config.Config) *Controller {
	return &Controller{Db: db, Cfg: cfg}
}

// Login authenticates issued exam credentials and hands out a 4h token
// bound to exactly one exam.
//
// Student identifiers are unique per exam, not globally, so the same id can
// exist for several exams. Candidates are scanned oldest first and the
// first one whose password matches, whose exam is active and who has no
// recorded result wins. When every password-matching candidate is blocked,
// the error of the earliest matching one is reported.
func (ctrl *Controller) Login(c *fiber.Ctx) error {
	reqData := c.Locals("validatedLogin").(*validators.LoginRequest)

	var students []models.Student
	if err := ctrl.Db.Where("student_id = ?", reqData.StudentID).Order("created_at asc").Find(&students).Error; err != nil {
		log.Printf("Error looking up student %q: %v", reqData.StudentID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	blockedStatus := 0
	blockedMessage := ""

	for i := range students {
		student := &students[i]
		if bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(reqData.Password)) != nil {
			continue
		}

		var exam models.Exam
		if err := ctrl.Db.First(&exam, student.ExamID).Error; err != nil {
			continue
		}

		if !exam.IsActive {
			if blockedStatus == 0 {
				blockedStatus = fiber.StatusForbidden
				blockedMessage = "This exam is not currently active!"
			}
			continue
		}

		if err := ctrl.Db.Where("student_id = ? AND exam_id = ?", student.ID, exam.ID).First(&models.StudentResult{}).Error; err == nil {
			if blockedStatus == 0 {
				blockedStatus = fiber.StatusForbidden
				blockedMessage = "You have already completed this exam!"
			}
			continue
		}

		token, err := middleware.GenerateStudentJWT(ctrl.Cfg.JWTKey, student, &exam)
		if err != nil {
			log.Printf("Error generating student token: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
			"token":  token,
			"examId": exam.ID,
			"student": fiber.Map{
				"id":         student.ID,
				"student_id": student.StudentID,
				"name":       student.Name,
			},
		})
	}

	if blockedStatus != 0 {
		return middleware.JsonResponse(c, blockedStatus, false, blockedMessage, nil)
	}
	return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid student ID or password!", nil)
}

// examWithQuestions embeds the exam with its question list for delivery.
type examWithQuestions struct {
	models.Exam
	Questions []models.Question `json:"questions"`
}

// GetExam returns the exam named by the token with its questions in display
// order. Correct options are blanked before encoding; the omitempty tag
// keeps the field out of the payload entirely.
func (ctrl *Controller) GetExam(c *fiber.Ctx) error {
	examID := c.Locals("examId").(uint)

	var exam models.Exam
	if err := ctrl.Db.First(&exam, examID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not found!", nil)
	}

	var questions []models.Question
	if err := ctrl.Db.Where("exam_id = ?", exam.ID).Order("order_number asc").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch exam!", nil)
	}

	for i := range questions {
		questions[i].CorrectOption = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam fetched successfully.", fiber.Map{
		"exam": examWithQuestions{Exam: exam, Questions: questions},
	})
}

// SubmitExam scores the submitted answers and records the single permitted
// result for this (student, exam) pair. The pair unique index makes the
// insert the idempotency guard: a concurrent second submission loses with a
// duplicate-key error and gets a conflict back.
func (ctrl *Controller) SubmitExam(c *fiber.Ctx) error {
	studentID := c.Locals("studentId").(uint)
	examID := c.Locals("examId").(uint)
	deadline := c.Locals("deadline").(int64)
	reqData := c.Locals("validatedSubmit").(*validators.SubmitRequest)

	if time.Now().Unix() > deadline {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Exam time limit exceeded!", nil)
	}

	var questions []models.Question
	if err := ctrl.Db.Where("exam_id = ?", examID).Order("order_number asc").Find(&questions).Error; err != nil || len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	score := 0
	for _, q := range questions {
		if reqData.Answers[strconv.FormatUint(uint64(q.ID), 10)] == q.CorrectOption {
			score++
		}
	}

	result := models.StudentResult{
		StudentID:        studentID,
		ExamID:           examID,
		Score:            score,
		TotalQuestions:   len(questions),
		TimeTakenMinutes: int(math.Ceil(float64(reqData.TimeTaken) / 60)),
		SubmittedAt:      time.Now(),
	}
	if err := ctrl.Db.Create(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already completed this exam!", nil)
		}
		log.Printf("Error saving result for student %d exam %d: %v", studentID, examID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit exam!", nil)
	}

	percentage := int(math.Round(float64(score) / float64(len(questions)) * 100))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam submitted successfully.", fiber.Map{
		"score":          score,
		"totalQuestions": len(questions),
		"percentage":     percentage,
	})
}
