package examController

import (
	"examportal/config"
	"examportal/middleware"
	"examportal/models"
	validators "examportal/validators/exam"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Controller struct {
	Db  *gorm.DB
	Cfg *config.Config
}

func New(db *gorm.DB, cfg *config.Config) *Controller {
	return &Controller{Db: db, Cfg: cfg}
}

// actorOrgID returns the organization claim when present.
func actorOrgID(c *fiber.Ctx) *uint {
	if orgID, ok := c.Locals("organizationId").(uint); ok {
		return &orgID
	}
	return nil
}

// canAccess reports whether the actor may read this exam: the creator
// always can, and so can any admin of the owning organization.
func canAccess(exam *models.Exam, adminID uint, orgID *uint) bool {
	if exam.AdminID == adminID {
		return true
	}
	return orgID != nil && exam.OrganizationID != nil && *exam.OrganizationID == *orgID
}

// CreateExam inserts a new inactive exam together with its questions,
// order numbers assigned 1..N in submission order. The whole write is one
// transaction so a failure can never leave an exam without questions.
func (ctrl *Controller) CreateExam(c *fiber.Ctx) error {
	adminID := c.Locals("adminId").(uint)
	reqData := c.Locals("validatedExam").(*validators.CreateExamRequest)

	exam := models.Exam{
		Title:           reqData.Title,
		Description:     reqData.Description,
		DurationMinutes: reqData.DurationMinutes,
		AdminID:         adminID,
		OrganizationID:  actorOrgID(c),
		IsActive:        false,
	}

	err := ctrl.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&exam).Error; err != nil {
			return err
		}

		questions := make([]models.Question, len(reqData.Questions))
		for i, q := range reqData.Questions {
			questions[i] = models.Question{
				ExamID:        exam.ID,
				QuestionText:  q.QuestionText,
				OptionA:       q.OptionA,
				OptionB:       q.OptionB,
				OptionC:       q.OptionC,
				OptionD:       q.OptionD,
				CorrectOption: q.CorrectOption,
				OrderNumber:   i + 1,
			}
		}
		return tx.Create(&questions).Error
	})
	if err != nil {
		log.Printf("Error creating exam: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create exam!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Exam created successfully.", fiber.Map{
		"examId": exam.ID,
		"exam":   exam,
	})
}

// ExamWithCount is an exam row plus the number of registered students.
type ExamWithCount struct {
	models.Exam
	StudentCount int64 `json:"student_count"`
}

// ListExams returns the exams created by the actor, newest first.
func (ctrl *Controller) ListExams(c *fiber.Ctx) error {
	adminID := c.Locals("adminId").(uint)

	var exams []models.Exam
	if err := ctrl.Db.Where("admin_id = ?", adminID).Order("created_at desc").Find(&exams).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch exams!", nil)
	}

	list := make([]ExamWithCount, len(exams))
	for i, exam := range exams {
		var count int64
		ctrl.Db.Model(&models.Student{}).Where("exam_id = ?", exam.ID).Count(&count)
		list[i] = ExamWithCount{Exam: exam, StudentCount: count}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exams fetched successfully.", fiber.Map{
		"exams": list,
	})
}

// GetExam returns one exam with its registered students.
func (ctrl *Controller) GetExam(c *fiber.Ctx) error {
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

	var students []models.Student
	if err := ctrl.Db.Where("exam_id = ?", exam.ID).Order("created_at desc").Find(&students).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam fetched successfully.", fiber.Map{
		"exam":     exam,
		"students": students,
	})
}

// ToggleExam flips the active flag that gates student logins. Only the
// creating admin may toggle.
func (ctrl *Controller) ToggleExam(c *fiber.Ctx) error {
	adminID := c.Locals("adminId").(uint)
	reqData := c.Locals("validatedToggle").(*validators.ToggleExamRequest)

	examID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam id!", nil)
	}

	var exam models.Exam
	if err := ctrl.Db.Where("id = ? AND admin_id = ?", examID, adminID).First(&exam).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not found!", nil)
	}

	exam.IsActive = *reqData.IsActive
	if err := ctrl.Db.Model(&exam).Update("is_active", exam.IsActive).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update exam status!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam status updated.", fiber.Map{
		"exam": exam,
	})
}
