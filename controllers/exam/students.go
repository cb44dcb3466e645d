package examController

import (
	"errors"
	"examportal/middleware"
	"examportal/models"
	validators "examportal/validators/exam"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AddStudent registers per-exam credentials. The student identifier must be
// unique within the exam only; the pair unique index backs the check. The
// issued plaintext password is echoed once in the response so the admin can
// hand it out — only the hash is stored.
func (ctrl *Controller) AddStudent(c *fiber.Ctx) error {
	adminID := c.Locals("adminId").(uint)
	reqData := c.Locals("validatedStudent").(*validators.AddStudentRequest)

	examID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam id!", nil)
	}

	var exam models.Exam
	if err := ctrl.Db.Where("id = ? AND admin_id = ?", examID, adminID).First(&exam).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not found!", nil)
	}

	if err := ctrl.Db.Where("exam_id = ? AND student_id = ?", exam.ID, reqData.StudentID).First(&models.Student{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Student ID already exists for this exam!", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), ctrl.Cfg.SaltRound)
	if err != nil {
		log.Printf("Error hashing student password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	student := models.Student{
		ExamID:    exam.ID,
		StudentID: reqData.StudentID,
		Name:      reqData.Name,
		Password:  string(hashed),
	}
	if err := ctrl.Db.Create(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Student ID already exists for this exam!", nil)
		}
		log.Printf("Error adding student: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add student!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Student added successfully.", fiber.Map{
		"student":  student,
		"password": reqData.Password,
	})
}
