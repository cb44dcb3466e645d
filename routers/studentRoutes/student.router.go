package studentRoutes

import (
	"examportal/config"
	studentController "examportal/controllers/student"
	"examportal/middleware"
	studentValidator "examportal/validators/student"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupStudentRoutes wires the exam-taking endpoints
func SetupStudentRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	studentCtrl := studentController.New(db, cfg)
	studentJWT := middleware.StudentJWT(cfg.JWTKey)

	app.Post("/student/login", studentValidator.StudentLogin(), studentCtrl.Login)
	app.Get("/student/exam", studentJWT, studentCtrl.GetExam)
	app.Post("/student/submit", studentJWT, studentValidator.SubmitExam(), studentCtrl.SubmitExam)
}
