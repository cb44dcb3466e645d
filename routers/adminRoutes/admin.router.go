package adminRoutes

import (
	"examportal/config"
	authController "examportal/controllers/auth"
	examController "examportal/controllers/exam"
	teamController "examportal/controllers/team"
	"examportal/middleware"
	authValidator "examportal/validators/auth"
	examValidator "examportal/validators/exam"
	teamValidator "examportal/validators/team"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupAdminRoutes wires the authoring-side endpoints
func SetupAdminRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	authCtrl := authController.New(db, cfg)
	examCtrl := examController.New(db, cfg)
	teamCtrl := teamController.New(db, cfg)
	adminJWT := middleware.AdminJWT(cfg.JWTKey)

	app.Post("/admin/login", authValidator.AdminLogin(), authCtrl.Login)

	app.Post("/admin/exams", adminJWT, examValidator.CreateExam(), examCtrl.CreateExam)
	app.Get("/admin/exams", adminJWT, examCtrl.ListExams)

	examGroup := app.Group("/admin/exam")
	examGroup.Get("/:id", adminJWT, examCtrl.GetExam)
	examGroup.Post("/:id/students", adminJWT, examValidator.AddStudent(), examCtrl.AddStudent)
	examGroup.Patch("/:id/toggle", adminJWT, examValidator.ToggleExam(), examCtrl.ToggleExam)
	examGroup.Get("/:id/results", adminJWT, examCtrl.GetResults)

	teamGroup := app.Group("/admin/team")
	teamGroup.Get("/", adminJWT, teamCtrl.GetTeam)
	teamGroup.Post("/add", adminJWT, teamValidator.AddMember(), teamCtrl.AddMember)
	teamGroup.Patch("/toggle", adminJWT, teamValidator.ToggleMember(), teamCtrl.ToggleMember)
}
