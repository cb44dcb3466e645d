package authController

import (
	"examportal/config"
	"examportal/middleware"
	"examportal/models"
	validators "examportal/validators/auth"
	"log"

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

// Login authenticates an authoring-side account and issues a 24h token.
func (ctrl *Controller) Login(c *fiber.Ctx) error {
	reqData := c.Locals("validatedLogin").(*validators.LoginRequest)

	var admin models.Admin
	if err := ctrl.Db.Where("admin_id = ?", reqData.AdminID).First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if !admin.IsActive {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This account has been deactivated!", nil)
	}

	token, err := middleware.GenerateAdminJWT(ctrl.Cfg.JWTKey, &admin)
	if err != nil {
		log.Printf("Error generating admin token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"token": token,
		"admin": admin,
	})
}
