package teamValidator

import (
	"examportal/middleware"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// AddMemberRequest creates a new team member. Owner accounts are seeded at
// bootstrap and can never be created through the API, hence the oneof.
type AddMemberRequest struct {
	Name     string `json:"name" validate:"required"`
	AdminID  string `json:"admin_id" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=admin member"`
}

type ToggleMemberRequest struct {
	MemberID uint  `json:"memberId" validate:"required"`
	IsActive *bool `json:"isActive" validate:"required"`
}

func AddMember() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AddMemberRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if err := validate.Struct(reqData); err != nil {
			if strings.TrimSpace(reqData.Name) == "" {
				errors["name"] = "Name is required!"
			}
			if strings.TrimSpace(reqData.AdminID) == "" {
				errors["admin_id"] = "Admin ID is required!"
			}
			if len(reqData.Password) < 6 {
				errors["password"] = "Password must be at least 6 characters long!"
			}
			if reqData.Role != "admin" && reqData.Role != "member" {
				errors["role"] = "Role must be either admin or member!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMember", reqData)
		return c.Next()
	}
}

func ToggleMember() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ToggleMemberRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if err := validate.Struct(reqData); err != nil {
			if reqData.MemberID == 0 {
				errors["memberId"] = "Member ID is required!"
			}
			if reqData.IsActive == nil {
				errors["isActive"] = "isActive is required!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedToggle", reqData)
		return c.Next()
	}
}
