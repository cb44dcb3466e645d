package studentValidator

import (
	"examportal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type LoginRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// SubmitRequest carries the answer map keyed by question id. TimeTaken is
// the client-reported elapsed time in seconds; the server-side deadline in
// the token is what actually bounds the attempt.
type SubmitRequest struct {
	Answers   map[string]string `json:"answers" validate:"required"`
	TimeTaken int               `json:"timeTaken" validate:"min=0"`
}

func StudentLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if err := validate.Struct(reqData); err != nil {
			if reqData.StudentID == "" {
				errors["studentId"] = "Student ID is required!"
			}
			if reqData.Password == "" {
				errors["password"] = "Password is required!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

func SubmitExam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.Answers == nil {
			errors["answers"] = "Answers are required!"
		}
		if reqData.TimeTaken < 0 {
			errors["timeTaken"] = "Time taken cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmit", reqData)
		return c.Next()
	}
}
