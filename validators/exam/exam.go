package examValidator

import (
	"examportal/middleware"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type QuestionInput struct {
	QuestionText  string `json:"question_text" validate:"required"`
	OptionA       string `json:"option_a" validate:"required"`
	OptionB       string `json:"option_b" validate:"required"`
	OptionC       string `json:"option_c" validate:"required"`
	OptionD       string `json:"option_d" validate:"required"`
	CorrectOption string `json:"correct_option" validate:"required,oneof=A B C D"`
}

type CreateExamRequest struct {
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	DurationMinutes int             `json:"duration_minutes"`
	Questions       []QuestionInput `json:"questions"`
}

type ToggleExamRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type AddStudentRequest struct {
	Name      string `json:"name" validate:"required"`
	StudentID string `json:"student_id" validate:"required"`
	Password  string `json:"password" validate:"required,min=4"`
}

func CreateExam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateExamRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.DurationMinutes < 1 {
			errors["duration_minutes"] = "Duration must be at least 1 minute!"
		}

		if len(reqData.Questions) == 0 {
			errors["questions"] = "At least one question is required!"
		} else {
			for i, q := range reqData.Questions {
				if err := validate.Struct(q); err != nil {
					errors[fmt.Sprintf("questions[%d]", i)] = "All four options, the text and a correct option (A-D) are required!"
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedExam", reqData)
		return c.Next()
	}
}

func ToggleExam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ToggleExamRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"is_active": "is_active is required!",
			})
		}

		c.Locals("validatedToggle", reqData)
		return c.Next()
	}
}

func AddStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AddStudentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if err := validate.Struct(reqData); err != nil {
			if strings.TrimSpace(reqData.Name) == "" {
				errors["name"] = "Name is required!"
			}
			if strings.TrimSpace(reqData.StudentID) == "" {
				errors["student_id"] = "Student ID is required!"
			}
			if len(reqData.Password) < 4 {
				errors["password"] = "Password must be at least 4 characters long!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedStudent", reqData)
		return c.Next()
	}
}
