package middleware

import (
	"examportal/models"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Token lifetimes. Student tokens are shorter because exams are timed.
const (
	AdminTokenTTL   = 24 * time.Hour
	StudentTokenTTL = 4 * time.Hour

	// SubmitGrace is added on top of the exam duration when computing the
	// server-side submission deadline, to absorb auto-submit latency.
	SubmitGrace = time.Minute
)

// GenerateAdminJWT generates a token for an authoring-side account
func GenerateAdminJWT(jwtKey string, admin *models.Admin) (string, error) {
	claims := jwt.MapClaims{
		"adminId":  admin.ID,
		"admin_id": admin.AdminID,
		"role":     admin.Role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(AdminTokenTTL).Unix(),
	}
	if admin.OrganizationID != nil {
		claims["organizationId"] = *admin.OrganizationID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtKey))
}

// GenerateStudentJWT generates a token scoped to one student's single exam
// attempt. The deadline claim is the authoritative submission cutoff:
// login time plus the exam duration plus a small grace period.
func GenerateStudentJWT(jwtKey string, student *models.Student, exam *models.Exam) (string, error) {
	now := time.Now()
	deadline := now.Add(time.Duration(exam.DurationMinutes)*time.Minute + SubmitGrace)

	claims := jwt.MapClaims{
		"studentId":  student.ID,
		"student_id": student.StudentID,
		"examId":     exam.ID,
		"deadline":   deadline.Unix(),
		"iat":        now.Unix(),
		"exp":        now.Add(StudentTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtKey))
}

func parseBearer(c *fiber.Ctx, jwtKey string) (jwt.MapClaims, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("missing Authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, fmt.Errorf("invalid Authorization header format")
	}
	tokenString := authHeader[len("Bearer "):]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtKey), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token payload")
	}
	return claims, nil
}

// AdminJWT returns a middleware that validates an admin bearer token and
// stores adminId, organizationId and role in the request context.
func AdminJWT(jwtKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := parseBearer(c, jwtKey)
		if err != nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, err.Error(), nil)
		}

		adminID, ok := claims["adminId"].(float64) // numeric JWT claims decode as float64
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload", nil)
		}
		c.Locals("adminId", uint(adminID))

		if role, ok := claims["role"].(string); ok {
			c.Locals("role", role)
		}
		if orgID, ok := claims["organizationId"].(float64); ok {
			c.Locals("organizationId", uint(orgID))
		}

		return c.Next()
	}
}

// StudentJWT returns a middleware that validates a student bearer token and
// stores studentId, examId and the submission deadline in the request context.
func StudentJWT(jwtKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := parseBearer(c, jwtKey)
		if err != nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, err.Error(), nil)
		}

		studentID, okStudent := claims["studentId"].(float64)
		examID, okExam := claims["examId"].(float64)
		deadline, okDeadline := claims["deadline"].(float64)
		if !okStudent || !okExam || !okDeadline {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload", nil)
		}

		c.Locals("studentId", uint(studentID))
		c.Locals("examId", uint(examID))
		c.Locals("deadline", int64(deadline))

		return c.Next()
	}
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}
