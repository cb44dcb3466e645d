// Package testutils provides an in-memory application for handler tests:
// a fiber app wired exactly like main, backed by sqlite.
package testutils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"examportal/config"
	"examportal/database"
	"examportal/middleware"
	"examportal/models"
	adminRoutes "examportal/routers/adminRoutes"
	studentRoutes "examportal/routers/studentRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewConfig returns a config suitable for tests. MinCost keeps bcrypt fast.
func NewConfig() *config.Config {
	return &config.Config{
		Port:      "0",
		JWTKey:    "test-secret",
		SaltRound: bcrypt.MinCost,
	}
}

// NewDB opens a fresh in-memory sqlite database and migrates the schema.
// A single connection keeps every query on the same in-memory instance.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

// SetupApp builds the full route table against a fresh database.
func SetupApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()

	cfg := NewConfig()
	db := NewDB(t)

	app := fiber.New()
	adminRoutes.SetupAdminRoutes(app, db, cfg)
	studentRoutes.SetupStudentRoutes(app, db, cfg)

	return app, db, cfg
}

// Request performs one JSON request against the app and decodes the
// standard {status, message, data} envelope.
func Request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))

	return resp.StatusCode, envelope
}

// RawRequest is Request without envelope decoding, for payload inspection.
func RawRequest(t *testing.T, app *fiber.App, method, path, token string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)

	return resp, buf.Bytes()
}

// Data extracts the data object from a response envelope.
func Data(t *testing.T, envelope map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok, "envelope has no data object: %v", envelope)
	return data
}

func HashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func CreateOrg(t *testing.T, db *gorm.DB, name string) *models.Organization {
	t.Helper()
	org := models.Organization{Name: name}
	require.NoError(t, db.Create(&org).Error)
	return &org
}

func CreateAdmin(t *testing.T, db *gorm.DB, orgID *uint, adminID, password, role string) *models.Admin {
	t.Helper()
	admin := models.Admin{
		AdminID:        adminID,
		Name:           adminID,
		Password:       HashPassword(t, password),
		OrganizationID: orgID,
		Role:           role,
		IsActive:       true,
	}
	require.NoError(t, db.Create(&admin).Error)
	return &admin
}

func CreateExam(t *testing.T, db *gorm.DB, adminID uint, orgID *uint, title string, durationMinutes int, active bool) *models.Exam {
	t.Helper()
	exam := models.Exam{
		Title:           title,
		Description:     "test exam",
		DurationMinutes: durationMinutes,
		AdminID:         adminID,
		OrganizationID:  orgID,
		IsActive:        active,
	}
	require.NoError(t, db.Create(&exam).Error)
	return &exam
}

// CreateQuestions inserts one question per correct-option letter given,
// order numbers assigned in sequence.
func CreateQuestions(t *testing.T, db *gorm.DB, examID uint, correct ...string) []models.Question {
	t.Helper()
	questions := make([]models.Question, len(correct))
	for i, letter := range correct {
		questions[i] = models.Question{
			ExamID:        examID,
			QuestionText:  "question",
			OptionA:       "a",
			OptionB:       "b",
			OptionC:       "c",
			OptionD:       "d",
			CorrectOption: letter,
			OrderNumber:   i + 1,
		}
	}
	require.NoError(t, db.Create(&questions).Error)
	return questions
}

func CreateStudent(t *testing.T, db *gorm.DB, examID uint, studentID, password, name string) *models.Student {
	t.Helper()
	student := models.Student{
		ExamID:    examID,
		StudentID: studentID,
		Name:      name,
		Password:  HashPassword(t, password),
	}
	require.NoError(t, db.Create(&student).Error)
	return &student
}

func AdminToken(t *testing.T, cfg *config.Config, admin *models.Admin) string {
	t.Helper()
	token, err := middleware.GenerateAdminJWT(cfg.JWTKey, admin)
	require.NoError(t, err)
	return token
}

func StudentToken(t *testing.T, cfg *config.Config, student *models.Student, exam *models.Exam) string {
	t.Helper()
	token, err := middleware.GenerateStudentJWT(cfg.JWTKey, student, exam)
	require.NoError(t, err)
	return token
}
