package studentController_test

import (
	"fmt"
	"testing"
	"time"

	"examportal/config"
	"examportal/models"
	"examportal/testutils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// activeExamFixture creates an active exam with two questions (correct A
// then B) and one registered student.
func activeExamFixture(t *testing.T, db *gorm.DB) (*models.Exam, []models.Question, *models.Student) {
	admin := testutils.CreateAdmin(t, db, nil, "owner1", "pw", models.RoleOwner)
	exam := testutils.CreateExam(t, db, admin.ID, nil, "Math", 30, true)
	questions := testutils.CreateQuestions(t, db, exam.ID, "A", "B")
	student := testutils.CreateStudent(t, db, exam.ID, "s1", "examPw1", "Alice")
	return exam, questions, student
}

func loginStudent(t *testing.T, app *fiber.App, studentID, password string) (int, map[string]interface{}) {
	return testutils.Request(t, app, fiber.MethodPost, "/student/login", "", fiber.Map{
		"studentId": studentID,
		"password":  password,
	})
}

func TestStudentLogin(t *testing.T) {
	app, db, _ := testutils.SetupApp(t)
	exam, _, _ := activeExamFixture(t, db)

	status, envelope := loginStudent(t, app, "s1", "examPw1")
	require.Equal(t, fiber.StatusOK, status)

	data := testutils.Data(t, envelope)
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, float64(exam.ID), data["examId"])
	student := data["student"].(map[string]interface{})
	assert.Equal(t, "s1", student["student_id"])
	assert.Equal(t, "Alice", student["name"])
}

func TestStudentLogin_InvalidCredentials(t *testing.T) {
	app, db, _ := testutils.SetupApp(t)
	activeExamFixture(t, db)

	status, _ := loginStudent(t, app, "s1", "wrong")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = loginStudent(t, app, "unknown", "examPw1")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestStudentLogin_InactiveExam(t *testing.T) {
	app, db, _ := testutils.SetupApp(t)
	exam, _, _ := activeExamFixture(t, db)
	require.NoError(t, db.Model(exam).Update("is_active", false).Error)

	// Correct credentials still fail while the exam is inactive.
	status, _ := loginStudent(t, app, "s1", "examPw1")
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestStudentLogin_SameIDAcrossExams(t *testing.T) {
	app, db, _ := testutils.SetupApp(t)
	admin := testutils.CreateAdmin(t, db, nil, "owner1", "pw", models.RoleOwner)

	inactive := testutils.CreateExam(t, db, admin.ID, nil, "Old Exam", 30, false)
	testutils.CreateQuestions(t, db, inactive.ID, "A")
	testutils.CreateStudent(t, db, inactive.ID, "s1", "examPw1", "Alice")

	active := testutils.CreateExam(t, db, admin.ID, nil, "New Exam", 30, true)
	testutils.CreateQuestions(t, db, active.ID, "A")
	testutils.CreateStudent(t, db, active.ID, "s1", "examPw1", "Alice")

	// The attemptable registration wins, not the older inactive one.
	status, envelope := loginStudent(t, app, "s1", "examPw1")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(active.ID), testutils.Data(t, envelope)["examId"])
}

func TestGetExam_RedactsCorrectOptions(t *testing.T) {
	app, db, cfg := testutils.SetupApp(t)
	exam, _, student := activeExamFixture(t, db)
	token := testutils.StudentToken(t, cfg, student, exam)

	resp, body := testutils.RawRequest(t, app, fiber.MethodGet, "/student/exam", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.NotContains(t, string(body), "correct_option")
	assert.Contains(t, string(body), "option_a")
}

func TestGetExam_OrderedQuestions(t *testing.T) {
	app, db, cfg := testutils.SetupApp(t)
	exam, _, student := activeExamFixture(t, db)
	token := testutils.StudentToken(t, cfg, student, exam)

	status, envelope := testutils.Request(t, app, fiber.MethodGet, "/student/exam", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	examData := testutils.Data(t, envelope)["exam"].(map[string]interface{})
	questions := examData["questions"].([]interface{})
	require.Len(t, questions, 2)
	assert.Equal(t, float64(1), questions[0].(map[string]interface{})["order_number"])
	assert.Equal(t, float64(2), questions[1].(map[string]interface{})["order_number"])
}

func TestSubmitExam_Scoring(t *testing.T) {
	app, db, cfg := testutils.SetupApp(t)
	exam, questions, student := activeExamFixture(t, db)
	token := testutils.StudentToken(t, cfg, student, exam)

	// One correct answer, one wrong: score 1 of 2, 50%.
	answers := fiber.Map{
		fmt.Sprint(questions[0].ID): "A",
		fmt.Sprint(questions[1].ID): "C",
	}
	status, envelope := testutils.Request(t, app, fiber.MethodPost, "/student/submit", token, fiber.Map{
		"answers":   answers,
		"timeTaken": 90,
	})
	require.Equal(t, fiber.StatusOK, status)

	data := testutils.Data(t, envelope)
	assert.Equal(t, float64(1), data["score"])
	assert.Equal(t, float64(2), data["totalQuestions"])
	assert.Equal(t, float64(50), data["percentage"])

	var result models.StudentResult
	require.NoError(t, db.Where("student_id = ? AND exam_id = ?", student.ID, exam.ID).First(&result).Error)
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, 2, result.TimeTakenMinutes, "90 seconds rounds up to 2 minutes")
	assert.WithinDuration(t, time.Now(), result.SubmittedAt, 5*time.Second)
}

func TestSubmitExam_UnansweredAndUnknownEntries(t *testing.T) {
	app, db, cfg := testutils.SetupApp(t)
	exam, questions, student := activeExamFixture(t, db)
	token := testutils.StudentToken(t, cfg, student, exam)

	// Unanswered questions and stray ids simply do not score.
	answers := fiber.Map{
		fmt.Sprint(questions[0].ID): "A",
		"99999":                     "B",
	}
	status, envelope := testutils.Request(t, app, fiber.MethodPost, "/student/submit", token, fiber.Map{
		"answers":   answers,
		"timeTaken": 10,
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(1), testutils.Data(t, envelope)["score"])
}

func TestSubmitExam_SecondSubmissionConflicts(t *testing.T) {
	app, db, cfg := testutils.SetupApp(t)
	exam, questions, student := activeExamFixture(t, db)
	token := testutils.StudentToken(t, cfg, student, exam)

	body := fiber.Map{
		"answers":   fiber.Map{fmt.Sprint(questions[0].ID): "A"},
		"timeTaken": 10,
	}

	status, _ := testutils.Request(t, app, fiber.MethodPost, "/student/submit", token, body)
	require.Equal(t, fiber.StatusOK, status)

	// A still-valid token (second browser tab) cannot create a second result.
	status, _ = testutils.Request(t, app, fiber.MethodPost, "/student/submit", token, body)
	assert.Equal(t, fiber.StatusConflict, status)

	var count int64
	db.Model(&models.StudentResult{}).Where("student_id = ? AND exam_id = ?", student.ID, exam.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestStudentLogin_BlockedAfterSubmission(t *testing.T) {
	app, db, cfg := testutils.SetupApp(t)
	exam, questions, student := activeExamFixture(t, db)
	token := testutils.StudentToken(t, cfg, student, exam)

	status, _ := testutils.Request(t, app, fiber.MethodPost, "/student/submit", token, fiber.Map{
		"answers":   fiber.Map{fmt.Sprint(questions[0].ID): "A"},
		"timeTaken": 10,
	})
	require.Equal(t, fiber.StatusOK, status)

	status, envelope := loginStudent(t, app, "s1", "examPw1")
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Contains(t, envelope["message"], "already completed")
}

// expiredDeadlineToken signs a student token whose submission deadline has
// already passed while the token itself is still valid.
func expiredDeadlineToken(t *testing.T, cfg *config.Config, student *models.Student, exam *models.Exam) string {
	t.Helper()
	claims := jwt.MapClaims{
		"studentId":  student.ID,
		"student_id": student.StudentID,
		"examId":     exam.ID,
		"deadline":   time.Now().Add(-time.Minute).Unix(),
		"iat":        time.Now().Add(-time.Hour).Unix(),
		"exp":        time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTKey))
	require.NoError(t, err)
	return token
}

func TestSubmitExam_PastDeadline(t *testing.T) {
	app, db, cfg := testutils.SetupApp(t)
	exam, questions, student := activeExamFixture(t, db)
	token := expiredDeadlineToken(t, cfg, student, exam)

	status, _ := testutils.Request(t, app, fiber.MethodPost, "/student/submit", token, fiber.Map{
		"answers":   fiber.Map{fmt.Sprint(questions[0].ID): "A"},
		"timeTaken": 7200,
	})
	assert.Equal(t, fiber.StatusForbidden, status)

	var count int64
	db.Model(&models.StudentResult{}).Count(&count)
	assert.Zero(t, count, "late submissions must not be scored")
}

func TestStudentEndpoints_RequireToken(t *testing.T) {
	app, _, _ := testutils.SetupApp(t)

	status, _ := testutils.Request(t, app, fiber.MethodGet, "/student/exam", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = testutils.Request(t, app, fiber.MethodPost, "/student/submit", "bad.token.here", fiber.Map{
		"answers": fiber.Map{}, "timeTaken": 0,
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
