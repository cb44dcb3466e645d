package authController_test

import (
	"testing"

	"examportal/models"
	"examportal/testutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminLogin(t *testing.T) {
	app, db, _ := testutils.SetupApp(t)
	org := testutils.CreateOrg(t, db, "Acme")
	testutils.CreateAdmin(t, db, &org.ID, "owner1", "s3cretpw", models.RoleOwner)

	status, envelope := testutils.Request(t, app, fiber.MethodPost, "/admin/login", "", fiber.Map{
		"adminId":  "owner1",
		"password": "s3cretpw",
	})
	require.Equal(t, fiber.StatusOK, status)

	data := testutils.Data(t, envelope)
	assert.NotEmpty(t, data["token"])

	admin, ok := data["admin"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "owner1", admin["admin_id"])
	assert.Equal(t, models.RoleOwner, admin["role"])
	assert.NotContains(t, admin, "password")
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	app, db, _ := testutils.SetupApp(t)
	testutils.CreateAdmin(t, db, nil, "owner1", "s3cretpw", models.RoleOwner)

	status, _ := testutils.Request(t, app, fiber.MethodPost, "/admin/login", "", fiber.Map{
		"adminId":  "owner1",
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAdminLogin_UnknownAccount(t *testing.T) {
	app, _, _ := testutils.SetupApp(t)

	status, _ := testutils.Request(t, app, fiber.MethodPost, "/admin/login", "", fiber.Map{
		"adminId":  "nobody",
		"password": "whatever",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAdminLogin_DeactivatedAccount(t *testing.T) {
	app, db, _ := testutils.SetupApp(t)
	admin := testutils.CreateAdmin(t, db, nil, "member1", "s3cretpw", models.RoleMember)
	require.NoError(t, db.Model(admin).Update("is_active", false).Error)

	status, _ := testutils.Request(t, app, fiber.MethodPost, "/admin/login", "", fiber.Map{
		"adminId":  "member1",
		"password": "s3cretpw",
	})
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestAdminLogin_MissingFields(t *testing.T) {
	app, _, _ := testutils.SetupApp(t)

	status, _ := testutils.Request(t, app, fiber.MethodPost, "/admin/login", "", fiber.Map{
		"adminId": "owner1",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}
