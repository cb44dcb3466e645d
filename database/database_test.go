package database_test

import (
	"testing"

	"examportal/config"
	"examportal/database"
	"examportal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDB(t *testing.T) *gorm.DB {
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

func seedConfig() *config.Config {
	return &config.Config{
		SaltRound:              bcrypt.MinCost,
		BootstrapOrgName:       "Acme",
		BootstrapAdminID:       "root",
		BootstrapAdminName:     "Root",
		BootstrapAdminPassword: "bootstrapPw",
	}
}

func TestSeedOwner(t *testing.T) {
	db := newDB(t)
	require.NoError(t, database.SeedOwner(db, seedConfig()))

	var owner models.Admin
	require.NoError(t, db.Where("admin_id = ?", "root").First(&owner).Error)
	assert.Equal(t, models.RoleOwner, owner.Role)
	assert.True(t, owner.IsActive)
	require.NotNil(t, owner.OrganizationID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(owner.Password), []byte("bootstrapPw")))

	var org models.Organization
	require.NoError(t, db.First(&org, *owner.OrganizationID).Error)
	assert.Equal(t, "Acme", org.Name)
}

func TestSeedOwner_SkipsWhenAdminsExist(t *testing.T) {
	db := newDB(t)
	require.NoError(t, db.Create(&models.Admin{AdminID: "existing", Password: "x", Role: models.RoleOwner}).Error)

	require.NoError(t, database.SeedOwner(db, seedConfig()))

	var count int64
	db.Model(&models.Admin{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSeedOwner_SkipsWithoutPassword(t *testing.T) {
	db := newDB(t)
	cfg := seedConfig()
	cfg.BootstrapAdminPassword = ""

	require.NoError(t, database.SeedOwner(db, cfg))

	var count int64
	db.Model(&models.Admin{}).Count(&count)
	assert.Zero(t, count)
}

func TestResultPairUniqueness(t *testing.T) {
	db := newDB(t)

	first := models.StudentResult{StudentID: 1, ExamID: 1, Score: 3, TotalQuestions: 5}
	require.NoError(t, db.Create(&first).Error)

	second := models.StudentResult{StudentID: 1, ExamID: 1, Score: 5, TotalQuestions: 5}
	err := db.Create(&second).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// A different exam for the same student is a fresh pair.
	third := models.StudentResult{StudentID: 1, ExamID: 2, Score: 5, TotalQuestions: 5}
	assert.NoError(t, db.Create(&third).Error)
}
