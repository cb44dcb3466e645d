package database

import (
	"examportal/config"
	"examportal/models"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect establishes a connection to PostgreSQL, runs migrations and seeds
// the bootstrap owner account. The returned handle is passed into the
// controllers; there is no package-level instance.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	// TranslateError maps driver unique violations to gorm.ErrDuplicatedKey,
	// which the submission and registration paths rely on.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := SeedOwner(db, cfg); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate performs database migrations
func Migrate(db *gorm.DB) error {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.Organization{},
		&models.Admin{},
		&models.Exam{},
		&models.Question{},
		&models.Student{},
		&models.StudentResult{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Println("Migrations completed successfully.")
	return nil
}

// SeedOwner creates the bootstrap organization and owner account when the
// admins table is empty. Without it a fresh deployment has no way to log in.
func SeedOwner(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	if cfg.BootstrapAdminPassword == "" {
		log.Println("Warning: BOOTSTRAP_ADMIN_PASSWORD not set, skipping owner seed.")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.BootstrapAdminPassword), cfg.SaltRound)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		org := models.Organization{Name: cfg.BootstrapOrgName}
		if err := tx.Create(&org).Error; err != nil {
			return err
		}

		owner := models.Admin{
			AdminID:        cfg.BootstrapAdminID,
			Name:           cfg.BootstrapAdminName,
			Password:       string(hashed),
			OrganizationID: &org.ID,
			Role:           models.RoleOwner,
			IsActive:       true,
		}
		if err := tx.Create(&owner).Error; err != nil {
			return err
		}

		log.Printf("Seeded bootstrap owner %q in organization %q", owner.AdminID, org.Name)
		return nil
	})
}
