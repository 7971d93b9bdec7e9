package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Abberdo/FlexConnect-MVP/internal/models"
)

// Connect opens the configured database. Postgres is the production driver;
// sqlite exists for local development and tests.
func Connect(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	case "sqlite":
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported db driver: %q", driver)
	}
}

// Migrate creates or updates the schema for all seven collections.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.FreelancerProfile{},
		&models.ClientProfile{},
		&models.JobPosting{},
		&models.Project{},
		&models.Message{},
		&models.Review{},
	)
}
