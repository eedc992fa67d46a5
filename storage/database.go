package storage

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/zafyhx/stayverse-project/models"
)

// InitializeDB opens the Postgres connection and migrates the schema.
// The handle is returned to the caller and passed into the route handlers;
// nothing in the application reaches for a package-level connection.
func InitializeDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("storage: DB_CONNECTION_STRING environment variable is required")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("storage: connecting to db: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate keeps the schema in sync on startup, the way the legacy server
// ran sequelize.sync({alter: true}).
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Hotel{},
		&models.Reservation{},
		&models.CancellationRequest{},
		&models.Blog{},
		&models.AuditLog{},
	)
}
