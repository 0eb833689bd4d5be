package database

import (
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/naniedobe1/PoleBrothers/config"
	"github.com/naniedobe1/PoleBrothers/models"
)

// Connect opens the metadata database and returns the handle. DATABASE_URL
// selects postgres (the remote Supabase-style backend); without it a local
// sqlite file is used. The handle is created once at process start and
// passed down explicitly.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	if cfg.DatabaseURL != "" {
		db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	} else {
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	log.Println("Database connection established")
	return db, nil
}

// Migrate creates the pole and profile tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Pole{}, &models.UserProfile{})
}
