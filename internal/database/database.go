package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/YYInGitHub/C237-2024-SupermarketApp/internal/config"
	"github.com/YYInGitHub/C237-2024-SupermarketApp/internal/model"
)

// Connect opens the database and runs the automigrations. With a
// DATABASE_URL it talks to Postgres; without one it falls back to the
// SQLite file at cfg.DBPath, which is what local runs and tests use.
func Connect(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.DatabaseURL != "" {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		dialector = sqlite.Open(cfg.DBPath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&model.User{}, &model.Product{}); err != nil {
		return nil, err
	}

	return db, nil
}
