package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the app reads from the environment. DATABASE_URL
// selects Postgres; when it is empty the app falls back to a local SQLite
// file at DBPath.
type Config struct {
	Port          string `envconfig:"PORT" default:"3000"`
	DatabaseURL   string `envconfig:"DATABASE_URL"`
	DBPath        string `envconfig:"DB_PATH" default:"supermarket.db"`
	SessionSecret string `envconfig:"SESSION_SECRET" default:"secret"`
	UploadDir     string `envconfig:"UPLOAD_DIR" default:"public/images"`

	SeedAdmin     bool   `envconfig:"SEED_ADMIN" default:"false"`
	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"admin@supermarket.com"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"admin123"`
}

func Load() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}
