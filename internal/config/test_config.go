package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// LoadTestConfig loads configuration from TEST_* environment variables for
// integration tests. If TEST_DB_HOST is not set, returns a Config with empty
// database values so tests can decide to skip.
func LoadTestConfig() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist - it's optional)
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Database.Host = os.Getenv("TEST_DB_HOST")
	if cfg.Database.Host == "" {
		return cfg, nil
	}

	dbPortStr := os.Getenv("TEST_DB_PORT")
	if dbPortStr == "" {
		dbPortStr = "3306"
	}
	if _, err := fmt.Sscanf(dbPortStr, "%d", &cfg.Database.Port); err != nil {
		return nil, fmt.Errorf("invalid TEST_DB_PORT: %w", err)
	}

	cfg.Database.User = os.Getenv("TEST_DB_USER")
	cfg.Database.Password = os.Getenv("TEST_DB_PASSWORD")
	cfg.Database.DBName = os.Getenv("TEST_DB_NAME")

	cfg.JWT.AccessSecret = os.Getenv("TEST_JWT_ACCESS_SECRET")
	if cfg.JWT.AccessSecret == "" {
		cfg.JWT.AccessSecret = "test-access-secret"
	}
	cfg.JWT.RefreshSecret = os.Getenv("TEST_JWT_REFRESH_SECRET")
	if cfg.JWT.RefreshSecret == "" {
		cfg.JWT.RefreshSecret = "test-refresh-secret"
	}

	cfg.JWT.AccessTokenExpiry = 15 * time.Minute
	cfg.JWT.RefreshTokenExpiry = 168 * time.Hour

	cfg.Roles = defaultRoles
	cfg.Upload.BasePath = os.TempDir()

	return cfg, nil
}
