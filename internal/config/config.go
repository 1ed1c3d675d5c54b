package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the application.
type Config struct {
	Port          string
	DatabasePath  string
	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool
	BcryptCost    int
}

// Load reads configuration from the environment. A .env file in the
// working directory is read first when present, without overriding
// variables already set in the environment.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DatabasePath:  getEnv("DATABASE_PATH", "inkwell.db"),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		// Default to secure cookies; disable only for local development.
		CookieSecure: getEnv("COOKIE_SECURE", "true") != "false",
	}

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is required")
	}
	if len(cfg.SessionSecret) < 32 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}

	ttlHours, err := getEnvAsInt("SESSION_TTL_HOURS", 24)
	if err != nil {
		return nil, err
	}
	if ttlHours < 1 {
		return nil, fmt.Errorf("SESSION_TTL_HOURS must be positive, got %d", ttlHours)
	}
	cfg.SessionTTL = time.Duration(ttlHours) * time.Hour

	cost, err := getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}
	if cost < 4 || cost > 14 {
		return nil, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", cost)
	}
	cfg.BcryptCost = cost

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
