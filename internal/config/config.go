package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort int
	StorePath  string // Location of the users JSON file
	BackupDir  string // Destination for scheduled store backups
	LogDir     string // Empty disables the file log tee

	PasswordMinLength int
	UsernameMinLength int

	// Recognized but not enforced anywhere in the login path.
	MaxLoginAttempts    int
	LoginAttemptTimeout int // seconds

	BackupSchedule string // standard cron expression
	AllowedOrigins []string
}

// Load loads configuration from a .env file (if present) and environment
// variables, falling back to defaults.
func Load() (*Config, error) {
	// Best effort; running without a .env file is normal.
	_ = godotenv.Load()

	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	passwordMin, err := getEnvInt("PASSWORD_MIN_LENGTH", 6)
	if err != nil {
		return nil, err
	}
	usernameMin, err := getEnvInt("USERNAME_MIN_LENGTH", 3)
	if err != nil {
		return nil, err
	}
	maxAttempts, err := getEnvInt("MAX_LOGIN_ATTEMPTS", 5)
	if err != nil {
		return nil, err
	}
	attemptTimeout, err := getEnvInt("LOGIN_ATTEMPT_TIMEOUT", 900)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:          port,
		StorePath:           getEnv("STORE_PATH", "./data/users.json"),
		BackupDir:           getEnv("BACKUP_DIR", "./data/backups"),
		LogDir:              getEnv("LOG_DIR", "./logs"),
		PasswordMinLength:   passwordMin,
		UsernameMinLength:   usernameMin,
		MaxLoginAttempts:    maxAttempts,
		LoginAttemptTimeout: attemptTimeout,
		BackupSchedule:      getEnv("BACKUP_SCHEDULE", "0 3 * * *"),
		AllowedOrigins:      splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
