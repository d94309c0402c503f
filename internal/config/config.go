package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ErrMissingJWTSecret is returned when no signing secret is configured.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

// Config holds the application configuration.
type Config struct {
	ServerPort         int
	JWTSecret          string
	UsersDBPath        string // JSON credential store
	DataDir            string // Base path for farm JSON/CSV/GeoJSON files
	DatabasePath       string // SQLite activity log
	BcryptCost         int
	CatalogRefreshCron string
	CORSAllowedOrigins []string
	LogLevel           string
	LogFormat          string // "console" or "json"
}

// Load loads configuration from environment variables or sets defaults.
// A .env file in the working directory is applied first when present.
func Load() (*Config, error) {
	// Missing .env is fine; real environment variables take precedence anyway.
	_ = godotenv.Load()

	port, err := getEnvInt("PORT", 3000)
	if err != nil {
		return nil, err
	}
	cost, err := getEnvInt("BCRYPT_COST", 10)
	if err != nil {
		return nil, err
	}

	secret := getEnv("JWT_SECRET", "")
	if secret == "" {
		return nil, ErrMissingJWTSecret
	}

	return &Config{
		ServerPort:         port,
		JWTSecret:          secret,
		UsersDBPath:        getEnv("USERS_DB_PATH", "./users.json"),
		DataDir:            getEnv("DATA_DIR", "./data"),
		DatabasePath:       getEnv("DATABASE_PATH", "./agrasia.db"),
		BcryptCost:         cost,
		CatalogRefreshCron: getEnv("CATALOG_REFRESH_CRON", "*/5 * * * *"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "console"),
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
	raw := getEnv(key, strconv.Itoa(fallback))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
