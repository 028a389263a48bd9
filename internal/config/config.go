package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	// SessionSecret signs the session token cookie. Change from the default for deployment.
	SessionSecret string

	// SessionExpireHours is the session token lifetime in hours (default 24).
	SessionExpireHours int

	// Env is "dev" (default) or "prod".
	Env string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string
}

func Load() Config {
	if os.Getenv("ENV") != "prod" {
		godotenv.Load()
	}

	return Config{
		Port: getEnv("PORT", "8080"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBName: getEnv("DB_NAME", "bloglet"),
		DBUser: getEnv("DB_USER", "bloglet"),
		DBPass: getEnv("DB_PASS", "bloglet"),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		SessionSecret:      getEnv("SESSION_SECRET", "dev"),
		SessionExpireHours: getEnvInt("SESSION_EXPIRE_HOURS", 24),

		Env:       getEnv("ENV", "dev"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
