package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carries all process configuration. It is loaded once in main and
// passed explicitly to constructors; nothing reads the environment after
// startup.
type Config struct {
	Port     string
	Provider string

	// Postgres connection
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	RedisAddr string

	JWTSecret string
	TokenTTL  time.Duration

	// Evaluation call timeout; surfaces as an upstream error when exceeded.
	EvalTimeout time.Duration

	// Topic-derived sessions draw a random subset of at most this many
	// questions.
	MaxAdHocQuestions int

	// Reaper settings: in_progress sessions idle beyond SessionTTL are
	// marked abandoned on the cron schedule.
	ReaperSchedule string
	SessionTTL     time.Duration

	AllowedOrigins []string
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Provider:          getEnv("AI_PROVIDER", "gemini"),
		DBHost:            getEnv("POSTGRES_HOST", "localhost"),
		DBUser:            getEnv("POSTGRES_USER", "postgres"),
		DBPassword:        getEnv("POSTGRES_PASSWORD", "postgres"),
		DBName:            getEnv("POSTGRES_DB", "postgres"),
		DBPort:            getEnv("POSTGRES_PORT", "5432"),
		DBSSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTL:          getEnvDuration("TOKEN_TTL", 24*time.Hour),
		EvalTimeout:       getEnvDuration("EVAL_TIMEOUT", 30*time.Second),
		MaxAdHocQuestions: getEnvInt("MAX_ADHOC_QUESTIONS", 5),
		ReaperSchedule:    getEnv("SESSION_REAPER_SCHEDULE", "@every 1h"),
		SessionTTL:        getEnvDuration("SESSION_TTL", 24*time.Hour),
		AllowedOrigins:    []string{getEnv("FRONTEND_ORIGIN", "http://localhost:5173")},
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	if cfg.Provider == "" {
		return errors.New("AI_PROVIDER must not be empty")
	}
	if cfg.MaxAdHocQuestions <= 0 {
		return fmt.Errorf("MAX_ADHOC_QUESTIONS must be positive, got %d", cfg.MaxAdHocQuestions)
	}
	return nil
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
