package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// Storage
	DBDriver string // "sqlite" or "postgres"
	DBDSN    string // empty selects the driver's default

	LogLevel slog.Level

	// Bootstrap and generation
	ReseedOnStart   bool
	UploadQuizCount int

	CORSOrigins []string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdown, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	reseed, err := getBool("RESEED_ON_START", true)
	if err != nil {
		return nil, err
	}
	count, err := getInt("UPLOAD_QUIZ_COUNT", 5)
	if err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, fmt.Errorf("config: UPLOAD_QUIZ_COUNT must be positive, got %d", count)
	}
	level, err := getLevel("LOG_LEVEL", slog.LevelInfo)
	if err != nil {
		return nil, err
	}

	driver := getenvDefault("DB_DRIVER", "sqlite")
	if driver != "sqlite" && driver != "postgres" {
		return nil, fmt.Errorf("config: DB_DRIVER=%q is not one of sqlite, postgres", driver)
	}

	return &Config{
		ServerAddress:   getenvDefault("SERVER_ADDRESS", ":8080"),
		ShutdownTimeout: shutdown,
		DBDriver:        driver,
		DBDSN:           os.Getenv("DB_DSN"),
		LogLevel:        level,
		ReseedOnStart:   reseed,
		UploadQuizCount: count,
		CORSOrigins:     splitList(getenvDefault("CORS_ORIGINS", "*")),
	}, nil
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getDuration(k string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a valid duration: %w", k, v, err)
	}
	return d, nil
}

func getBool(k string, fallback bool) (bool, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s=%q is not a valid boolean: %w", k, v, err)
	}
	return b, nil
}

func getInt(k string, fallback int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a valid integer: %w", k, v, err)
	}
	return n, nil
}

func getLevel(k string, fallback slog.Level) (slog.Level, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(v)); err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a valid log level: %w", k, v, err)
	}
	return l, nil
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
