package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string
	UploadDir   string

	SessionTTL         time.Duration
	ProcessingDelay    time.Duration
	WorkerPollInterval time.Duration
}

func Load() (Config, error) {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "advidly"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		UploadDir:   uploadDir,

		SessionTTL:         envDuration("SESSION_TTL", 24*time.Hour),
		ProcessingDelay:    envDuration("PROCESSING_DELAY", 10*time.Second),
		WorkerPollInterval: envDuration("WORKER_POLL_INTERVAL", 2*time.Second),
	}, nil
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
		return parsed
	}
	if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}
