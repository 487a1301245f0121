package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env       string // "development", "production", etc.
	LogLevel  string // debug, info, warn, error
	LogFormat string // text or json

	// Server
	ServerAddr string

	// Database
	DatabaseURL string

	// Redis (optional; backs the login rate limiter when set)
	RedisURL string

	// CORS
	CORSOrigins string // Comma-separated allowed origins, e.g. "https://example.com,https://app.example.com"

	// Sentiment model
	ModelURL     string        // Text-classification inference endpoint
	ModelToken   string        // Bearer token for the endpoint
	ModelTimeout time.Duration // Per-item inference timeout

	// Clusters
	ClustersFile string // .csv (one column per cluster) or .yaml

	// Ingestion
	FeedbackSource  string // Local path or http(s) URL of the feedback CSV
	FeedbackColumn  string
	IngestLimit     int // 0 = all rows
	IngestOnStartup bool
	IngestInterval  time.Duration // Repeat startup ingestion; 0 = once
	PipelineWorkers int

	// Login
	LoginRateLimit int // Attempts per minute per IP
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	return &Config{
		Env:       getEnv("ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		ServerAddr:  getEnv("SERVER_ADDR", ":5001"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/feedback_analysis?sslmode=disable"),
		RedisURL:    getEnv("REDIS_URL", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		ModelURL:     getEnv("MODEL_URL", "https://api-inference.huggingface.co/models/nlptown/bert-base-multilingual-uncased-sentiment"),
		ModelToken:   getEnv("MODEL_TOKEN", ""),
		ModelTimeout: getEnvDuration("MODEL_TIMEOUT", 30*time.Second),

		ClustersFile: getEnv("CLUSTERS_FILE", "data/clusters.csv"),

		FeedbackSource:  getEnv("FEEDBACK_SOURCE", "data/British_Air_Customer_Reviews.csv"),
		FeedbackColumn:  getEnv("FEEDBACK_COLUMN", "feedback"),
		IngestLimit:     getEnvInt("INGEST_LIMIT", 20),
		IngestOnStartup: getEnv("INGEST_ON_STARTUP", "") != "",
		IngestInterval:  getEnvDuration("INGEST_INTERVAL", 0),
		PipelineWorkers: getEnvInt("PIPELINE_WORKERS", 4),

		LoginRateLimit: getEnvInt("LOGIN_RATE_LIMIT", 10),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return d
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// Validate checks settings that have no usable default.
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.ModelURL == "" {
		errs = append(errs, errors.New("MODEL_URL is required"))
	}
	if c.ClustersFile == "" {
		errs = append(errs, errors.New("CLUSTERS_FILE is required"))
	}
	if c.ModelTimeout <= 0 {
		errs = append(errs, errors.New("MODEL_TIMEOUT must be positive"))
	}
	if c.IngestInterval < 0 {
		errs = append(errs, errors.New("INGEST_INTERVAL must not be negative"))
	}
	if c.IngestLimit < 0 {
		errs = append(errs, errors.New("INGEST_LIMIT must not be negative"))
	}
	if c.LoginRateLimit <= 0 {
		errs = append(errs, errors.New("LOGIN_RATE_LIMIT must be positive"))
	}
	return errors.Join(errs...)
}
