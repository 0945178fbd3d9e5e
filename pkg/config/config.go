// Package config loads server configuration from the environment and
// deployment profiles from YAML.
package config

import "os"

// Config holds server configuration.
type Config struct {
	Port         string
	LogLevel     string
	DatabaseURL  string
	RedisAddr    string
	CatalogDir   string
	ProfileDir   string
	Profile      string
	LiteMode     bool // SQLite instead of Postgres
	SQLitePath   string
	OTLPEndpoint string
	OTELEnabled  bool
}

// Load loads configuration from environment variables.
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "INFO"
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = "postgres://hazard@localhost:5432/hazard?sslmode=disable"
	}

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "hazard.db"
	}

	otlp := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlp == "" {
		otlp = "localhost:4317"
	}

	return &Config{
		Port:         port,
		LogLevel:     logLevel,
		DatabaseURL:  dbURL,
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		CatalogDir:   os.Getenv("CATALOG_DIR"),
		ProfileDir:   os.Getenv("PROFILE_DIR"),
		Profile:      os.Getenv("DEPLOYMENT_PROFILE"),
		LiteMode:     os.Getenv("LITE_MODE") == "true",
		SQLitePath:   sqlitePath,
		OTLPEndpoint: otlp,
		OTELEnabled:  os.Getenv("OTEL_ENABLED") == "true",
	}
}
