package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Gemini    GeminiConfig
	FAQ       FAQConfig
	Auth      AuthConfig
	Telemetry TelemetryConfig
}

type ServerConfig struct {
	Port string
	Host string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type GeminiConfig struct {
	APIKey     string
	ChatModel  string
	EmbedModel string
}

type FAQConfig struct {
	// DocumentPath points at the plain-text FAQ document indexed at
	// startup. Empty disables the retrieve_context tool.
	DocumentPath string
	ChunkSize    int
	ChunkOverlap int
	TopK         int
}

type AuthConfig struct {
	// APITokenHash is the bcrypt hash of the bearer token required on
	// API calls. Empty disables auth (local development only).
	APITokenHash string
}

type TelemetryConfig struct {
	Enabled      bool
	ServiceName  string
	Environment  string
	OTLPEndpoint string
	MetricsPort  string
}

func Load() (*Config, error) {
	database, err := LoadDatabase()
	if err != nil {
		return nil, err
	}

	faqChunkSize, err := strconv.Atoi(getEnv("FAQ_CHUNK_SIZE", "700"))
	if err != nil {
		return nil, fmt.Errorf("invalid FAQ_CHUNK_SIZE: %w", err)
	}
	faqChunkOverlap, err := strconv.Atoi(getEnv("FAQ_CHUNK_OVERLAP", "150"))
	if err != nil {
		return nil, fmt.Errorf("invalid FAQ_CHUNK_OVERLAP: %w", err)
	}
	faqTopK, err := strconv.Atoi(getEnv("FAQ_TOP_K", "6"))
	if err != nil {
		return nil, fmt.Errorf("invalid FAQ_TOP_K: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "0.0.0.0"),
		},
		Database: *database,
		Gemini: GeminiConfig{
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			ChatModel:  getEnv("GEMINI_CHAT_MODEL", "gemini-2.0-flash"),
			EmbedModel: getEnv("GEMINI_EMBED_MODEL", "gemini-embedding-001"),
		},
		FAQ: FAQConfig{
			DocumentPath: getEnv("FAQ_DOCUMENT_PATH", ""),
			ChunkSize:    faqChunkSize,
			ChunkOverlap: faqChunkOverlap,
			TopK:         faqTopK,
		},
		Auth: AuthConfig{
			APITokenHash: getEnv("API_TOKEN_HASH", ""),
		},
		Telemetry: TelemetryConfig{
			Enabled:      getBoolEnv("OTEL_ENABLED", false),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "assessor-api"),
			Environment:  getEnv("OTEL_ENVIRONMENT", "development"),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_ENDPOINT", "localhost:4317"),
			MetricsPort:  getEnv("METRICS_PORT", "9091"),
		},
	}

	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if cfg.FAQ.ChunkOverlap >= cfg.FAQ.ChunkSize {
		return nil, fmt.Errorf("FAQ_CHUNK_OVERLAP must be smaller than FAQ_CHUNK_SIZE")
	}

	return cfg, nil
}

// LoadDatabase loads only the database configuration. Used by commands
// that talk to Postgres without the rest of the stack.
func LoadDatabase() (*DatabaseConfig, error) {
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	return &DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "assessor"),
		Password: getEnv("DB_PASSWORD", ""),
		DBName:   getEnv("DB_NAME", "assessor"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}, nil
}

func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	switch strings.ToLower(value) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultValue
	}
}
