package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Store backends
const (
	BackendNeo4j  = "neo4j"
	BackendSQLite = "sqlite"
)

// Config holds all application configuration
type Config struct {
	// App
	Port    string
	Env     string
	LogFile string

	// Storage
	StoreBackend string
	SQLitePath   string

	// Neo4j
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string

	// Embeddings (optional, disabled when EmbeddingURL is empty)
	EmbeddingURL    string
	EmbeddingAPIKey string
	EmbeddingModel  string
	EmbeddingRate   float64 // requests per second

	// Network views
	NetworkCacheTTL time.Duration
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := Read()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Read reads configuration from environment variables without validating it,
// so callers can apply overrides first
func Read() *Config {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		LogFile:         getEnv("LOG_FILE", ""),
		StoreBackend:    getEnv("STORE_BACKEND", BackendNeo4j),
		SQLitePath:      getEnv("SQLITE_PATH", "semnet.db"),
		Neo4jURI:        getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:       getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:   getEnv("NEO4J_PASSWORD", "password"),
		EmbeddingURL:    getEnv("EMBEDDING_URL", ""),
		EmbeddingAPIKey: getEnv("EMBEDDING_API_KEY", ""),
		EmbeddingModel:  getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		EmbeddingRate:   getEnvFloat("EMBEDDING_RATE", 2),
		NetworkCacheTTL: getEnvDuration("NETWORK_CACHE_TTL", 30*time.Second),
	}
	return cfg
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendNeo4j:
		if c.Neo4jURI == "" {
			return fmt.Errorf("NEO4J_URI is required")
		}
		if c.Neo4jUser == "" {
			return fmt.Errorf("NEO4J_USER is required")
		}
		if c.Neo4jPassword == "" {
			return fmt.Errorf("NEO4J_PASSWORD is required")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (want %s or %s)", c.StoreBackend, BackendNeo4j, BackendSQLite)
	}
	if c.EmbeddingURL != "" && c.EmbeddingModel == "" {
		return fmt.Errorf("EMBEDDING_MODEL is required when EMBEDDING_URL is set")
	}
	if c.EmbeddingRate <= 0 {
		return fmt.Errorf("EMBEDDING_RATE must be positive")
	}
	return nil
}

// EmbeddingsEnabled reports whether sentences should be embedded on insert
func (c *Config) EmbeddingsEnabled() bool {
	return c.EmbeddingURL != ""
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var result float64
		if _, err := fmt.Sscanf(value, "%f", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
