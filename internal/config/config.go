// ABOUTME: Centralized configuration for the RAG service
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the RAG service.
type Config struct {
	// Redis settings
	RedisURL   string
	HistoryTTL time.Duration // 0 disables expiry

	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	RequestTimeout time.Duration

	// Index settings
	IndexBackend    string // "redis" or "memory"
	IndexName       string
	VectorDimension int

	// Pipeline settings
	ChunkSize     int
	TopK          int
	IngestWorkers int
	EmbedRate     float64 // embedding calls per second during ingestion

	// Server settings
	ListenAddr string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
		HistoryTTL:      getEnvDuration("HISTORY_TTL", 0),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		ChatModel:       getEnv("RAG_CHAT_MODEL", "gpt-3.5-turbo"),
		EmbeddingModel:  getEnv("RAG_EMBEDDING_MODEL", "text-embedding-3-small"),
		RequestTimeout:  getEnvDuration("RAG_REQUEST_TIMEOUT", 30*time.Second),
		IndexBackend:    getEnv("INDEX_BACKEND", "redis"),
		IndexName:       getEnv("INDEX_NAME", "vector_index"),
		VectorDimension: getEnvInt("VECTOR_DIMENSION", 1536),
		ChunkSize:       getEnvInt("CHUNK_SIZE", 600),
		TopK:            getEnvInt("RAG_TOP_K", 5),
		IngestWorkers:   getEnvInt("INGEST_WORKERS", 4),
		EmbedRate:       getEnvFloat("EMBED_RATE", 10),
		ListenAddr:      getEnv("LISTEN_ADDR", ":3000"),
	}

	return cfg, cfg.Validate()
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.VectorDimension <= 0 {
		return fmt.Errorf("VECTOR_DIMENSION must be positive, got %d", c.VectorDimension)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("RAG_TOP_K must be positive, got %d", c.TopK)
	}
	if c.IngestWorkers <= 0 {
		return fmt.Errorf("INGEST_WORKERS must be positive, got %d", c.IngestWorkers)
	}
	if c.IndexBackend != "redis" && c.IndexBackend != "memory" {
		return fmt.Errorf("INDEX_BACKEND must be \"redis\" or \"memory\", got %q", c.IndexBackend)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("RAG_REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
