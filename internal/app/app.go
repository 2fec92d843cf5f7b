// ABOUTME: Builds the RAG engine and its collaborators from configuration
// ABOUTME: Shared wiring for the CLI, HTTP server, and MCP entry points
package app

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/minwoo/ragserve/internal/config"
	"github.com/minwoo/ragserve/internal/convo"
	"github.com/minwoo/ragserve/internal/index"
	"github.com/minwoo/ragserve/internal/llm"
	"github.com/minwoo/ragserve/internal/log"
	"github.com/minwoo/ragserve/internal/rag"
)

// Build wires an Engine from config. The returned cleanup func closes
// the Redis connection; it is safe to call when no connection was made.
func Build(cfg *config.Config, logger log.Logger) (*rag.Engine, func() error, error) {
	client, err := llm.NewClient(llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Timeout:        cfg.RequestTimeout,
	})
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() error { return nil }

	var idx index.Store
	var history convo.Store
	switch cfg.IndexBackend {
	case "memory":
		idx = index.NewMemoryStore()
		history = convo.NewMemoryStore()
	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		cleanup = rdb.Close
		idx = index.NewRedisStore(rdb, logger.With("component", "index"))
		history = convo.NewRedisStore(rdb, cfg.HistoryTTL)
	default:
		return nil, nil, fmt.Errorf("unknown index backend %q", cfg.IndexBackend)
	}

	engine := rag.NewEngine(client, client, idx, history, logger.With("component", "engine"), rag.Config{
		IndexName:     cfg.IndexName,
		Dimension:     cfg.VectorDimension,
		ChunkSize:     cfg.ChunkSize,
		TopK:          cfg.TopK,
		IngestWorkers: cfg.IngestWorkers,
		EmbedRate:     cfg.EmbedRate,
		HistoryTTL:    cfg.HistoryTTL,
	})

	return engine, cleanup, nil
}
