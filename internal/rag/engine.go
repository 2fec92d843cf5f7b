// ABOUTME: RAG engine composing chunker, embedder, vector index, history store, and generator
// ABOUTME: Owns the query pipelines; ingestion lives in ingest.go
package rag

import (
	"context"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/minwoo/ragserve/internal/convo"
	"github.com/minwoo/ragserve/internal/index"
	"github.com/minwoo/ragserve/internal/llm"
	"github.com/minwoo/ragserve/internal/log"
	"github.com/minwoo/ragserve/internal/models"
)

const (
	// DefaultPersona is the fixed system message for plain-mode chat.
	DefaultPersona = "You are a helpful assistant. Answer clearly and concisely."

	// DefaultContextInstruction closes the RAG-mode system message.
	DefaultContextInstruction = "Answer using only the information provided above. " +
		"If the information does not contain the answer, say that you do not know."
)

// Config holds the tunable parameters of the engine.
type Config struct {
	IndexName     string
	Dimension     int
	ChunkSize     int           // max chunk size in characters
	TopK          int           // retrieved entries per RAG query
	IngestWorkers int           // concurrent documents during ingestion
	EmbedRate     float64       // embedding calls per second during ingestion; 0 = unlimited
	HistoryTTL    time.Duration // advisory expiry on conversation histories; 0 = keep forever

	Persona            string
	ContextInstruction string
}

func (c Config) withDefaults() Config {
	if c.ChunkSize <= 0 {
		c.ChunkSize = 600
	}
	if c.TopK <= 0 {
		c.TopK = 5
	}
	if c.IngestWorkers <= 0 {
		c.IngestWorkers = 4
	}
	if c.Persona == "" {
		c.Persona = DefaultPersona
	}
	if c.ContextInstruction == "" {
		c.ContextInstruction = DefaultContextInstruction
	}
	return c
}

// Engine runs the ingestion and query pipelines. The index and history
// stores are the sole sources of truth; the engine caches none of their
// state across calls.
type Engine struct {
	embedder  llm.Embedder
	generator llm.Generator
	index     index.Store
	history   convo.Store
	logger    log.Logger
	cfg       Config
	limiter   *rate.Limiter
	locks     keyLock
}

// NewEngine wires an Engine from its collaborators.
func NewEngine(embedder llm.Embedder, generator llm.Generator, idx index.Store, history convo.Store, logger log.Logger, cfg Config) *Engine {
	if logger == nil {
		logger = log.NewNop()
	}
	cfg = cfg.withDefaults()

	var limiter *rate.Limiter
	if cfg.EmbedRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.EmbedRate), 1)
	}

	return &Engine{
		embedder:  embedder,
		generator: generator,
		index:     idx,
		history:   history,
		logger:    logger,
		cfg:       cfg,
		limiter:   limiter,
	}
}

// EnsureIndex creates the vector index if it does not exist yet.
func (e *Engine) EnsureIndex(ctx context.Context) error {
	return e.index.Create(ctx, e.cfg.IndexName, e.cfg.Dimension, index.MetricCosine)
}

// Chat runs the plain-mode query pipeline for one conversation turn.
// Turns on the same key are serialized; the new user turn is persisted
// only together with a successful assistant reply, so a failed
// generation call leaves the stored history exactly as it was.
func (e *Engine) Chat(ctx context.Context, key, prompt string) (string, error) {
	unlock := e.locks.lock(key)
	defer unlock()

	stored, err := e.history.Get(ctx, key)
	if err != nil {
		return "", err
	}

	pending := make([]models.Message, 0, len(stored)+2)
	pending = append(pending, stored...)
	pending = append(pending, models.UserMessage(prompt))

	reply, err := e.generator.Complete(ctx, e.cfg.Persona, pending)
	if err != nil {
		return "", err
	}

	pending = append(pending, models.AssistantMessage(reply))
	if err := e.history.Overwrite(ctx, key, pending); err != nil {
		return "", err
	}
	if e.cfg.HistoryTTL > 0 {
		if err := e.history.Expire(ctx, key, e.cfg.HistoryTTL); err != nil {
			e.logger.Warn("failed to set history expiry", "key", key, "error", err)
		}
	}

	e.logger.Info("chat turn persisted", "key", key, "messages", len(pending))
	return reply, nil
}

// ChatRAG runs the retrieval-augmented query pipeline. It is stateless:
// no conversation history is read or persisted.
func (e *Engine) ChatRAG(ctx context.Context, prompt string) (string, error) {
	vector, err := e.embedder.Embed(ctx, prompt)
	if err != nil {
		return "", err
	}

	results, err := e.index.Search(ctx, e.cfg.IndexName, vector, e.cfg.TopK)
	if err != nil {
		return "", err
	}
	e.logger.Info("context retrieved", "results", len(results))

	system := buildContextPrompt(results, e.cfg.ContextInstruction)
	return e.generator.Complete(ctx, system, []models.Message{models.UserMessage(prompt)})
}

// Reset drops and recreates the vector index, purging every entry.
func (e *Engine) Reset(ctx context.Context) error {
	// Create records the schema so Reset can recreate it.
	if err := e.EnsureIndex(ctx); err != nil {
		return err
	}
	return e.index.Reset(ctx, e.cfg.IndexName)
}

// buildContextPrompt joins retrieved chunk texts newline-separated in
// ranked order and appends the grounding instruction.
func buildContextPrompt(results []models.SearchResult, instruction string) string {
	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(r.Text)
	}
	if b.Len() > 0 {
		b.WriteString("\n\n")
	}
	b.WriteString(instruction)
	return b.String()
}
