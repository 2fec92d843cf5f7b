// ABOUTME: Ingestion pipeline reading plain-text documents into the vector index
// ABOUTME: Documents fan out on a bounded worker pool; chunks stay in ordinal order per document
package rag

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/minwoo/ragserve/internal/chunker"
	"github.com/minwoo/ragserve/internal/models"
)

// IngestError wraps any document-level failure during ingestion.
type IngestError struct {
	DocumentID string
	Err        error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("ingesting document %s: %v", e.DocumentID, e.Err)
}

func (e *IngestError) Unwrap() error { return e.Err }

// IngestDirectory indexes every .txt file in dir and returns the number
// of entries inserted.
func (e *Engine) IngestDirectory(ctx context.Context, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reading document directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".txt") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return 0, fmt.Errorf("no .txt documents found in %s", dir)
	}
	return e.IngestFiles(ctx, paths)
}

// IngestFiles indexes the given documents. Different documents are
// processed concurrently up to the worker limit; within one document
// chunks are embedded and inserted strictly in ordinal order so keys
// stay deterministic. The first failure cancels the remaining work.
func (e *Engine) IngestFiles(ctx context.Context, paths []string) (int, error) {
	if err := e.EnsureIndex(ctx); err != nil {
		return 0, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.IngestWorkers)

	var total atomic.Int64
	for _, path := range paths {
		g.Go(func() error {
			n, err := e.ingestDocument(ctx, path)
			if err != nil {
				return err
			}
			total.Add(int64(n))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	e.logger.Info("ingestion complete", "documents", len(paths), "entries", total.Load())
	return int(total.Load()), nil
}

// ingestDocument chunks, embeds, and indexes one document. Empty chunks
// are skipped with a warning; an embedding or index failure aborts the
// document, because a corpus silently missing arbitrary chunks would
// degrade retrieval without anyone noticing.
func (e *Engine) ingestDocument(ctx context.Context, path string) (int, error) {
	docID := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, &IngestError{DocumentID: docID, Err: err}
	}

	chunks := chunker.Split(string(data), e.cfg.ChunkSize)

	inserted := 0
	for ordinal, text := range chunks {
		if strings.TrimSpace(text) == "" {
			e.logger.Warn("skipping empty chunk", "document", docID, "ordinal", ordinal)
			continue
		}

		if e.limiter != nil {
			if err := e.limiter.Wait(ctx); err != nil {
				return inserted, &IngestError{DocumentID: docID, Err: err}
			}
		}

		vector, err := e.embedder.Embed(ctx, text)
		if err != nil {
			return inserted, &IngestError{DocumentID: docID, Err: err}
		}

		chunk := models.Chunk{DocumentID: docID, Ordinal: ordinal, Text: text}
		if err := e.index.Insert(ctx, e.cfg.IndexName, chunk.Key(), vector, text); err != nil {
			return inserted, &IngestError{DocumentID: docID, Err: err}
		}
		inserted++
	}

	e.logger.Info("document indexed", "document", docID, "chunks", inserted)
	return inserted, nil
}
