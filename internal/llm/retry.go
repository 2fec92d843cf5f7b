// ABOUTME: Opt-in retry decorator for the embedding boundary
// ABOUTME: A wrapping policy for the calling layer; never wired inside the pipeline core
package llm

import (
	"context"
	"errors"
	"time"

	"github.com/minwoo/ragserve/internal/util"
)

// WithRetry wraps an Embedder with exponential-backoff retries.
// Unauthorized failures are not retried; a fresh attempt cannot fix them.
func WithRetry(inner Embedder, maxRetries int, baseDelay time.Duration) Embedder {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = 2 * time.Second
	}
	return &retryEmbedder{inner: inner, maxRetries: maxRetries, baseDelay: baseDelay}
}

type retryEmbedder struct {
	inner      Embedder
	maxRetries int
	baseDelay  time.Duration
}

func (r *retryEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	var lastErr error

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(util.CalculateBackoff(r.baseDelay, attempt)):
			}
		}

		vector, err := r.inner.Embed(ctx, text)
		if err == nil {
			return vector, nil
		}
		lastErr = err

		var embErr *EmbeddingError
		if errors.As(err, &embErr) && embErr.Kind == FailureUnauthorized {
			return nil, err
		}
	}

	return nil, lastErr
}
