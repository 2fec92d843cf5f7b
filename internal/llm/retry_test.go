// ABOUTME: Tests for the opt-in embedding retry decorator
// ABOUTME: Verifies attempt counting, non-retryable kinds, and context cancellation

package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingEmbedder struct {
	calls   int
	failFor int // number of leading calls that fail
	err     error
}

func (c *countingEmbedder) Embed(context.Context, string) ([]float32, error) {
	c.calls++
	if c.calls <= c.failFor {
		return nil, c.err
	}
	return []float32{1}, nil
}

func TestWithRetry_SucceedsAfterTransientFailures(t *testing.T) {
	inner := &countingEmbedder{
		failFor: 2,
		err:     &EmbeddingError{Kind: FailureRateLimited, Err: errors.New("429")},
	}
	emb := WithRetry(inner, 3, time.Millisecond)

	vector, err := emb.Embed(context.Background(), "text")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if len(vector) != 1 {
		t.Errorf("vector length = %d, want 1", len(vector))
	}
	if inner.calls != 3 {
		t.Errorf("inner called %d times, want 3", inner.calls)
	}
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	wantErr := &EmbeddingError{Kind: FailureServiceUnavailable, Err: errors.New("503")}
	inner := &countingEmbedder{failFor: 100, err: wantErr}
	emb := WithRetry(inner, 2, time.Millisecond)

	_, err := emb.Embed(context.Background(), "text")
	if !errors.Is(err, wantErr) {
		t.Fatalf("Embed() error = %v, want the last inner error", err)
	}
	if inner.calls != 3 {
		t.Errorf("inner called %d times, want 3 (initial + 2 retries)", inner.calls)
	}
}

func TestWithRetry_UnauthorizedIsNotRetried(t *testing.T) {
	inner := &countingEmbedder{
		failFor: 100,
		err:     &EmbeddingError{Kind: FailureUnauthorized, Err: errors.New("401")},
	}
	emb := WithRetry(inner, 5, time.Millisecond)

	_, err := emb.Embed(context.Background(), "text")
	var embErr *EmbeddingError
	if !errors.As(err, &embErr) || embErr.Kind != FailureUnauthorized {
		t.Fatalf("Embed() error = %v, want unauthorized EmbeddingError", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner called %d times, want 1", inner.calls)
	}
}

func TestWithRetry_CanceledContext(t *testing.T) {
	inner := &countingEmbedder{
		failFor: 100,
		err:     &EmbeddingError{Kind: FailureUpstream, Err: errors.New("down")},
	}
	emb := WithRetry(inner, 5, 10*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := emb.Embed(ctx, "text")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Embed() error = %v, want context.Canceled", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner called %d times before backoff, want 1", inner.calls)
	}
}
