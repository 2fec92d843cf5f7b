// ABOUTME: Tests for the upstream failure classification
// ABOUTME: Verifies the OpenAI error to FailureKind mapping stays closed

package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailureKind
	}{
		{
			name: "deadline exceeded",
			err:  context.DeadlineExceeded,
			want: FailureTimeout,
		},
		{
			name: "wrapped deadline exceeded",
			err:  fmt.Errorf("calling api: %w", context.DeadlineExceeded),
			want: FailureTimeout,
		},
		{
			name: "api error 401",
			err:  &openai.APIError{HTTPStatusCode: 401},
			want: FailureUnauthorized,
		},
		{
			name: "api error 403",
			err:  &openai.APIError{HTTPStatusCode: 403},
			want: FailureUnauthorized,
		},
		{
			name: "api error 429",
			err:  &openai.APIError{HTTPStatusCode: 429},
			want: FailureRateLimited,
		},
		{
			name: "api error 408",
			err:  &openai.APIError{HTTPStatusCode: 408},
			want: FailureTimeout,
		},
		{
			name: "api error 504",
			err:  &openai.APIError{HTTPStatusCode: 504},
			want: FailureTimeout,
		},
		{
			name: "api error 503",
			err:  &openai.APIError{HTTPStatusCode: 503},
			want: FailureServiceUnavailable,
		},
		{
			name: "api error 500",
			err:  &openai.APIError{HTTPStatusCode: 500},
			want: FailureUpstream,
		},
		{
			name: "request error 429",
			err:  &openai.RequestError{HTTPStatusCode: 429},
			want: FailureRateLimited,
		},
		{
			name: "plain error",
			err:  errors.New("connection refused"),
			want: FailureUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.err); got != tt.want {
				t.Errorf("classify(%v) = %s, want %s", tt.err, got, tt.want)
			}
		})
	}
}

func TestEmbeddingError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &EmbeddingError{Kind: FailureUpstream, Err: inner}

	if !errors.Is(err, inner) {
		t.Error("errors.Is() does not reach the wrapped cause")
	}

	var embErr *EmbeddingError
	wrapped := fmt.Errorf("pipeline: %w", err)
	if !errors.As(wrapped, &embErr) {
		t.Fatal("errors.As() does not find *EmbeddingError through wrapping")
	}
	if embErr.Kind != FailureUpstream {
		t.Errorf("Kind = %s, want %s", embErr.Kind, FailureUpstream)
	}
}

func TestGenerationError_Unwrap(t *testing.T) {
	inner := &openai.APIError{HTTPStatusCode: 429}
	err := &GenerationError{Kind: FailureRateLimited, Err: inner}

	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		t.Error("errors.As() does not reach the wrapped API error")
	}
}
