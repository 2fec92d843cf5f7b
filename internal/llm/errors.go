// ABOUTME: Closed failure-kind taxonomy for the embedding and generation boundaries
// ABOUTME: Maps upstream OpenAI errors to contract kinds at the adapter edge
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// FailureKind classifies an upstream service failure. Callers branch on
// the kind instead of inspecting error strings.
type FailureKind string

const (
	FailureUnauthorized       FailureKind = "unauthorized"
	FailureRateLimited        FailureKind = "rate_limited"
	FailureTimeout            FailureKind = "timeout"
	FailureServiceUnavailable FailureKind = "service_unavailable"
	FailureUpstream           FailureKind = "upstream_error"
	FailureMalformed          FailureKind = "malformed_response"
)

// EmbeddingError reports a failed embedding call.
type EmbeddingError struct {
	Kind FailureKind
	Err  error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding failed (%s): %v", e.Kind, e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// GenerationError reports a failed completion call. The orchestrator
// propagates it unmodified; retry policy belongs to the calling layer.
type GenerationError struct {
	Kind FailureKind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (%s): %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// classify maps an error returned by the OpenAI client to a FailureKind.
func classify(err error) FailureKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return kindFromStatus(apiErr.HTTPStatusCode)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return kindFromStatus(reqErr.HTTPStatusCode)
	}

	return FailureUpstream
}

func kindFromStatus(status int) FailureKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return FailureUnauthorized
	case status == http.StatusTooManyRequests:
		return FailureRateLimited
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return FailureTimeout
	case status == http.StatusServiceUnavailable:
		return FailureServiceUnavailable
	default:
		return FailureUpstream
	}
}
