// ABOUTME: OpenAI client adapter for embeddings and chat completions
// ABOUTME: text-embedding-3-small for vectors, gpt-3.5-turbo for replies (configurable)
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/minwoo/ragserve/internal/models"
)

const (
	// DefaultChatModel is the default model for chat completions
	DefaultChatModel = "gpt-3.5-turbo"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = string(openai.SmallEmbedding3)
)

// Embedder produces a fixed-dimension vector for a text string.
// Implementations must be safe for concurrent use and stateless per call.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Generator invokes an external language model with a structured message
// list and returns its reply text.
type Generator interface {
	Complete(ctx context.Context, systemMessage string, history []models.Message) (string, error)
}

// ClientConfig holds configuration for the OpenAI client.
type ClientConfig struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
}

// Client wraps the OpenAI API client. It implements both Embedder and
// Generator; each call is time-boxed by the configured request timeout.
type Client struct {
	api            *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	timeout        time.Duration
}

// NewClient creates a new OpenAI client adapter.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = DefaultChatModel
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = DefaultEmbeddingModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		api:            openai.NewClient(cfg.APIKey),
		chatModel:      cfg.ChatModel,
		embeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		timeout:        cfg.Timeout,
	}, nil
}

// Embed generates an embedding vector for text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: []string{text},
		Model: c.embeddingModel,
	})
	if err != nil {
		return nil, &EmbeddingError{Kind: classify(err), Err: err}
	}
	if len(resp.Data) == 0 {
		return nil, &EmbeddingError{Kind: FailureMalformed, Err: errors.New("no embeddings returned")}
	}

	return resp.Data[0].Embedding, nil
}

// Complete sends the system message followed by the full history to the
// chat model and returns the reply content.
func (c *Client) Complete(ctx context.Context, systemMessage string, history []models.Message) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	if systemMessage != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemMessage,
		})
	}
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.chatModel,
		Messages: messages,
	})
	if err != nil {
		return "", &GenerationError{Kind: classify(err), Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &GenerationError{Kind: FailureUpstream, Err: errors.New("no completion choices returned")}
	}

	return resp.Choices[0].Message.Content, nil
}
