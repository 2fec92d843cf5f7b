// ABOUTME: Redis-backed conversation store persisting one JSON history blob per key
// ABOUTME: GET/SET with optional TTL; corrupt blobs surface as ErrHistoryCorrupt
package convo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/minwoo/ragserve/internal/models"
)

// RedisStore implements Store on a Redis string value per conversation.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration // applied on every write; 0 disables expiry
}

// NewRedisStore creates a RedisStore. ttl of 0 keeps histories forever.
func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Get fetches and decodes the history blob.
func (s *RedisStore) Get(ctx context.Context, key string) ([]models.Message, error) {
	data, err := s.client.Get(ctx, KeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history %s: %w", key, err)
	}

	var msgs []models.Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil, fmt.Errorf("%w: key %s: %v", ErrHistoryCorrupt, key, err)
	}
	return msgs, nil
}

// Append reads the history, adds msg, and writes the whole blob back.
func (s *RedisStore) Append(ctx context.Context, key string, msg models.Message) error {
	msgs, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	return s.Overwrite(ctx, key, append(msgs, msg))
}

// Overwrite replaces the stored history in one SET.
func (s *RedisStore) Overwrite(ctx context.Context, key string, msgs []models.Message) error {
	data, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("marshaling history %s: %w", key, err)
	}
	if err := s.client.Set(ctx, KeyPrefix+key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("writing history %s: %w", key, err)
	}
	return nil
}

// Expire sets a TTL on the history key.
func (s *RedisStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Expire(ctx, KeyPrefix+key, ttl).Err(); err != nil {
		return fmt.Errorf("expiring history %s: %w", key, err)
	}
	return nil
}
