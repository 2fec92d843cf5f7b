// ABOUTME: In-process conversation store for tests and single-node runs
// ABOUTME: Same read-modify-write semantics as the Redis backend, no expiry support
package convo

import (
	"context"
	"sync"
	"time"

	"github.com/minwoo/ragserve/internal/models"
)

// MemoryStore implements Store with a mutex-guarded map.
type MemoryStore struct {
	mu        sync.Mutex
	histories map[string][]models.Message
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{histories: make(map[string][]models.Message)}
}

// Get returns a copy of the stored history.
func (s *MemoryStore) Get(_ context.Context, key string) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.histories[key]
	out := make([]models.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

// Append adds one message to the end of the history.
func (s *MemoryStore) Append(_ context.Context, key string, msg models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.histories[key] = append(s.histories[key], msg)
	return nil
}

// Overwrite replaces the stored history with a copy of msgs.
func (s *MemoryStore) Overwrite(_ context.Context, key string, msgs []models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]models.Message, len(msgs))
	copy(stored, msgs)
	s.histories[key] = stored
	return nil
}

// Expire is advisory and unsupported here; it is a no-op.
func (s *MemoryStore) Expire(context.Context, string, time.Duration) error {
	return nil
}
