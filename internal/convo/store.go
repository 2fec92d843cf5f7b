// ABOUTME: Conversation store contract mapping opaque keys to ordered message histories
// ABOUTME: Append is read-modify-write; concurrent turns on one key must be serialized by the caller
package convo

import (
	"context"
	"errors"
	"time"

	"github.com/minwoo/ragserve/internal/models"
)

// ErrHistoryCorrupt is returned when a stored history blob fails to parse.
var ErrHistoryCorrupt = errors.New("stored history is corrupt")

// KeyPrefix namespaces conversation keys in the backing store.
const KeyPrefix = "chat:"

// Store persists ordered message histories keyed by an opaque
// conversation key. The full history is written back as a unit on every
// mutation; two unserialized concurrent turns on the same key can lose
// one party's message. The orchestrator serializes per key.
type Store interface {
	// Get returns the ordered history for key, empty for an unseen key.
	Get(ctx context.Context, key string) ([]models.Message, error)

	// Append adds one message to the end of the history.
	Append(ctx context.Context, key string, msg models.Message) error

	// Overwrite replaces the entire history.
	Overwrite(ctx context.Context, key string, msgs []models.Message) error

	// Expire sets an advisory TTL on the history. Backends without
	// expiry support treat it as a no-op, never a failure.
	Expire(ctx context.Context, key string, ttl time.Duration) error
}
