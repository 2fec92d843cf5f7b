// ABOUTME: Vector index contract shared by the Redis and in-memory backends
// ABOUTME: Named collections of (key, vector, payload) entries with cosine k-NN search
package index

import (
	"context"
	"errors"
	"fmt"

	"github.com/minwoo/ragserve/internal/models"
)

// DocPrefix is the key prefix shared by all index entries. The index
// schema is bound to it, and reset purges it wholesale.
const DocPrefix = "doc:"

// Metric names the distance metric of an index.
type Metric string

// MetricCosine is the only metric the backends implement.
const MetricCosine Metric = "COSINE"

// ErrIndexNotFound is returned by Search when the named index does not exist.
var ErrIndexNotFound = errors.New("index not found")

// DimensionError reports an insert whose vector length does not match the
// index dimensionality.
type DimensionError struct {
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("vector dimension mismatch: want %d, got %d", e.Want, e.Got)
}

// Store is a named collection of vector entries supporting approximate
// or exact cosine k-NN search. Implementations hold no client-side cache
// of entry state; every read is a fresh fetch.
type Store interface {
	// Create defines the named index. Creating an index that already
	// exists is a no-op, not an error.
	Create(ctx context.Context, name string, dimension int, metric Metric) error

	// Insert upserts an entry by key. The payload text is returned on
	// search. Fails with *DimensionError when the vector length differs
	// from the index dimensionality.
	Insert(ctx context.Context, name, key string, vector []float32, payload string) error

	// Search returns up to k entries ranked by descending cosine
	// similarity, ties broken by insertion key order. Fails with
	// ErrIndexNotFound when the named index does not exist.
	Search(ctx context.Context, name string, vector []float32, k int) ([]models.SearchResult, error)

	// Reset drops the index definition and all its entries if present,
	// then recreates an empty index with the prior schema.
	Reset(ctx context.Context, name string) error

	// DeleteByPrefix bulk-removes entries whose key matches the prefix.
	DeleteByPrefix(ctx context.Context, prefix string) error
}
