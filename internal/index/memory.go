// ABOUTME: In-process vector index using exact brute-force cosine search
// ABOUTME: Backs tests and small corpora; same contract as the Redis backend
package index

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/minwoo/ragserve/internal/models"
)

// MemoryStore is an exact-scan implementation of Store. Insertion order
// is tracked per index so equal-score search results rank
// deterministically.
type MemoryStore struct {
	mu      sync.RWMutex
	indexes map[string]*memIndex
}

type memIndex struct {
	dimension int
	metric    Metric
	entries   map[string]memEntry
	order     []string // keys in first-insertion order
}

type memEntry struct {
	vector  []float32
	payload string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{indexes: make(map[string]*memIndex)}
}

// Create defines the named index; a second call with the same name is a no-op.
func (s *MemoryStore) Create(_ context.Context, name string, dimension int, metric Metric) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.indexes[name]; ok {
		return nil
	}
	s.indexes[name] = &memIndex{
		dimension: dimension,
		metric:    metric,
		entries:   make(map[string]memEntry),
	}
	return nil
}

// Insert upserts an entry by key.
func (s *MemoryStore) Insert(_ context.Context, name, key string, vector []float32, payload string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.indexes[name]
	if !ok {
		return ErrIndexNotFound
	}
	if len(vector) != idx.dimension {
		return &DimensionError{Want: idx.dimension, Got: len(vector)}
	}

	if _, exists := idx.entries[key]; !exists {
		idx.order = append(idx.order, key)
	}
	stored := make([]float32, len(vector))
	copy(stored, vector)
	idx.entries[key] = memEntry{vector: stored, payload: payload}
	return nil
}

// Search ranks all entries by cosine similarity and returns the top k.
func (s *MemoryStore) Search(_ context.Context, name string, vector []float32, k int) ([]models.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.indexes[name]
	if !ok {
		return nil, ErrIndexNotFound
	}

	results := make([]models.SearchResult, 0, len(idx.order))
	for _, key := range idx.order {
		entry := idx.entries[key]
		results = append(results, models.SearchResult{
			Key:   key,
			Text:  entry.payload,
			Score: cosineSimilarity(vector, entry.vector),
		})
	}

	// Stable sort keeps insertion key order for equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// Reset recreates the named index empty with its prior schema.
func (s *MemoryStore) Reset(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.indexes[name]
	if !ok {
		return nil
	}
	s.indexes[name] = &memIndex{
		dimension: idx.dimension,
		metric:    idx.metric,
		entries:   make(map[string]memEntry),
	}
	return nil
}

// DeleteByPrefix removes matching entries from every index.
func (s *MemoryStore) DeleteByPrefix(_ context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, idx := range s.indexes {
		kept := idx.order[:0]
		for _, key := range idx.order {
			if strings.HasPrefix(key, prefix) {
				delete(idx.entries, key)
				continue
			}
			kept = append(kept, key)
		}
		idx.order = kept
	}
	return nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
