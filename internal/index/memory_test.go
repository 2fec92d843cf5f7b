// ABOUTME: Tests for the in-memory vector index backend
// ABOUTME: Verifies create idempotence, upsert, ranking, determinism, and reset

package index

import (
	"context"
	"errors"
	"testing"
)

const testIndex = "test_index"

func newTestStore(t *testing.T, dimension int) *MemoryStore {
	t.Helper()
	store := NewMemoryStore()
	if err := store.Create(context.Background(), testIndex, dimension, MetricCosine); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return store
}

func TestCreate_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 3)

	if err := store.Insert(ctx, testIndex, "doc:a:0", []float32{1, 0, 0}, "alpha"); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	// Second create with the same name must not error or clear entries.
	if err := store.Create(ctx, testIndex, 3, MetricCosine); err != nil {
		t.Fatalf("second Create() error = %v", err)
	}

	results, err := store.Search(ctx, testIndex, []float32{1, 0, 0}, 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Search() returned %d results after re-create, want 1", len(results))
	}
}

func TestInsert_Overwrite(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 3)

	if err := store.Insert(ctx, testIndex, "doc:a:0", []float32{1, 0, 0}, "first"); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := store.Insert(ctx, testIndex, "doc:a:0", []float32{0, 1, 0}, "second"); err != nil {
		t.Fatalf("second Insert() error = %v", err)
	}

	results, err := store.Search(ctx, testIndex, []float32{0, 1, 0}, 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Search() returned %d results, want 1 (upsert must not duplicate)", len(results))
	}
	if results[0].Text != "second" {
		t.Errorf("payload = %q, want %q (second vector must be active)", results[0].Text, "second")
	}
	if results[0].Score < 0.999 {
		t.Errorf("score = %f, want ~1.0 for exact match on second vector", results[0].Score)
	}
}

func TestInsert_DimensionMismatch(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 3)

	err := store.Insert(ctx, testIndex, "doc:a:0", []float32{1, 0}, "short")
	var dimErr *DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("Insert() error = %v, want *DimensionError", err)
	}
	if dimErr.Want != 3 || dimErr.Got != 2 {
		t.Errorf("DimensionError = {Want:%d Got:%d}, want {Want:3 Got:2}", dimErr.Want, dimErr.Got)
	}
}

func TestSearch_UnknownIndex(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Search(context.Background(), "missing", []float32{1}, 5)
	if !errors.Is(err, ErrIndexNotFound) {
		t.Errorf("Search() error = %v, want ErrIndexNotFound", err)
	}
}

func TestSearch_RankingAndLimit(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 2)

	entries := []struct {
		key    string
		vector []float32
	}{
		{"doc:a:0", []float32{1, 0}},
		{"doc:a:1", []float32{0.9, 0.1}},
		{"doc:a:2", []float32{0, 1}},
	}
	for _, e := range entries {
		if err := store.Insert(ctx, testIndex, e.key, e.vector, e.key); err != nil {
			t.Fatalf("Insert(%s) error = %v", e.key, err)
		}
	}

	results, err := store.Search(ctx, testIndex, []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Search() returned %d results, want 2", len(results))
	}
	if results[0].Key != "doc:a:0" || results[1].Key != "doc:a:1" {
		t.Errorf("ranking = [%s, %s], want [doc:a:0, doc:a:1]", results[0].Key, results[1].Key)
	}
	if results[0].Score < results[1].Score {
		t.Errorf("scores not descending: %f < %f", results[0].Score, results[1].Score)
	}
}

func TestSearch_FewerEntriesThanK(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 2)

	if err := store.Insert(ctx, testIndex, "doc:a:0", []float32{1, 0}, "only"); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	results, err := store.Search(ctx, testIndex, []float32{1, 0}, 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Search() returned %d results, want 1", len(results))
	}
}

func TestSearch_Deterministic(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 2)

	// Identical vectors: ties must resolve by insertion order.
	for _, key := range []string{"doc:b:0", "doc:a:0", "doc:c:0"} {
		if err := store.Insert(ctx, testIndex, key, []float32{1, 1}, key); err != nil {
			t.Fatalf("Insert(%s) error = %v", key, err)
		}
	}

	first, err := store.Search(ctx, testIndex, []float32{1, 1}, 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	for run := 0; run < 5; run++ {
		again, err := store.Search(ctx, testIndex, []float32{1, 1}, 3)
		if err != nil {
			t.Fatalf("repeat Search() error = %v", err)
		}
		for i := range first {
			if again[i].Key != first[i].Key {
				t.Fatalf("run %d: result[%d] = %s, want %s", run, i, again[i].Key, first[i].Key)
			}
		}
	}

	want := []string{"doc:b:0", "doc:a:0", "doc:c:0"}
	for i, key := range want {
		if first[i].Key != key {
			t.Errorf("tie-break order[%d] = %s, want %s", i, first[i].Key, key)
		}
	}
}

func TestReset_EmptiesIndexAndAcceptsInserts(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 2)

	for i, key := range []string{"doc:a:0", "doc:a:1", "doc:a:2"} {
		if err := store.Insert(ctx, testIndex, key, []float32{float32(i), 1}, key); err != nil {
			t.Fatalf("Insert(%s) error = %v", key, err)
		}
	}

	if err := store.Reset(ctx, testIndex); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	results, err := store.Search(ctx, testIndex, []float32{1, 1}, 5)
	if err != nil {
		t.Fatalf("Search() after reset error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search() after reset returned %d results, want 0", len(results))
	}

	// Index must still accept inserts with the prior schema.
	if err := store.Insert(ctx, testIndex, "doc:b:0", []float32{1, 0}, "fresh"); err != nil {
		t.Fatalf("Insert() after reset error = %v", err)
	}
	results, err = store.Search(ctx, testIndex, []float32{1, 0}, 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].Text != "fresh" {
		t.Errorf("post-reset search = %+v, want single 'fresh' entry", results)
	}
}

func TestReset_UnknownIndexIsNoError(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Reset(context.Background(), "missing"); err != nil {
		t.Errorf("Reset() on unknown index error = %v, want nil", err)
	}
}

func TestDeleteByPrefix(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 2)

	keys := []string{"doc:a:0", "doc:a:1", "doc:b:0"}
	for _, key := range keys {
		if err := store.Insert(ctx, testIndex, key, []float32{1, 0}, key); err != nil {
			t.Fatalf("Insert(%s) error = %v", key, err)
		}
	}

	if err := store.DeleteByPrefix(ctx, "doc:a:"); err != nil {
		t.Fatalf("DeleteByPrefix() error = %v", err)
	}

	results, err := store.Search(ctx, testIndex, []float32{1, 0}, 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].Key != "doc:b:0" {
		t.Errorf("after prefix delete results = %+v, want only doc:b:0", results)
	}
}
