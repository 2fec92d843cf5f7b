// ABOUTME: Tests for the in-process conversation store
// ABOUTME: Verifies empty reads, append ordering, overwrite, and copy isolation

package convo

import (
	"context"
	"testing"
	"time"

	"github.com/minwoo/ragserve/internal/models"
)

func TestGet_UnseenKey(t *testing.T) {
	store := NewMemoryStore()

	msgs, err := store.Get(context.Background(), "chat:none")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("Get() on unseen key returned %d messages, want 0", len(msgs))
	}
}

func TestAppend_PreservesOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	key := "chat:order"

	want := []models.Message{
		models.UserMessage("first"),
		models.AssistantMessage("second"),
		models.UserMessage("third"),
	}
	for _, msg := range want {
		if err := store.Append(ctx, key, msg); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Get() returned %d messages, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestOverwrite_ReplacesHistory(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	key := "chat:replace"

	if err := store.Append(ctx, key, models.UserMessage("old")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	want := []models.Message{
		models.UserMessage("question"),
		models.AssistantMessage("answer"),
	}
	if err := store.Overwrite(ctx, key, want); err != nil {
		t.Fatalf("Overwrite() error = %v", err)
	}

	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Get() after overwrite = %+v, want %+v", got, want)
	}
}

func TestStore_CopyIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	key := "chat:isolated"

	input := []models.Message{models.UserMessage("intact")}
	if err := store.Overwrite(ctx, key, input); err != nil {
		t.Fatalf("Overwrite() error = %v", err)
	}

	// Mutating the caller's slice must not affect stored state.
	input[0].Content = "mangled"

	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got[0].Content != "intact" {
		t.Errorf("stored content = %q, want %q", got[0].Content, "intact")
	}

	// Mutating a returned slice must not affect stored state either.
	got[0].Content = "mangled"
	again, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("second Get() error = %v", err)
	}
	if again[0].Content != "intact" {
		t.Errorf("stored content after reader mutation = %q, want %q", again[0].Content, "intact")
	}
}

func TestExpire_NoOp(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Expire(context.Background(), "chat:any", time.Minute); err != nil {
		t.Errorf("Expire() error = %v, want nil", err)
	}
}
