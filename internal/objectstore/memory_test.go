package objectstore

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestMemorySaveAssignsIDAndKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	rec, err := store.Save(ctx, Record{Schema: "s", Data: json.RawMessage(`{"a":1}`)})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if rec.ID == uuid.Nil {
		t.Fatalf("expected generated id")
	}

	rec.Data = json.RawMessage(`{"a":2}`)
	updated, err := store.Save(ctx, rec)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.CreatedAt.Equal(rec.CreatedAt) {
		t.Fatalf("created_at changed on update")
	}

	got, err := store.Find(ctx, "s", rec.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if string(got.Data) != `{"a":2}` {
		t.Fatalf("expected updated data, got %s", got.Data)
	}
	if n := len(store.List("s")); n != 1 {
		t.Fatalf("expected 1 record, got %d", n)
	}
}

func TestMemoryFindChecksSchema(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	rec, _ := store.Save(ctx, Record{Schema: "s", Data: json.RawMessage(`{}`)})
	if _, err := store.Find(ctx, "other", rec.ID); !IsNotFound(err) {
		t.Fatalf("expected not found for wrong schema, got %v", err)
	}
	if _, err := store.Find(ctx, "s", uuid.New()); !IsNotFound(err) {
		t.Fatalf("expected not found for unknown id, got %v", err)
	}
}
