package searchindex

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"simxml_zgw_backend/internal/objectstore"
)

func newRedisIndex(t *testing.T) *Redis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client, "test")
}

func record(schema, body string) objectstore.Record {
	return objectstore.Record{ID: uuid.New(), Schema: schema, Data: json.RawMessage(body)}
}

func implementations(t *testing.T) map[string]Index {
	return map[string]Index{
		"memory": NewMemory(),
		"redis":  newRedisIndex(t),
	}
}

func TestSearchMatchesAllFilterFieldsInIndexOrder(t *testing.T) {
	for name, idx := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			first := record("eig", `{"naam":"kleur","zaaktype":"T1"}`)
			second := record("eig", `{"naam":"kleur","zaaktype":"T1","extra":3}`)
			other := record("eig", `{"naam":"kleur","zaaktype":"T2"}`)
			for _, rec := range []objectstore.Record{first, other, second} {
				if err := idx.Index(ctx, rec); err != nil {
					t.Fatalf("index: %v", err)
				}
			}

			hits, err := idx.Search(ctx, "eig", map[string]string{"naam": "kleur", "zaaktype": "T1"})
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if len(hits) != 2 || hits[0] != first.ID || hits[1] != second.ID {
				t.Fatalf("unexpected hits %v", hits)
			}
		})
	}
}

func TestSearchIsScopedBySchema(t *testing.T) {
	for name, idx := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := idx.Index(ctx, record("a", `{"identificatie":"X"}`)); err != nil {
				t.Fatalf("index: %v", err)
			}
			hits, err := idx.Search(ctx, "b", map[string]string{"identificatie": "X"})
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if len(hits) != 0 {
				t.Fatalf("expected no hits across schemas, got %v", hits)
			}
		})
	}
}

func TestReindexReplacesOldValues(t *testing.T) {
	for name, idx := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			rec := record("doc", `{"identificatie":"D-1"}`)
			if err := idx.Index(ctx, rec); err != nil {
				t.Fatalf("index: %v", err)
			}
			rec.Data = json.RawMessage(`{"identificatie":"Z-1-D-1"}`)
			if err := idx.Index(ctx, rec); err != nil {
				t.Fatalf("reindex: %v", err)
			}

			old, _ := idx.Search(ctx, "doc", map[string]string{"identificatie": "D-1"})
			if len(old) != 0 {
				t.Fatalf("expected old identifier to be gone, got %v", old)
			}
			renamed, _ := idx.Search(ctx, "doc", map[string]string{"identificatie": "Z-1-D-1"})
			if len(renamed) != 1 || renamed[0] != rec.ID {
				t.Fatalf("expected renamed hit, got %v", renamed)
			}
		})
	}
}

func TestEmptyFilterListsSchema(t *testing.T) {
	for name, idx := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			a := record("s", `{"n":1}`)
			b := record("s", `{"n":2}`)
			_ = idx.Index(ctx, a)
			_ = idx.Index(ctx, b)

			hits, err := idx.Search(ctx, "s", nil)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if len(hits) != 2 || hits[0] != a.ID || hits[1] != b.ID {
				t.Fatalf("unexpected hits %v", hits)
			}
		})
	}
}

func TestDeferredMemoryHidesWritesUntilFlush(t *testing.T) {
	ctx := context.Background()
	idx := NewMemory(WithDeferredVisibility())
	rec := record("s", `{"naam":"x"}`)
	_ = idx.Index(ctx, rec)

	if hits, _ := idx.Search(ctx, "s", map[string]string{"naam": "x"}); len(hits) != 0 {
		t.Fatalf("expected write to be invisible before flush")
	}
	idx.Flush()
	if hits, _ := idx.Search(ctx, "s", map[string]string{"naam": "x"}); len(hits) != 1 {
		t.Fatalf("expected write to be visible after flush")
	}
}

func TestFieldsSkipsNestedValues(t *testing.T) {
	fields, err := Fields(json.RawMessage(`{"a":"x","b":2,"c":true,"d":{"e":1},"f":[1],"g":null}`))
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if len(fields) != 3 || fields["a"] != "x" || fields["b"] != "2" || fields["c"] != "true" {
		t.Fatalf("unexpected fields %v", fields)
	}
}
