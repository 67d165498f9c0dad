package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"simxml_zgw_backend/internal/objectstore"
	"simxml_zgw_backend/internal/searchindex"
	"simxml_zgw_backend/internal/zaak"
	"simxml_zgw_backend/platform/apperr"
	"simxml_zgw_backend/platform/logger"
)

// searchIndex aliases the interface so the embedded field name does not
// collide with its Index method.
type searchIndex = searchindex.Index

type failingIndex struct{ searchIndex }

func (failingIndex) Search(context.Context, string, map[string]string) ([]uuid.UUID, error) {
	return nil, errors.New("index down")
}

func TestResolveOrCreateCreatesOnceThenFinds(t *testing.T) {
	ctx := context.Background()
	store := objectstore.NewMemory()
	r := New(store, searchindex.NewMemory(), logger.Discard())

	filter := map[string]string{"identificatie": "T1"}
	build := func() zaak.ZaakType { return zaak.ZaakType{Identificatie: "T1"} }

	first, err := ResolveOrCreate(ctx, r, zaak.SchemaZaakType, filter, build)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	if !first.Created {
		t.Fatalf("expected first call to create")
	}

	second, err := ResolveOrCreate(ctx, r, zaak.SchemaZaakType, filter, build)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if second.Created || second.ID() != first.ID() {
		t.Fatalf("expected second call to find %s, got %+v", first.ID(), second)
	}
	if second.Value.Identificatie != "T1" {
		t.Fatalf("expected decoded value, got %+v", second.Value)
	}
	if n := len(store.List(zaak.SchemaZaakType)); n != 1 {
		t.Fatalf("expected 1 stored zaaktype, got %d", n)
	}
}

func TestResolveSkipsStaleIndexHits(t *testing.T) {
	ctx := context.Background()
	index := searchindex.NewMemory()
	r := New(objectstore.NewMemory(), index, logger.Discard())

	stale := objectstore.Record{ID: uuid.New(), Schema: zaak.SchemaZaak, Data: []byte(`{"identificatie":"Z-1"}`)}
	if err := index.Index(ctx, stale); err != nil {
		t.Fatalf("index: %v", err)
	}

	_, found, err := r.Resolve(ctx, zaak.SchemaZaak, map[string]string{"identificatie": "Z-1"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if found {
		t.Fatalf("expected stale hit to be skipped")
	}
}

func TestResolveWrapsIndexFailure(t *testing.T) {
	r := New(objectstore.NewMemory(), failingIndex{}, logger.Discard())

	_, _, err := r.Resolve(context.Background(), zaak.SchemaZaak, map[string]string{"identificatie": "Z"})
	if !apperr.HasCode(err, zaak.CodeStorageFailure) {
		t.Fatalf("expected storage failure, got %v", err)
	}
	if apperr.GetKind(err) != apperr.KindInternal {
		t.Fatalf("expected internal kind, got %v", apperr.GetKind(err))
	}
}

func TestUpdateReindexes(t *testing.T) {
	ctx := context.Background()
	r := New(objectstore.NewMemory(), searchindex.NewMemory(), logger.Discard())

	rec, err := r.CreateAndPersist(ctx, zaak.SchemaInformatieObject, uuid.Nil, zaak.InformatieObject{Identificatie: "D-1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := r.Update(ctx, rec, zaak.InformatieObject{Identificatie: "Z-1-D-1"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, found, err := r.Resolve(ctx, zaak.SchemaInformatieObject, map[string]string{"identificatie": "Z-1-D-1"})
	if err != nil || !found || got.ID != rec.ID {
		t.Fatalf("expected renamed record, found=%v err=%v", found, err)
	}
	if _, found, _ := r.Resolve(ctx, zaak.SchemaInformatieObject, map[string]string{"identificatie": "D-1"}); found {
		t.Fatalf("expected old identifier to be unresolvable")
	}
}
