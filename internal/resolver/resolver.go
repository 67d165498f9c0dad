// Package resolver finds existing records by field filter and creates,
// persists and indexes new ones.
package resolver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"simxml_zgw_backend/internal/objectstore"
	"simxml_zgw_backend/internal/searchindex"
	"simxml_zgw_backend/internal/zaak"
	"simxml_zgw_backend/platform/apperr"
	"simxml_zgw_backend/platform/logger"
)

const (
	opResolve = "resolver.Resolve"
	opCreate  = "resolver.CreateAndPersist"
	opUpdate  = "resolver.Update"
	opLoad    = "resolver.Load"
)

// Resolver is the entity resolver over an object store and search index.
type Resolver struct {
	store objectstore.Store
	index searchindex.Index
	log   *logger.Logger
}

// New creates a resolver.
func New(store objectstore.Store, index searchindex.Index, log *logger.Logger) *Resolver {
	return &Resolver{store: store, index: index, log: log}
}

// Resolve returns the first indexed record of schema whose fields equal
// filter. Index hits that no longer exist in the store are skipped.
func (r *Resolver) Resolve(ctx context.Context, schema string, filter map[string]string) (objectstore.Record, bool, error) {
	ids, err := r.index.Search(ctx, schema, filter)
	if err != nil {
		return objectstore.Record{}, false, zaak.StorageFailureError(opResolve, err)
	}

	for _, id := range ids {
		rec, err := r.store.Find(ctx, schema, id)
		if objectstore.IsNotFound(err) {
			r.log.Warn("search index hit missing from store", "schema", schema, "id", id)
			continue
		}
		if err != nil {
			return objectstore.Record{}, false, zaak.StorageFailureError(opResolve, err)
		}
		return rec, true, nil
	}
	return objectstore.Record{}, false, nil
}

// CreateAndPersist stores value as a new record of schema and indexes it
// before returning. A nil id gets a fresh one.
func (r *Resolver) CreateAndPersist(ctx context.Context, schema string, id uuid.UUID, value any) (objectstore.Record, error) {
	return r.save(ctx, opCreate, objectstore.Record{ID: id, Schema: schema}, value)
}

// Update overwrites the body of an existing record and reindexes it.
func (r *Resolver) Update(ctx context.Context, rec objectstore.Record, value any) (objectstore.Record, error) {
	return r.save(ctx, opUpdate, rec, value)
}

// Load finds a record by id. Absence is reported as an apperr NotFound.
func (r *Resolver) Load(ctx context.Context, schema string, id uuid.UUID) (objectstore.Record, error) {
	rec, err := r.store.Find(ctx, schema, id)
	if objectstore.IsNotFound(err) {
		return objectstore.Record{}, err
	}
	if err != nil {
		return objectstore.Record{}, zaak.StorageFailureError(opLoad, err)
	}
	return rec, nil
}

func (r *Resolver) save(ctx context.Context, op string, rec objectstore.Record, value any) (objectstore.Record, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return objectstore.Record{}, fmt.Errorf("encode %s: %w", rec.Schema, err)
	}
	rec.Data = data

	saved, err := r.store.Save(ctx, rec)
	if apperr.HasCode(err, objectstore.CodeUniqueViolation) {
		return objectstore.Record{}, err
	}
	if err != nil {
		return objectstore.Record{}, zaak.StorageFailureError(op, err)
	}
	if err := r.index.Index(ctx, saved); err != nil {
		return objectstore.Record{}, zaak.StorageFailureError(op, err)
	}
	return saved, nil
}

// Decode unmarshals a record body into T.
func Decode[T any](rec objectstore.Record) (T, error) {
	var out T
	if err := json.Unmarshal(rec.Data, &out); err != nil {
		return out, fmt.Errorf("decode %s %s: %w", rec.Schema, rec.ID, err)
	}
	return out, nil
}

// Resolved is a typed record returned by ResolveOrCreate.
type Resolved[T any] struct {
	Record  objectstore.Record
	Value   T
	Created bool
}

// ID returns the record identifier.
func (r Resolved[T]) ID() uuid.UUID { return r.Record.ID }

// ResolveOrCreate returns the existing record matching filter, or builds,
// persists and indexes a new one.
func ResolveOrCreate[T any](ctx context.Context, r *Resolver, schema string, filter map[string]string, build func() T) (Resolved[T], error) {
	rec, found, err := r.Resolve(ctx, schema, filter)
	if err != nil {
		return Resolved[T]{}, err
	}
	if found {
		value, err := Decode[T](rec)
		if err != nil {
			return Resolved[T]{}, err
		}
		return Resolved[T]{Record: rec, Value: value}, nil
	}

	value := build()
	rec, err = r.CreateAndPersist(ctx, schema, uuid.Nil, value)
	if err != nil {
		return Resolved[T]{}, err
	}
	return Resolved[T]{Record: rec, Value: value, Created: true}, nil
}
