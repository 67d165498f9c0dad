// Package objectstore persists schema-tagged JSON records (ZGW objects).
package objectstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"simxml_zgw_backend/platform/apperr"
)

const recordNotFoundMessage = "object not found"

// CodeUniqueViolation marks a Save rejected by a uniqueness constraint.
const CodeUniqueViolation = "unique_violation"

// Record is a stored object of a given schema.
type Record struct {
	ID        uuid.UUID
	Schema    string
	Data      json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is the durable object store.
type Store interface {
	// Save inserts rec, or overwrites the data of an existing record with the
	// same ID. A nil ID is replaced by a fresh one.
	Save(ctx context.Context, rec Record) (Record, error)
	// Find loads a record by schema and ID. Returns an apperr NotFound when
	// absent.
	Find(ctx context.Context, schema string, id uuid.UUID) (Record, error)
}

// NotFound builds the error returned by Find for an absent record.
func NotFound(schema string, id uuid.UUID) error {
	return apperr.NotFound(recordNotFoundMessage).
		WithDetails(map[string]string{"schema": schema, "id": id.String()})
}

// IsNotFound reports whether err marks an absent record.
func IsNotFound(err error) bool {
	return apperr.Is(err, apperr.KindNotFound)
}
