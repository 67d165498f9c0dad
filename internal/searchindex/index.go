// Package searchindex is the secondary exact-match index used to find
// records by field values.
package searchindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"simxml_zgw_backend/internal/objectstore"
)

// Index finds records by exact field equality. Hits are returned in the
// order the records were first indexed.
type Index interface {
	Index(ctx context.Context, rec objectstore.Record) error
	Search(ctx context.Context, schema string, filter map[string]string) ([]uuid.UUID, error)
}

// Fields extracts the indexable top-level scalar fields of a record body.
// Nested objects, arrays and nulls are not indexed.
func Fields(data json.RawMessage) (map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("decode record body: %w", err)
	}

	fields := make(map[string]string, len(body))
	for key, value := range body {
		switch v := value.(type) {
		case string:
			fields[key] = v
		case json.Number:
			fields[key] = v.String()
		case bool:
			if v {
				fields[key] = "true"
			} else {
				fields[key] = "false"
			}
		}
	}
	return fields, nil
}
