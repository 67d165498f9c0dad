package objectstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Store.
type Memory struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Record
	order   []uuid.UUID
	now     func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		records: make(map[uuid.UUID]Record),
		now:     time.Now,
	}
}

var _ Store = (*Memory)(nil)

func (m *Memory) Save(_ context.Context, rec Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	now := m.now().UTC()
	if existing, ok := m.records[rec.ID]; ok {
		rec.CreatedAt = existing.CreatedAt
	} else {
		rec.CreatedAt = now
		m.order = append(m.order, rec.ID)
	}
	rec.UpdatedAt = now
	rec.Data = append([]byte(nil), rec.Data...)
	m.records[rec.ID] = rec
	return rec, nil
}

func (m *Memory) Find(_ context.Context, schema string, id uuid.UUID) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok || rec.Schema != schema {
		return Record{}, NotFound(schema, id)
	}
	return rec, nil
}

// List returns every record of schema in insertion order.
func (m *Memory) List(schema string) []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Record, 0)
	for _, id := range m.order {
		if rec := m.records[id]; rec.Schema == schema {
			out = append(out, rec)
		}
	}
	return out
}
