package searchindex

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"simxml_zgw_backend/internal/objectstore"
)

type entry struct {
	schema string
	seq    int64
	fields map[string]string
}

// Memory is an in-process Index. In deferred mode indexed records only
// become searchable after Flush, which models a lagging external index.
type Memory struct {
	mu       sync.RWMutex
	entries  map[uuid.UUID]entry
	seq      int64
	deferred bool
	pending  []objectstore.Record
}

// MemoryOption configures a Memory index.
type MemoryOption func(*Memory)

// WithDeferredVisibility makes writes invisible until Flush.
func WithDeferredVisibility() MemoryOption {
	return func(m *Memory) { m.deferred = true }
}

// NewMemory creates an empty in-memory index.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{entries: make(map[uuid.UUID]entry)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var _ Index = (*Memory)(nil)

func (m *Memory) Index(_ context.Context, rec objectstore.Record) error {
	fields, err := Fields(rec.Data)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.deferred {
		m.pending = append(m.pending, rec)
		return nil
	}
	m.apply(rec.ID, rec.Schema, fields)
	return nil
}

// Flush makes all pending writes visible.
func (m *Memory) Flush() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rec := range m.pending {
		fields, err := Fields(rec.Data)
		if err != nil {
			continue
		}
		m.apply(rec.ID, rec.Schema, fields)
	}
	m.pending = nil
}

func (m *Memory) apply(id uuid.UUID, schema string, fields map[string]string) {
	e, ok := m.entries[id]
	if !ok {
		m.seq++
		e = entry{schema: schema, seq: m.seq}
	}
	e.fields = fields
	m.entries[id] = e
}

func (m *Memory) Search(_ context.Context, schema string, filter map[string]string) ([]uuid.UUID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type hit struct {
		id  uuid.UUID
		seq int64
	}
	hits := make([]hit, 0)
	for id, e := range m.entries {
		if e.schema != schema || !matches(e.fields, filter) {
			continue
		}
		hits = append(hits, hit{id: id, seq: e.seq})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].seq < hits[j].seq })

	out := make([]uuid.UUID, len(hits))
	for i, h := range hits {
		out[i] = h.id
	}
	return out, nil
}

func matches(fields, filter map[string]string) bool {
	for key, want := range filter {
		got, ok := fields[key]
		if !ok || got != want {
			return false
		}
	}
	return true
}
