package store

import (
	"context"
	"slices"
	"sync"
)

// MemoryProgressRepo is a ProgressRepo kept in process memory.
// Records are copied on the way in and out.
type MemoryProgressRepo struct {
	mu      sync.Mutex
	records map[string]*ProgressRecord
}

// NewMemoryProgressRepo creates an empty in-memory repo.
func NewMemoryProgressRepo() *MemoryProgressRepo {
	return &MemoryProgressRepo{records: make(map[string]*ProgressRecord)}
}

func (m *MemoryProgressRepo) Get(_ context.Context, key string) (*ProgressRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[key]
	if !ok {
		return nil, nil
	}
	return cloneRecord(rec), nil
}

func (m *MemoryProgressRepo) Put(_ context.Context, rec *ProgressRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.OperationKey] = cloneRecord(rec)
	return nil
}

func (m *MemoryProgressRepo) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

func (m *MemoryProgressRepo) DeleteAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.records)
	return nil
}

func (m *MemoryProgressRepo) All(_ context.Context) ([]*ProgressRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.records))
	for k := range m.records {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]*ProgressRecord, 0, len(keys))
	for _, k := range keys {
		out = append(out, cloneRecord(m.records[k]))
	}
	return out, nil
}

func cloneRecord(rec *ProgressRecord) *ProgressRecord {
	c := *rec
	c.History = slices.Clone(rec.History)
	return &c
}
