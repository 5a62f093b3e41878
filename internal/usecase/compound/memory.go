package compound

import (
	"context"
	"fmt"

	"github.com/eslsoft/ordasafn/internal/entity"
)

// MemoryLookup serves entries held in memory, keyed by identity.
type MemoryLookup struct {
	entries map[string]*entity.Entry
}

// NewMemoryLookup indexes entries by their identity.
func NewMemoryLookup(entries ...*entity.Entry) *MemoryLookup {
	m := &MemoryLookup{entries: make(map[string]*entity.Entry, len(entries))}
	for _, e := range entries {
		m.Add(e)
	}
	return m
}

// Add indexes e, replacing any entry with the same identity.
func (m *MemoryLookup) Add(e *entity.Entry) {
	m.entries[identityOf(e)] = e
}

// GetByIdentity implements Lookup.
func (m *MemoryLookup) GetByIdentity(_ context.Context, identity string) (*entity.Entry, error) {
	e, ok := m.entries[identity]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrEntryNotFound, identity)
	}
	return e, nil
}

// Len reports the number of indexed entries.
func (m *MemoryLookup) Len() int {
	return len(m.entries)
}
