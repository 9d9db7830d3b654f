package history

import (
	"context"
	"sync"

	"github.com/helpware/faqdex/internal/domain"
)

// Memory is an in-process history backend. It keeps the most recent
// records up to a fixed cap and is safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	records []domain.Record
	cap     int
}

// NewMemory creates an in-memory history bounded to retain records.
// Zero or negative retain means DefaultCap.
func NewMemory(retain int) *Memory {
	if retain <= 0 {
		retain = DefaultCap
	}
	return &Memory{cap: retain}
}

// Append logs one interaction, evicting the oldest past the cap.
func (m *Memory) Append(_ context.Context, rec domain.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append(m.records, rec)
	if len(m.records) > m.cap {
		m.records = m.records[len(m.records)-m.cap:]
	}
	return nil
}

// List returns retained records in chronological order. A positive
// limit keeps only the most recent records; zero or negative means all.
func (m *Memory) List(_ context.Context, limit int) ([]domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := m.records
	if limit > 0 && limit < len(records) {
		records = records[len(records)-limit:]
	}
	out := make([]domain.Record, len(records))
	copy(out, records)
	return out, nil
}

// Count returns the number of retained records.
func (m *Memory) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records), nil
}

// Clear removes all retained records.
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
	return nil
}
