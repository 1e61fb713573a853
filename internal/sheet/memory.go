package sheet

import (
	"context"
	"sync"
)

type memTable struct {
	header []string
	rows   [][]string
}

// MemoryBackend keeps tables in process memory. Used by tests and by the
// "memory" store backend.
type MemoryBackend struct {
	mu     sync.RWMutex
	tables map[string]memTable
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{tables: make(map[string]memTable)}
}

func (m *MemoryBackend) ReadTable(_ context.Context, name string) ([]string, [][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tables[name]
	if !ok {
		return nil, nil, ErrTableNotFound
	}
	return copyCells(t.header), copyRows(t.rows), nil
}

func (m *MemoryBackend) WriteTable(_ context.Context, name string, header []string, rows [][]string) error {
	t := memTable{header: copyCells(header), rows: copyRows(rows)}
	m.mu.Lock()
	m.tables[name] = t
	m.mu.Unlock()
	return nil
}

// Seed installs a table verbatim, bypassing the upsert layer. Tests use it to
// stage legacy or hand-edited content.
func (m *MemoryBackend) Seed(name string, header []string, rows ...[]string) {
	_ = m.WriteTable(context.Background(), name, header, rows)
}

func copyCells(c []string) []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c))
	copy(out, c)
	return out
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = copyCells(r)
	}
	return out
}
