package testutil

import (
	"context"
	"sync/atomic"

	"github.com/geopark-ops/guidelog/internal/sheet"
)

// FailingBackend wraps a sheet.Backend and injects errors. ReadErr applies
// to every read, WriteErr to every write. Counters record how often each
// side was reached.
type FailingBackend struct {
	sheet.Backend
	ReadErr  error
	WriteErr error

	Reads  atomic.Int32
	Writes atomic.Int32
}

func NewFailingBackend(inner sheet.Backend) *FailingBackend {
	return &FailingBackend{Backend: inner}
}

func (f *FailingBackend) ReadTable(ctx context.Context, name string) ([]string, [][]string, error) {
	f.Reads.Add(1)
	if f.ReadErr != nil {
		return nil, nil, f.ReadErr
	}
	return f.Backend.ReadTable(ctx, name)
}

func (f *FailingBackend) WriteTable(ctx context.Context, name string, header []string, rows [][]string) error {
	f.Writes.Add(1)
	if f.WriteErr != nil {
		return f.WriteErr
	}
	return f.Backend.WriteTable(ctx, name, header, rows)
}
