package sheet

import (
	"context"
	"errors"
)

var (
	// ErrTableNotFound means the backing table has never been written.
	ErrTableNotFound = errors.New("table not found")

	// ErrReadFailed wraps any other failure to read a table. An empty result
	// caused by it says nothing about whether data exists.
	ErrReadFailed = errors.New("table read failed")

	// ErrWriteFailed wraps failures of the bulk table write.
	ErrWriteFailed = errors.New("table write failed")
)

// Backend stores whole tables. WriteTable must replace the table atomically:
// a concurrent reader sees either the old table or the new one, never a mix.
// WriteTable creates the table when it does not exist yet.
type Backend interface {
	ReadTable(ctx context.Context, name string) (header []string, rows [][]string, err error)
	WriteTable(ctx context.Context, name string, header []string, rows [][]string) error
}
