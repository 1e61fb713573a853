package sheet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// UpsertStats summarises one Upsert call.
type UpsertStats struct {
	Replaced int
	Appended int
	Total    int
}

// LoadResult carries rows together with the read outcome, so callers can
// tell "no rows" apart from "could not read".
type LoadResult struct {
	Rows    []Row
	Skipped int
	Err     error
}

func (r LoadResult) OK() bool { return r.Err == nil }

// Unavailable reports whether the underlying table could not be read.
func (r LoadResult) Unavailable() bool { return r.Err != nil }

// Store is the upsert layer over a Backend. Writes to the same table are
// serialised so two read-modify-write cycles never interleave in-process.
type Store struct {
	backend Backend

	mu     sync.Mutex
	tables map[string]*sync.Mutex
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend, tables: make(map[string]*sync.Mutex)}
}

func (s *Store) lock(name string) func() {
	s.mu.Lock()
	m, ok := s.tables[name]
	if !ok {
		m = &sync.Mutex{}
		s.tables[name] = m
	}
	s.mu.Unlock()
	m.Lock()
	return m.Unlock
}

// read loads a table. A missing table reads as empty; any other failure is
// returned wrapped in ErrReadFailed.
func (s *Store) read(ctx context.Context, schema Schema) ([]Row, bool, error) {
	_, raw, err := s.backend.ReadTable(ctx, schema.Name)
	if errors.Is(err, ErrTableNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", ErrReadFailed, schema.Name, err)
	}
	rows := make([]Row, 0, len(raw))
	for _, r := range raw {
		if isBlank(r) {
			continue
		}
		rows = append(rows, Row(r))
	}
	return rows, true, nil
}

func (s *Store) write(ctx context.Context, schema Schema, rows []Row) error {
	raw := make([][]string, len(rows))
	for i, r := range rows {
		raw[i] = []string(r)
	}
	if err := s.backend.WriteTable(ctx, schema.Name, schema.Columns, raw); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFailed, schema.Name, err)
	}
	return nil
}

// Upsert writes rows into the table so that afterwards exactly one row
// exists per natural key. Existing rows sharing a key with an incoming row
// are dropped and the incoming rows are appended; all other rows are kept
// as they were. Within one batch the last row for a key wins.
//
// If the table cannot be read, nothing is written: blindly appending would
// create duplicate keys.
func (s *Store) Upsert(ctx context.Context, schema Schema, rows []Row) (UpsertStats, error) {
	unlock := s.lock(schema.Name)
	defer unlock()

	existing, _, err := s.read(ctx, schema)
	if err != nil {
		return UpsertStats{}, fmt.Errorf("upserting %s: %w", schema.Name, err)
	}

	incoming := dedupe(schema, rows)
	replace := make(map[string]bool, len(incoming))
	for _, r := range incoming {
		replace[schema.KeyOf(r)] = true
	}

	var stats UpsertStats
	seen := make(map[string]bool)
	out := make([]Row, 0, len(existing)+len(incoming))
	for _, r := range existing {
		k := schema.KeyOf(r)
		if replace[k] {
			seen[k] = true
			continue
		}
		out = append(out, r)
	}
	out = append(out, incoming...)
	stats.Replaced = len(seen)
	stats.Appended = len(incoming) - stats.Replaced
	stats.Total = len(out)

	if err := s.write(ctx, schema, out); err != nil {
		return UpsertStats{}, fmt.Errorf("upserting %s: %w", schema.Name, err)
	}
	return stats, nil
}

// dedupe fits rows to the schema, normalises the date column and keeps only
// the last row for each key, in first-seen order.
func dedupe(schema Schema, rows []Row) []Row {
	dateIdx := schema.Index(schema.DateColumn)
	pos := make(map[string]int, len(rows))
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		fitted := schema.fit(r)
		if dateIdx >= 0 {
			if norm, ok := NormalizeDate(fitted[dateIdx]); ok {
				fitted[dateIdx] = norm
			}
		}
		k := schema.KeyOf(fitted)
		if i, ok := pos[k]; ok {
			out[i] = fitted
			continue
		}
		pos[k] = len(out)
		out = append(out, fitted)
	}
	return out
}

// Load returns every row of the table.
func (s *Store) Load(ctx context.Context, schema Schema) LoadResult {
	rows, _, err := s.read(ctx, schema)
	if err != nil {
		return LoadResult{Err: err}
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = schema.fit(r)
	}
	return LoadResult{Rows: out}
}

// LoadFiltered returns rows matching f. Rows whose date cell cannot be
// parsed are counted in Skipped.
func (s *Store) LoadFiltered(ctx context.Context, schema Schema, f Filter) LoadResult {
	res := s.Load(ctx, schema)
	if !res.OK() {
		return res
	}
	out := res.Rows[:0:0]
	skipped := 0
	for _, r := range res.Rows {
		match, parsed := f.Match(schema, r)
		if !parsed {
			skipped++
			continue
		}
		if match {
			out = append(out, r)
		}
	}
	return LoadResult{Rows: out, Skipped: skipped}
}

// DeleteWhere removes rows for which match returns true and reports how many
// were removed. The table is not rewritten when nothing matches.
func (s *Store) DeleteWhere(ctx context.Context, schema Schema, match func(Row) bool) (int, error) {
	unlock := s.lock(schema.Name)
	defer unlock()

	existing, found, err := s.read(ctx, schema)
	if err != nil {
		return 0, fmt.Errorf("deleting from %s: %w", schema.Name, err)
	}
	if !found {
		return 0, nil
	}
	out := make([]Row, 0, len(existing))
	for _, r := range existing {
		if match(schema.fit(r)) {
			continue
		}
		out = append(out, r)
	}
	removed := len(existing) - len(out)
	if removed == 0 {
		return 0, nil
	}
	if err := s.write(ctx, schema, out); err != nil {
		return 0, fmt.Errorf("deleting from %s: %w", schema.Name, err)
	}
	return removed, nil
}

// DeleteKeys removes the rows with the given natural keys.
func (s *Store) DeleteKeys(ctx context.Context, schema Schema, keys []string) (int, error) {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return s.DeleteWhere(ctx, schema, func(r Row) bool { return set[schema.KeyOf(r)] })
}

// UpdateWhere rewrites rows in place. update receives a copy of each row
// that match accepted and returns its replacement; keys must not change.
func (s *Store) UpdateWhere(ctx context.Context, schema Schema, match func(Row) bool, update func(Row) Row) (int, error) {
	unlock := s.lock(schema.Name)
	defer unlock()

	existing, found, err := s.read(ctx, schema)
	if err != nil {
		return 0, fmt.Errorf("updating %s: %w", schema.Name, err)
	}
	if !found {
		return 0, nil
	}
	changed := 0
	out := make([]Row, len(existing))
	for i, r := range existing {
		fitted := schema.fit(r)
		if !match(fitted) {
			out[i] = r
			continue
		}
		next := schema.fit(update(fitted.clone()))
		if schema.KeyOf(next) != schema.KeyOf(fitted) {
			return 0, fmt.Errorf("updating %s: update changed key of row %d", schema.Name, i+2)
		}
		out[i] = next
		changed++
	}
	if changed == 0 {
		return 0, nil
	}
	if err := s.write(ctx, schema, out); err != nil {
		return 0, fmt.Errorf("updating %s: %w", schema.Name, err)
	}
	return changed, nil
}

func isBlank(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
