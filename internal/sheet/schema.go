// Package sheet treats a spreadsheet-like table store as a database. Tables
// are header + positional rows with no native unique constraint, so the
// natural-key uniqueness invariant is enforced here: every write reads the
// whole table, replaces rows by key and writes the whole table back.
package sheet

import (
	"strconv"
	"strings"
	"time"

	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Row is one positional table row.
type Row []string

// Get returns the cell at i, or "" when the row is short.
func (r Row) Get(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

func (r Row) clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Schema describes a logical table: its canonical header, the natural key
// and the columns used for month/island/post filtering.
type Schema struct {
	Name         string
	Columns      []string
	Key          []string
	DateColumn   string
	IslandColumn string
	PostColumn   string
}

// Index returns the position of col in the header, or -1.
func (s Schema) Index(col string) int {
	for i, c := range s.Columns {
		if c == col {
			return i
		}
	}
	return -1
}

// Width is the number of canonical columns.
func (s Schema) Width() int { return len(s.Columns) }

// fit pads or trims r to the canonical width.
func (s Schema) fit(r Row) Row {
	out := make(Row, s.Width())
	copy(out, r)
	return out
}

// KeyOf computes the natural key of a row. Date columns are normalised to
// YYYY-MM-DD so "2025/3/1" and "2025-03-01" collide.
func (s Schema) KeyOf(r Row) string {
	parts := make([]string, len(s.Key))
	for i, col := range s.Key {
		v := strings.TrimSpace(r.Get(s.Index(col)))
		if col == s.DateColumn {
			if norm, ok := NormalizeDate(v); ok {
				v = norm
			}
		}
		parts[i] = v
	}
	return strings.Join(parts, "\x1f")
}

// KeyFor builds the key from values given in Key column order.
func (s Schema) KeyFor(values ...string) string {
	r := make(Row, s.Width())
	for i, col := range s.Key {
		if i < len(values) {
			if idx := s.Index(col); idx >= 0 {
				r[idx] = values[i]
			}
		}
	}
	return s.KeyOf(r)
}

// DateOf parses the row's date column.
func (s Schema) DateOf(r Row) (time.Time, bool) {
	norm, ok := NormalizeDate(r.Get(s.Index(s.DateColumn)))
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(domain.DateLayout, norm)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// NormalizeDate returns the canonical YYYY-MM-DD spelling of a date cell.
// Besides the text layouts domain.ParseDate knows, it accepts Excel serial
// day numbers, which is what a date typed by hand into the workbook reads
// back as.
func NormalizeDate(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	if t, err := domain.ParseDate(v); err == nil {
		return domain.FormatDate(t), true
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial >= 20000 && serial <= 80000 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return domain.FormatDate(t), true
		}
	}
	return "", false
}

// Filter selects rows of one month, optionally narrowed to an island and post.
type Filter struct {
	Year   int
	Month  time.Month
	Island string
	Post   string
}

// Match reports whether the row passes the filter. The second result is
// false when the row's date cannot be read at all.
func (f Filter) Match(s Schema, r Row) (bool, bool) {
	d, ok := s.DateOf(r)
	if !ok {
		return false, false
	}
	if f.Year != 0 && d.Year() != f.Year {
		return false, true
	}
	if f.Month != 0 && d.Month() != f.Month {
		return false, true
	}
	if f.Island != "" && s.IslandColumn != "" && strings.TrimSpace(r.Get(s.Index(s.IslandColumn))) != f.Island {
		return false, true
	}
	if f.Post != "" && s.PostColumn != "" && strings.TrimSpace(r.Get(s.Index(s.PostColumn))) != f.Post {
		return false, true
	}
	return true, true
}
