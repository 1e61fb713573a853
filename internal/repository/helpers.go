package repository

import (
	"strconv"
	"strings"
	"time"

	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/geopark-ops/guidelog/internal/sheet"
)

// timestampLayouts covers RFC3339 and the "2006-01-02 15:04:05.999999" form
// older rows were written with.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// parseTimestamp returns the zero time for empty or unreadable cells.
func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// atoi reads a count cell. Blank or malformed cells count as zero, and
// "12.0" style floats written by spreadsheets are truncated.
func atoi(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func cell(s sheet.Schema, r sheet.Row, col string) string {
	return strings.TrimSpace(r.Get(s.Index(col)))
}

func set(s sheet.Schema, r sheet.Row, col, val string) {
	if i := s.Index(col); i >= 0 && i < len(r) {
		r[i] = val
	}
}

func keyString(s sheet.Schema, k domain.EntryKey) string {
	return s.KeyFor(domain.FormatDate(k.Date), k.Person, k.Post)
}
