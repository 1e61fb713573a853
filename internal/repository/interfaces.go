package repository

import (
	"context"
	"time"

	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/geopark-ops/guidelog/internal/sheet"
)

// Query selects one month of rows, optionally narrowed to an island and a
// post. A zero Year or Month matches every row.
type Query struct {
	Year   int
	Month  time.Month
	Island string
	Post   string
}

func (q Query) filter() sheet.Filter {
	return sheet.Filter{Year: q.Year, Month: q.Month, Island: q.Island, Post: q.Post}
}

// Listing is a decoded read. Skipped counts rows that could not be decoded.
type Listing[T any] struct {
	Items   []T
	Skipped int
}

// ScheduleRepo stores planned entries, one per (date, person, post).
type ScheduleRepo interface {
	Upsert(ctx context.Context, entries []domain.ScheduleEntry) (sheet.UpsertStats, error)
	ListMonth(ctx context.Context, q Query) (Listing[domain.ScheduleEntry], error)
	Delete(ctx context.Context, keys []domain.EntryKey) (int, error)
}

// ActivityRepo stores actual-work records, one per (date, person, post).
type ActivityRepo interface {
	Upsert(ctx context.Context, logs []domain.ActivityLogEntry) (sheet.UpsertStats, error)
	ListMonth(ctx context.Context, q Query) (Listing[domain.ActivityLogEntry], error)
	ListByPerson(ctx context.Context, person string, q Query) (Listing[domain.ActivityLogEntry], error)
	SetStatus(ctx context.Context, q Query, from, to domain.LogStatus) (int, error)
}

type RosterRepo interface {
	Upsert(ctx context.Context, guides []domain.Guide) (sheet.UpsertStats, error)
	List(ctx context.Context, island string) ([]domain.Guide, error)
	Get(ctx context.Context, name string) (*domain.Guide, error)
}
