package disruption

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/geopark-ops/guidelog/internal/sheet"
)

// FerryStatusSchema holds one row per (date, route) with the departures the
// timetable promised and the ones that actually sailed.
var FerryStatusSchema = sheet.Schema{
	Name:       "ferryStatus",
	Columns:    []string{"date", "route", "scheduledDepartures", "operatedDepartures"},
	Key:        []string{"date", "route"},
	DateColumn: "date",
}

type FerryStatus struct {
	Date      time.Time
	Route     string
	Scheduled int
	Operated  int
}

// Disrupted is true when fewer departures sailed than were scheduled.
func (s FerryStatus) Disrupted() bool { return s.Operated < s.Scheduled }

// SheetFeed reads ferry status rows from the table store.
type SheetFeed struct {
	store *sheet.Store
}

func NewSheetFeed(store *sheet.Store) *SheetFeed {
	return &SheetFeed{store: store}
}

// Record stores statuses, replacing earlier rows for the same date and route.
func (f *SheetFeed) Record(ctx context.Context, statuses ...FerryStatus) error {
	rows := make([]sheet.Row, 0, len(statuses))
	for _, s := range statuses {
		if s.Route == "" || s.Date.IsZero() {
			return fmt.Errorf("ferry status: date and route are required")
		}
		if s.Scheduled < 0 || s.Operated < 0 {
			return fmt.Errorf("ferry status: departures must not be negative")
		}
		rows = append(rows, sheet.Row{
			domain.FormatDate(s.Date), s.Route,
			strconv.Itoa(s.Scheduled), strconv.Itoa(s.Operated),
		})
	}
	if _, err := f.store.Upsert(ctx, FerryStatusSchema, rows); err != nil {
		return fmt.Errorf("recording ferry status: %w", err)
	}
	return nil
}

func (f *SheetFeed) Disruptions(ctx context.Context, route string, year int, month time.Month) (DaySet, error) {
	res := f.store.LoadFiltered(ctx, FerryStatusSchema, sheet.Filter{Year: year, Month: month})
	if !res.OK() {
		return nil, fmt.Errorf("loading ferry status: %w", res.Err)
	}
	out := DaySet{}
	for _, row := range res.Rows {
		d, ok := FerryStatusSchema.DateOf(row)
		if !ok {
			continue
		}
		s := FerryStatus{
			Date:      d,
			Route:     strings.TrimSpace(row.Get(1)),
			Scheduled: atoi(row.Get(2)),
			Operated:  atoi(row.Get(3)),
		}
		if route != "" && s.Route != route {
			continue
		}
		if s.Disrupted() {
			out.Add(s.Date)
		}
	}
	return out, nil
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
