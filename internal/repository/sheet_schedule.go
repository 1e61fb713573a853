package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/geopark-ops/guidelog/internal/sheet"
)

// SheetScheduleRepo implements ScheduleRepo on the schedule table.
type SheetScheduleRepo struct {
	store *sheet.Store
}

func NewSheetScheduleRepo(store *sheet.Store) *SheetScheduleRepo {
	return &SheetScheduleRepo{store: store}
}

func (r *SheetScheduleRepo) Upsert(ctx context.Context, entries []domain.ScheduleEntry) (sheet.UpsertStats, error) {
	rows := make([]sheet.Row, 0, len(entries))
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return sheet.UpsertStats{}, err
		}
		rows = append(rows, encodeScheduleEntry(&entries[i]))
	}
	stats, err := r.store.Upsert(ctx, ScheduleSchema, rows)
	if err != nil {
		return sheet.UpsertStats{}, fmt.Errorf("saving schedule: %w", err)
	}
	return stats, nil
}

func (r *SheetScheduleRepo) ListMonth(ctx context.Context, q Query) (Listing[domain.ScheduleEntry], error) {
	res := r.store.LoadFiltered(ctx, ScheduleSchema, q.filter())
	if !res.OK() {
		return Listing[domain.ScheduleEntry]{}, fmt.Errorf("loading schedule: %w", res.Err)
	}
	out := Listing[domain.ScheduleEntry]{Skipped: res.Skipped}
	for _, row := range res.Rows {
		e, ok := decodeScheduleEntry(row)
		if !ok {
			out.Skipped++
			continue
		}
		out.Items = append(out.Items, e)
	}
	return out, nil
}

// Delete removes entries by exact key and returns how many rows went away.
func (r *SheetScheduleRepo) Delete(ctx context.Context, keys []domain.EntryKey) (int, error) {
	ks := make([]string, len(keys))
	for i, k := range keys {
		ks[i] = keyString(ScheduleSchema, k)
	}
	n, err := r.store.DeleteKeys(ctx, ScheduleSchema, ks)
	if err != nil {
		return 0, fmt.Errorf("cancelling schedule entries: %w", err)
	}
	return n, nil
}

func encodeScheduleEntry(e *domain.ScheduleEntry) sheet.Row {
	s := ScheduleSchema
	row := make(sheet.Row, s.Width())
	set(s, row, "year", strconv.Itoa(e.Date.Year()))
	set(s, row, "month", strconv.Itoa(int(e.Date.Month())))
	set(s, row, "date", domain.FormatDate(e.Date))
	set(s, row, "island", e.Island)
	set(s, row, "post", e.Post)
	set(s, row, "person", e.Person)
	set(s, row, "shiftDescriptor", e.Shift.Descriptor())
	set(s, row, "note", e.Note)
	set(s, row, "status", string(e.Status))
	set(s, row, "originalPerson", e.OriginalPerson)
	set(s, row, "updatedAt", formatTimestamp(e.UpdatedAt))
	return row
}

// decodeScheduleEntry accepts the 10-column shape written before updatedAt
// existed. Unknown statuses read as submitted.
func decodeScheduleEntry(row sheet.Row) (domain.ScheduleEntry, bool) {
	s := ScheduleSchema
	date, ok := s.DateOf(row)
	if !ok {
		return domain.ScheduleEntry{}, false
	}
	e := domain.ScheduleEntry{
		Date:           date,
		Island:         cell(s, row, "island"),
		Post:           cell(s, row, "post"),
		Person:         cell(s, row, "person"),
		Shift:          domain.ParseShift(row.Get(s.Index("shiftDescriptor"))),
		Note:           cell(s, row, "note"),
		OriginalPerson: cell(s, row, "originalPerson"),
		UpdatedAt:      parseTimestamp(cell(s, row, "updatedAt")),
	}
	if e.Person == "" || e.Post == "" {
		return domain.ScheduleEntry{}, false
	}
	status, err := domain.ParsePlanStatus(cell(s, row, "status"))
	if err != nil {
		status = domain.PlanSubmitted
	}
	e.Status = status
	return e, true
}
