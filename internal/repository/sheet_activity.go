package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/geopark-ops/guidelog/internal/sheet"
	"github.com/shopspring/decimal"
)

// SheetActivityRepo implements ActivityRepo on the activityLog table.
type SheetActivityRepo struct {
	store *sheet.Store
}

func NewSheetActivityRepo(store *sheet.Store) *SheetActivityRepo {
	return &SheetActivityRepo{store: store}
}

func (r *SheetActivityRepo) Upsert(ctx context.Context, logs []domain.ActivityLogEntry) (sheet.UpsertStats, error) {
	rows := make([]sheet.Row, 0, len(logs))
	for i := range logs {
		if err := logs[i].Validate(); err != nil {
			return sheet.UpsertStats{}, err
		}
		rows = append(rows, encodeActivityLog(&logs[i]))
	}
	stats, err := r.store.Upsert(ctx, ActivitySchema, rows)
	if err != nil {
		return sheet.UpsertStats{}, fmt.Errorf("saving activity logs: %w", err)
	}
	return stats, nil
}

func (r *SheetActivityRepo) ListMonth(ctx context.Context, q Query) (Listing[domain.ActivityLogEntry], error) {
	return r.list(ctx, q, func(domain.ActivityLogEntry) bool { return true })
}

func (r *SheetActivityRepo) ListByPerson(ctx context.Context, person string, q Query) (Listing[domain.ActivityLogEntry], error) {
	return r.list(ctx, q, func(l domain.ActivityLogEntry) bool { return l.Person == person })
}

func (r *SheetActivityRepo) list(ctx context.Context, q Query, keep func(domain.ActivityLogEntry) bool) (Listing[domain.ActivityLogEntry], error) {
	res := r.store.LoadFiltered(ctx, ActivitySchema, q.filter())
	if !res.OK() {
		return Listing[domain.ActivityLogEntry]{}, fmt.Errorf("loading activity logs: %w", res.Err)
	}
	out := Listing[domain.ActivityLogEntry]{Skipped: res.Skipped}
	for _, row := range res.Rows {
		l, ok := decodeActivityLog(row)
		if !ok {
			out.Skipped++
			continue
		}
		if keep(l) {
			out.Items = append(out.Items, l)
		}
	}
	return out, nil
}

// SetStatus moves every row matching q whose status is from to status to,
// in place. It returns the number of rows changed.
func (r *SheetActivityRepo) SetStatus(ctx context.Context, q Query, from, to domain.LogStatus) (int, error) {
	f := q.filter()
	match := func(row sheet.Row) bool {
		ok, _ := f.Match(ActivitySchema, row)
		if !ok {
			return false
		}
		st, err := domain.ParseLogStatus(cell(ActivitySchema, row, "status"))
		return err == nil && st == from
	}
	update := func(row sheet.Row) sheet.Row {
		set(ActivitySchema, row, "status", string(to))
		return row
	}
	n, err := r.store.UpdateWhere(ctx, ActivitySchema, match, update)
	if err != nil {
		return 0, fmt.Errorf("updating activity log status: %w", err)
	}
	return n, nil
}

func encodeActivityLog(l *domain.ActivityLogEntry) sheet.Row {
	s := ActivitySchema
	row := make(sheet.Row, s.Width())
	set(s, row, "date", domain.FormatDate(l.Date))
	set(s, row, "island", l.Island)
	set(s, row, "post", l.Post)
	set(s, row, "person", l.Person)
	set(s, row, "hours", l.Hours.String())
	set(s, row, "visitors", strconv.Itoa(l.Visitors))
	set(s, row, "listeners", strconv.Itoa(l.Listeners))
	set(s, row, "narrationCount", strconv.Itoa(l.NarrationCount))
	set(s, row, "note", l.Note())
	set(s, row, "timestamp", formatTimestamp(l.Timestamp))
	set(s, row, "status", string(l.Status))
	return row
}

// decodeActivityLog treats unreadable hours as zero, which reconciliation
// reads as no activity.
func decodeActivityLog(row sheet.Row) (domain.ActivityLogEntry, bool) {
	s := ActivitySchema
	date, ok := s.DateOf(row)
	if !ok {
		return domain.ActivityLogEntry{}, false
	}
	l := domain.ActivityLogEntry{
		Date:           date,
		Island:         cell(s, row, "island"),
		Post:           cell(s, row, "post"),
		Person:         cell(s, row, "person"),
		Visitors:       atoi(cell(s, row, "visitors")),
		Listeners:      atoi(cell(s, row, "listeners")),
		NarrationCount: atoi(cell(s, row, "narrationCount")),
		Tags:           domain.ParseTags(cell(s, row, "note")),
		Timestamp:      parseTimestamp(cell(s, row, "timestamp")),
	}
	if l.Person == "" || l.Post == "" {
		return domain.ActivityLogEntry{}, false
	}
	if h, err := decimal.NewFromString(cell(s, row, "hours")); err == nil {
		l.Hours = h
	}
	status, err := domain.ParseLogStatus(cell(s, row, "status"))
	if err != nil {
		status = domain.LogPendingReview
	}
	l.Status = status
	return l, true
}
