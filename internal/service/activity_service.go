package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/geopark-ops/guidelog/internal/app"
	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/geopark-ops/guidelog/internal/repository"
	"github.com/google/uuid"
)

type activityService struct {
	logs      repository.ActivityRepo
	locations domain.Locations
	observer  UseCaseObserver
	now       func() time.Time
}

func NewActivityService(logs repository.ActivityRepo, locations domain.Locations, observers ...UseCaseObserver) ActivityService {
	return &activityService{
		logs:      logs,
		locations: locations,
		observer:  useCaseObserverOrNoop(observers),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Submit saves the rows of one month's activity form. Rows without a guide
// and custom-hours rows of zero hours are skipped, not rejected.
func (s *activityService) Submit(ctx context.Context, req app.ActivitySubmission) (res *app.SubmitResult, err error) {
	fields := map[string]any{"post": req.Post, "rows_in": len(req.Rows)}
	defer observe(ctx, s.observer, "submit-activity", fields, &err)()

	if err = validatePlace(s.locations, req.Island, req.Post); err != nil {
		return nil, err
	}
	if err = validateMonth(req.Year, req.Month); err != nil {
		return nil, err
	}

	res = &app.SubmitResult{BatchID: uuid.NewString()}
	now := s.now()
	logs := make([]domain.ActivityLogEntry, 0, len(req.Rows))
	for i, row := range req.Rows {
		person := strings.TrimSpace(row.Person)
		if person == "" {
			res.Skipped++
			continue
		}
		if err = validateDays(req.Year, req.Month, []int{row.Day}); err != nil {
			return nil, err
		}
		if row.Visitors < 0 || row.Listeners < 0 || row.Narrations < 0 {
			return nil, invalid(fmt.Sprintf("rows[%d]", i), "counts must not be negative")
		}
		opt := row.Option
		if opt == "" {
			opt = domain.HoursFullDay
		}
		hours, keep := opt.Resolve(row.CustomHours)
		if !keep {
			res.Skipped++
			continue
		}
		logs = append(logs, domain.ActivityLogEntry{
			Date:           domain.NewDate(req.Year, req.Month, row.Day),
			Island:         req.Island,
			Post:           req.Post,
			Person:         person,
			Hours:          hours,
			Visitors:       row.Visitors,
			Listeners:      row.Listeners,
			NarrationCount: row.Narrations,
			Tags:           row.Tags,
			Status:         domain.LogPendingReview,
			Timestamp:      now,
		})
	}
	fields["skipped"] = res.Skipped
	if len(logs) == 0 {
		return res, nil
	}

	stats, err := s.logs.Upsert(ctx, logs)
	if err != nil {
		return nil, fmt.Errorf("submitting activity log: %w", err)
	}
	res.Saved = len(logs)
	res.Replaced = stats.Replaced
	fields["rows"] = res.Saved
	fields["replaced"] = res.Replaced
	return res, nil
}

// Approve moves every pending row of scope to approved and reports how many
// changed.
func (s *activityService) Approve(ctx context.Context, scope app.Scope) (n int, err error) {
	fields := map[string]any{"year": scope.Year, "month": int(scope.Month), "island": scope.Island, "post": scope.Post}
	defer observe(ctx, s.observer, "approve-activity", fields, &err)()

	if err = validateScope(s.locations, scope); err != nil {
		return 0, err
	}
	n, err = s.logs.SetStatus(ctx, toQuery(scope), domain.LogPendingReview, domain.LogApproved)
	if err != nil {
		return 0, err
	}
	fields["approved"] = n
	return n, nil
}

func (s *activityService) List(ctx context.Context, scope app.Scope) (logs []domain.ActivityLogEntry, err error) {
	fields := map[string]any{"year": scope.Year, "month": int(scope.Month), "post": scope.Post}
	defer observe(ctx, s.observer, "list-activity", fields, &err)()
	return s.list(ctx, scope, fields, nil)
}

// ListByPerson is the "my activity" listing of one guide.
func (s *activityService) ListByPerson(ctx context.Context, person string, scope app.Scope) (logs []domain.ActivityLogEntry, err error) {
	fields := map[string]any{"year": scope.Year, "month": int(scope.Month), "person": person}
	defer observe(ctx, s.observer, "list-activity-by-person", fields, &err)()

	if strings.TrimSpace(person) == "" {
		return nil, invalid("person", "is required")
	}
	if err = validateScope(s.locations, scope); err != nil {
		return nil, err
	}
	listing, err := s.logs.ListByPerson(ctx, strings.TrimSpace(person), toQuery(scope))
	if err != nil {
		return nil, err
	}
	sortLogs(listing.Items)
	fields["rows"] = len(listing.Items)
	return listing.Items, nil
}

// ListPending returns the rows still waiting for review.
func (s *activityService) ListPending(ctx context.Context, scope app.Scope) (logs []domain.ActivityLogEntry, err error) {
	fields := map[string]any{"year": scope.Year, "month": int(scope.Month), "post": scope.Post}
	defer observe(ctx, s.observer, "list-pending-activity", fields, &err)()
	return s.list(ctx, scope, fields, func(l domain.ActivityLogEntry) bool {
		return l.Status == domain.LogPendingReview
	})
}

func (s *activityService) list(ctx context.Context, scope app.Scope, fields map[string]any, keep func(domain.ActivityLogEntry) bool) ([]domain.ActivityLogEntry, error) {
	if err := validateScope(s.locations, scope); err != nil {
		return nil, err
	}
	listing, err := s.logs.ListMonth(ctx, toQuery(scope))
	if err != nil {
		return nil, err
	}
	out := listing.Items
	if keep != nil {
		out = out[:0:0]
		for _, l := range listing.Items {
			if keep(l) {
				out = append(out, l)
			}
		}
	}
	sortLogs(out)
	fields["rows"] = len(out)
	fields["skipped"] = listing.Skipped
	return out, nil
}
