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

type scheduleService struct {
	plans     repository.ScheduleRepo
	locations domain.Locations
	observer  UseCaseObserver
	now       func() time.Time
}

func NewScheduleService(plans repository.ScheduleRepo, locations domain.Locations, observers ...UseCaseObserver) ScheduleService {
	return &scheduleService{
		plans:     plans,
		locations: locations,
		observer:  useCaseObserverOrNoop(observers),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SubmitPlan writes one entry per planned day. Re-submitting a day replaces
// the earlier entry for the same guide and post.
func (s *scheduleService) SubmitPlan(ctx context.Context, req app.PlanSubmission) (res *app.SubmitResult, err error) {
	fields := map[string]any{"post": req.Post, "person": req.Person}
	defer observe(ctx, s.observer, "submit-plan", fields, &err)()

	if err = validatePlace(s.locations, req.Island, req.Post); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Person) == "" {
		return nil, invalid("person", "is required")
	}
	if err = validateMonth(req.Year, req.Month); err != nil {
		return nil, err
	}
	days := req.Days
	if len(days) == 0 {
		days = req.Period.Days(req.Year, req.Month)
	}
	if err = validateDays(req.Year, req.Month, days); err != nil {
		return nil, err
	}
	days = uniqueSortedDays(days)

	shift := req.Shift
	if shift.Kind == "" {
		shift = domain.FullDay
	}
	status := req.Status
	if status == "" {
		status = domain.PlanSubmitted
	}

	now := s.now()
	entries := make([]domain.ScheduleEntry, 0, len(days))
	for _, d := range days {
		entries = append(entries, domain.ScheduleEntry{
			Date:      domain.NewDate(req.Year, req.Month, d),
			Island:    req.Island,
			Post:      req.Post,
			Person:    strings.TrimSpace(req.Person),
			Shift:     shift,
			Note:      req.Note,
			Status:    status,
			UpdatedAt: now,
		})
	}

	stats, err := s.plans.Upsert(ctx, entries)
	if err != nil {
		return nil, fmt.Errorf("submitting plan: %w", err)
	}
	fields["rows"] = len(entries)
	fields["replaced"] = stats.Replaced
	return &app.SubmitResult{
		BatchID:  uuid.NewString(),
		Saved:    len(entries),
		Replaced: stats.Replaced,
	}, nil
}

// RegisterSubstitution adds an entry for the substitute that points at the
// original guide. The original entry is left as it is.
func (s *scheduleService) RegisterSubstitution(ctx context.Context, req app.SubstitutionRequest) (entry *domain.ScheduleEntry, err error) {
	fields := map[string]any{"post": req.Post, "original": req.Original, "substitute": req.Substitute}
	defer observe(ctx, s.observer, "register-substitution", fields, &err)()

	if err = validatePlace(s.locations, req.Island, req.Post); err != nil {
		return nil, err
	}
	original := strings.TrimSpace(req.Original)
	substitute := strings.TrimSpace(req.Substitute)
	switch {
	case req.Date.IsZero():
		return nil, invalid("date", "is required")
	case original == "":
		return nil, invalid("original", "is required")
	case substitute == "":
		return nil, invalid("substitute", "is required")
	case original == substitute:
		return nil, invalid("substitute", "%s cannot substitute for themselves", substitute)
	}

	date := domain.TruncateDate(req.Date)
	shift := req.Shift
	if shift.Kind == "" {
		shift, err = s.originalShift(ctx, req.Island, req.Post, original, date)
		if err != nil {
			return nil, err
		}
	}

	e := domain.ScheduleEntry{
		Date:           date,
		Island:         req.Island,
		Post:           req.Post,
		Person:         substitute,
		Shift:          shift,
		Note:           req.Note,
		Status:         domain.PlanSubmitted,
		OriginalPerson: original,
		UpdatedAt:      s.now(),
	}
	if _, err = s.plans.Upsert(ctx, []domain.ScheduleEntry{e}); err != nil {
		return nil, fmt.Errorf("registering substitution: %w", err)
	}
	return &e, nil
}

// originalShift copies the shift the replaced guide was planned for, or a
// full day when they had no entry.
func (s *scheduleService) originalShift(ctx context.Context, island, post, person string, date time.Time) (domain.Shift, error) {
	listing, err := s.plans.ListMonth(ctx, repository.Query{
		Year: date.Year(), Month: date.Month(), Island: island, Post: post,
	})
	if err != nil {
		return domain.Shift{}, fmt.Errorf("looking up original plan: %w", err)
	}
	for _, e := range listing.Items {
		if e.Person == person && !e.IsSubstitute() && domain.SameDay(e.Date, date) {
			return e.Shift, nil
		}
	}
	return domain.FullDay, nil
}

func (s *scheduleService) Cancel(ctx context.Context, keys []domain.EntryKey) (n int, err error) {
	fields := map[string]any{"keys": len(keys)}
	defer observe(ctx, s.observer, "cancel-plan", fields, &err)()

	if len(keys) == 0 {
		return 0, invalid("keys", "at least one entry is required")
	}
	for i, k := range keys {
		if k.Date.IsZero() || k.Person == "" || k.Post == "" {
			return 0, invalid("keys", "entry %d needs date, person and post", i+1)
		}
	}
	n, err = s.plans.Delete(ctx, keys)
	if err != nil {
		return 0, err
	}
	fields["deleted"] = n
	return n, nil
}

// Approve marks every entry of scope as approved by writing it back under
// its own key.
func (s *scheduleService) Approve(ctx context.Context, scope app.Scope) (n int, err error) {
	fields := map[string]any{"year": scope.Year, "month": int(scope.Month), "island": scope.Island, "post": scope.Post}
	defer observe(ctx, s.observer, "approve-plan", fields, &err)()

	if err = validateScope(s.locations, scope); err != nil {
		return 0, err
	}
	listing, err := s.plans.ListMonth(ctx, toQuery(scope))
	if err != nil {
		return 0, err
	}
	now := s.now()
	var pending []domain.ScheduleEntry
	for _, e := range listing.Items {
		if e.Status == domain.PlanApproved {
			continue
		}
		e.Status = domain.PlanApproved
		e.UpdatedAt = now
		pending = append(pending, e)
	}
	if len(pending) == 0 {
		return 0, nil
	}
	if _, err = s.plans.Upsert(ctx, pending); err != nil {
		return 0, fmt.Errorf("approving plan: %w", err)
	}
	fields["approved"] = len(pending)
	return len(pending), nil
}

func (s *scheduleService) List(ctx context.Context, scope app.Scope) (entries []domain.ScheduleEntry, err error) {
	fields := map[string]any{"year": scope.Year, "month": int(scope.Month), "post": scope.Post}
	defer observe(ctx, s.observer, "list-plan", fields, &err)()

	if err = validateScope(s.locations, scope); err != nil {
		return nil, err
	}
	listing, err := s.plans.ListMonth(ctx, toQuery(scope))
	if err != nil {
		return nil, err
	}
	sortEntries(listing.Items)
	fields["rows"] = len(listing.Items)
	fields["skipped"] = listing.Skipped
	return listing.Items, nil
}
