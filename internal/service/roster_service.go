package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/geopark-ops/guidelog/internal/disruption"
	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/geopark-ops/guidelog/internal/repository"
)

type rosterService struct {
	roster    repository.RosterRepo
	locations domain.Locations
	observer  UseCaseObserver
}

func NewRosterService(roster repository.RosterRepo, locations domain.Locations, observers ...UseCaseObserver) RosterService {
	return &rosterService{
		roster:    roster,
		locations: locations,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// Add creates or replaces guides by name. Role defaults to guide.
func (s *rosterService) Add(ctx context.Context, guides ...domain.Guide) (n int, err error) {
	fields := map[string]any{"guides": len(guides)}
	defer observe(ctx, s.observer, "add-guides", fields, &err)()

	if len(guides) == 0 {
		return 0, invalid("guides", "at least one guide is required")
	}
	clean := make([]domain.Guide, 0, len(guides))
	for _, g := range guides {
		g.Name = strings.TrimSpace(g.Name)
		if g.Name == "" {
			return 0, invalid("name", "is required")
		}
		if g.Island == "" {
			return 0, invalid("island", "is required for %s", g.Name)
		}
		if err = s.locations.Validate(g.Island, ""); err != nil {
			return 0, invalid("island", "%v", err)
		}
		if g.Role == "" {
			g.Role = domain.RoleGuide
		}
		clean = append(clean, g)
	}
	stats, err := s.roster.Upsert(ctx, clean)
	if err != nil {
		return 0, err
	}
	fields["replaced"] = stats.Replaced
	return len(clean), nil
}

func (s *rosterService) List(ctx context.Context, island string) (guides []domain.Guide, err error) {
	fields := map[string]any{"island": island}
	defer observe(ctx, s.observer, "list-guides", fields, &err)()

	guides, err = s.roster.List(ctx, island)
	if err != nil {
		return nil, err
	}
	fields["guides"] = len(guides)
	return guides, nil
}

func (s *rosterService) Get(ctx context.Context, name string) (g *domain.Guide, err error) {
	defer observe(ctx, s.observer, "get-guide", map[string]any{"name": name}, &err)()
	return s.roster.Get(ctx, strings.TrimSpace(name))
}

type disruptionService struct {
	recorder *disruption.SheetFeed
	feed     disruption.Feed
	observer UseCaseObserver
}

// NewDisruptionService records ferry status into recorder and answers day
// queries from feed, which normally includes recorder.
func NewDisruptionService(recorder *disruption.SheetFeed, feed disruption.Feed, observers ...UseCaseObserver) DisruptionService {
	if feed == nil {
		feed = recorder
	}
	return &disruptionService{
		recorder: recorder,
		feed:     feed,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *disruptionService) Record(ctx context.Context, statuses ...disruption.FerryStatus) (err error) {
	defer observe(ctx, s.observer, "record-ferry-status", map[string]any{"rows": len(statuses)}, &err)()

	if len(statuses) == 0 {
		return invalid("statuses", "at least one status is required")
	}
	for _, st := range statuses {
		if st.Route == "" || st.Date.IsZero() {
			return invalid("statuses", "date and route are required")
		}
		if st.Scheduled < 0 || st.Operated < 0 {
			return invalid("statuses", "departures must not be negative")
		}
	}
	if err = s.recorder.Record(ctx, statuses...); err != nil {
		return fmt.Errorf("recording disruption: %w", err)
	}
	return nil
}

func (s *disruptionService) Days(ctx context.Context, route string, year int, month time.Month) (days disruption.DaySet, err error) {
	fields := map[string]any{"route": route, "year": year, "month": int(month)}
	defer observe(ctx, s.observer, "disruption-days", fields, &err)()

	if err = validateMonth(year, month); err != nil {
		return nil, err
	}
	days, err = s.feed.Disruptions(ctx, route, year, month)
	if err != nil {
		return nil, err
	}
	fields["days"] = days.Len()
	return days, nil
}
