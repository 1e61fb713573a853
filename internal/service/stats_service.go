package service

import (
	"context"
	"sort"

	"github.com/geopark-ops/guidelog/internal/app"
	"github.com/geopark-ops/guidelog/internal/disruption"
	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/geopark-ops/guidelog/internal/repository"
)

type statsService struct {
	logs      repository.ActivityRepo
	feed      disruption.Feed
	locations domain.Locations
	observer  UseCaseObserver
}

// NewStatsService aggregates the activity log. feed may be nil, in which
// case no day counts as disrupted.
func NewStatsService(logs repository.ActivityRepo, feed disruption.Feed, locations domain.Locations, observers ...UseCaseObserver) StatsService {
	return &statsService{
		logs:      logs,
		feed:      feed,
		locations: locations,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *statsService) Monthly(ctx context.Context, req app.StatsRequest) (resp *app.StatsResponse, err error) {
	fields := map[string]any{"year": req.Year, "month": int(req.Month), "island": req.Island}
	defer observe(ctx, s.observer, "monthly-stats", fields, &err)()

	if err = validateScope(s.locations, app.Scope{Year: req.Year, Month: req.Month, Island: req.Island}); err != nil {
		return nil, err
	}
	listing, err := s.logs.ListMonth(ctx, repository.Query{Year: req.Year, Month: req.Month, Island: req.Island})
	if err != nil {
		return nil, err
	}

	resp = &app.StatsResponse{Request: req, Skipped: listing.Skipped}
	disrupted := disruption.DaySet{}
	if s.feed != nil {
		days, ferr := s.feed.Disruptions(ctx, req.Route, req.Year, req.Month)
		if ferr != nil {
			resp.Warnings = append(resp.Warnings, "disruption days unavailable: "+ferr.Error())
		} else {
			disrupted = days
		}
	}
	resp.DisruptionDays = disrupted.Days()

	islands := map[string]*app.IslandStats{}
	posts := map[[2]string]*app.PostStats{}
	for _, l := range listing.Items {
		if !l.HasActivity() {
			continue
		}
		is, ok := islands[l.Island]
		if !ok {
			is = &app.IslandStats{Island: l.Island}
			islands[l.Island] = is
		}
		pk := [2]string{l.Island, l.Post}
		ps, ok := posts[pk]
		if !ok {
			ps = &app.PostStats{Island: l.Island, Post: l.Post}
			posts[pk] = ps
		}
		for _, t := range []*app.Totals{&is.Totals, &ps.Totals, &resp.Overall} {
			t.Add(l.Hours, l.Visitors, l.Listeners, l.NarrationCount)
		}
		if disrupted.Has(l.Date) {
			resp.Disrupted.Add(l.Hours, l.Visitors, l.Listeners, l.NarrationCount)
		}
	}

	for _, is := range islands {
		resp.Islands = append(resp.Islands, *is)
	}
	for _, ps := range posts {
		resp.Posts = append(resp.Posts, *ps)
	}
	order := s.order()
	sort.Slice(resp.Islands, func(i, j int) bool {
		return order.before(resp.Islands[i].Island, "", resp.Islands[j].Island, "")
	})
	sort.Slice(resp.Posts, func(i, j int) bool {
		a, b := resp.Posts[i], resp.Posts[j]
		return order.before(a.Island, a.Post, b.Island, b.Post)
	})

	fields["rows"] = resp.Overall.Entries
	fields["disruption_days"] = len(resp.DisruptionDays)
	return resp, nil
}

// locationOrder sorts islands and posts the way the roster lists them, with
// names missing from the roster last in alphabetical order.
type locationOrder map[string]int

func (s *statsService) order() locationOrder {
	o := locationOrder{}
	for i, is := range s.locations {
		o[is.Name] = i * 1000
		for j, p := range is.Posts {
			o[is.Name+"\x1f"+p] = i*1000 + j + 1
		}
	}
	return o
}

func (o locationOrder) rank(key string) (int, bool) {
	r, ok := o[key]
	return r, ok
}

func (o locationOrder) before(islandA, postA, islandB, postB string) bool {
	if islandA != islandB {
		return o.less(islandA, islandB)
	}
	return o.less(islandA+"\x1f"+postA, islandB+"\x1f"+postB)
}

func (o locationOrder) less(a, b string) bool {
	ra, okA := o.rank(a)
	rb, okB := o.rank(b)
	switch {
	case okA && okB:
		return ra < rb
	case okA != okB:
		return okA
	default:
		return a < b
	}
}
