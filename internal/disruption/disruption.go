// Package disruption answers which days a ferry route ran reduced or no
// departures. Statistics use it to set those days apart; nothing else does.
package disruption

import (
	"context"
	"sort"
	"time"

	"github.com/geopark-ops/guidelog/internal/domain"
)

// DaySet is a set of calendar days.
type DaySet map[string]struct{}

func NewDaySet(days ...time.Time) DaySet {
	s := make(DaySet, len(days))
	for _, d := range days {
		s.Add(d)
	}
	return s
}

func (s DaySet) Add(d time.Time) { s[domain.FormatDate(d)] = struct{}{} }

func (s DaySet) Has(d time.Time) bool {
	_, ok := s[domain.FormatDate(d)]
	return ok
}

func (s DaySet) Len() int { return len(s) }

// Days returns the members in ascending order.
func (s DaySet) Days() []time.Time {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]time.Time, 0, len(keys))
	for _, k := range keys {
		if t, err := time.Parse(domain.DateLayout, k); err == nil {
			out = append(out, t)
		}
	}
	return out
}

// Feed reports the disrupted days of route within one month.
type Feed interface {
	Disruptions(ctx context.Context, route string, year int, month time.Month) (DaySet, error)
}

// StaticFeed serves a fixed list of days, typically from configuration.
// An empty Route matches every route.
type StaticFeed struct {
	Route string
	Days  DaySet
}

func (f StaticFeed) Disruptions(_ context.Context, route string, year int, month time.Month) (DaySet, error) {
	out := DaySet{}
	if f.Route != "" && route != "" && f.Route != route {
		return out, nil
	}
	for _, d := range f.Days.Days() {
		if d.Year() == year && d.Month() == month {
			out.Add(d)
		}
	}
	return out, nil
}

// Union merges the answers of several feeds. The first error aborts.
type Union []Feed

func (u Union) Disruptions(ctx context.Context, route string, year int, month time.Month) (DaySet, error) {
	out := DaySet{}
	for _, f := range u {
		days, err := f.Disruptions(ctx, route, year, month)
		if err != nil {
			return nil, err
		}
		for k := range days {
			out[k] = struct{}{}
		}
	}
	return out, nil
}
