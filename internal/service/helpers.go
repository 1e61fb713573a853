package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/geopark-ops/guidelog/internal/app"
	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/geopark-ops/guidelog/internal/repository"
	"github.com/geopark-ops/guidelog/internal/sheet"
)

func toQuery(s app.Scope) repository.Query {
	return repository.Query{Year: s.Year, Month: s.Month, Island: s.Island, Post: s.Post}
}

func validateMonth(year int, month time.Month) error {
	if year < 2000 || year > 2999 {
		return invalid("year", "%d is out of range", year)
	}
	if month < time.January || month > time.December {
		return invalid("month", "%d is out of range", int(month))
	}
	return nil
}

// validateScope requires a month. Island and post are checked against the
// roster of locations only when given.
func validateScope(locations domain.Locations, s app.Scope) error {
	if err := validateMonth(s.Year, s.Month); err != nil {
		return err
	}
	if s.Island == "" {
		return nil
	}
	if err := locations.Validate(s.Island, s.Post); err != nil {
		return invalid("island", "%v", err)
	}
	return nil
}

// validatePlace requires both island and post, and that the post belongs to
// the island.
func validatePlace(locations domain.Locations, island, post string) error {
	if strings.TrimSpace(island) == "" {
		return invalid("island", "is required")
	}
	if strings.TrimSpace(post) == "" {
		return invalid("post", "is required")
	}
	if err := locations.Validate(island, post); err != nil {
		return invalid("post", "%v", err)
	}
	return nil
}

func validateDays(year int, month time.Month, days []int) error {
	last := domain.DaysIn(year, month)
	for _, d := range days {
		if d < 1 || d > last {
			return invalid("days", "%d is not a day of %d-%02d", d, year, int(month))
		}
	}
	return nil
}

// uniqueSortedDays drops duplicates so one submission never writes the same
// key twice.
func uniqueSortedDays(days []int) []int {
	seen := make(map[int]bool, len(days))
	out := make([]int, 0, len(days))
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Ints(out)
	return out
}

func isUnavailable(err error) bool {
	return errors.Is(err, sheet.ErrReadFailed)
}

func unavailableWarning(table string, err error) string {
	return fmt.Sprintf("%s table could not be read: %v", table, err)
}

func sortEntries(entries []domain.ScheduleEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Post != b.Post {
			return a.Post < b.Post
		}
		return a.Person < b.Person
	})
}

func sortLogs(logs []domain.ActivityLogEntry) {
	sort.SliceStable(logs, func(i, j int) bool {
		a, b := logs[i], logs[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Post != b.Post {
			return a.Post < b.Post
		}
		return a.Person < b.Person
	})
}
