package testutil

import (
	"time"

	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/shopspring/decimal"
)

// Fixture defaults: a March 2025 day at a 백령도 post.
var (
	DefaultIsland = "백령도"
	DefaultPost   = "두무진 안내소"
	DefaultDate   = domain.NewDate(2025, time.March, 3)
)

// Schedule entry options
type EntryOption func(*domain.ScheduleEntry)

func OnDate(d time.Time) EntryOption {
	return func(e *domain.ScheduleEntry) { e.Date = d }
}

func OnDay(day int) EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.Date = domain.NewDate(e.Date.Year(), e.Date.Month(), day)
	}
}

func AtPost(island, post string) EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.Island = island
		e.Post = post
	}
}

func WithShift(s domain.Shift) EntryOption {
	return func(e *domain.ScheduleEntry) { e.Shift = s }
}

func WithNote(note string) EntryOption {
	return func(e *domain.ScheduleEntry) { e.Note = note }
}

func WithPlanStatus(s domain.PlanStatus) EntryOption {
	return func(e *domain.ScheduleEntry) { e.Status = s }
}

// Substituting marks the entry as covering for original.
func Substituting(original string) EntryOption {
	return func(e *domain.ScheduleEntry) { e.OriginalPerson = original }
}

func NewTestEntry(person string, opts ...EntryOption) domain.ScheduleEntry {
	e := domain.ScheduleEntry{
		Date:   DefaultDate,
		Island: DefaultIsland,
		Post:   DefaultPost,
		Person: person,
		Shift:  domain.FullDay,
		Status: domain.PlanSubmitted,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Activity log options
type LogOption func(*domain.ActivityLogEntry)

func LogOnDate(d time.Time) LogOption {
	return func(l *domain.ActivityLogEntry) { l.Date = d }
}

func LogOnDay(day int) LogOption {
	return func(l *domain.ActivityLogEntry) {
		l.Date = domain.NewDate(l.Date.Year(), l.Date.Month(), day)
	}
}

func LogAtPost(island, post string) LogOption {
	return func(l *domain.ActivityLogEntry) {
		l.Island = island
		l.Post = post
	}
}

func WithHours(h string) LogOption {
	return func(l *domain.ActivityLogEntry) { l.Hours = decimal.RequireFromString(h) }
}

func WithCounts(visitors, listeners, narrations int) LogOption {
	return func(l *domain.ActivityLogEntry) {
		l.Visitors = visitors
		l.Listeners = listeners
		l.NarrationCount = narrations
	}
}

func WithTags(tags ...string) LogOption {
	return func(l *domain.ActivityLogEntry) { l.Tags = tags }
}

func WithLogStatus(s domain.LogStatus) LogOption {
	return func(l *domain.ActivityLogEntry) { l.Status = s }
}

func NewTestLog(person string, opts ...LogOption) domain.ActivityLogEntry {
	l := domain.ActivityLogEntry{
		Date:      DefaultDate,
		Island:    DefaultIsland,
		Post:      DefaultPost,
		Person:    person,
		Hours:     decimal.NewFromInt(8),
		Status:    domain.LogPendingReview,
		Timestamp: time.Date(2025, time.March, 3, 18, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(&l)
	}
	return l
}

func NewTestGuide(name string, role domain.Role) domain.Guide {
	return domain.Guide{Name: name, Island: DefaultIsland, Role: role}
}
