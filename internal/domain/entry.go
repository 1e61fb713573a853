package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntryKey is the natural key shared by schedule and activity rows.
type EntryKey struct {
	Date   time.Time
	Person string
	Post   string
}

func (k EntryKey) String() string {
	return fmt.Sprintf("%s/%s/%s", FormatDate(k.Date), k.Person, k.Post)
}

// ScheduleEntry is one planned work unit. A substitution is an entry whose
// OriginalPerson names the guide it replaces; the replaced guide's own entry
// is kept alongside it.
type ScheduleEntry struct {
	Date           time.Time
	Island         string
	Post           string
	Person         string
	Shift          Shift
	Note           string
	Status         PlanStatus
	OriginalPerson string
	UpdatedAt      time.Time
}

func (e *ScheduleEntry) Key() EntryKey {
	return EntryKey{Date: e.Date, Person: e.Person, Post: e.Post}
}

func (e *ScheduleEntry) IsSubstitute() bool {
	return e.OriginalPerson != ""
}

// Validate checks the fields every stored entry must carry.
func (e *ScheduleEntry) Validate() error {
	if e.Date.IsZero() {
		return fmt.Errorf("schedule entry: date is required")
	}
	if strings.TrimSpace(e.Person) == "" {
		return fmt.Errorf("schedule entry: person is required")
	}
	if strings.TrimSpace(e.Post) == "" {
		return fmt.Errorf("schedule entry: post is required")
	}
	if e.OriginalPerson != "" && e.OriginalPerson == e.Person {
		return fmt.Errorf("schedule entry: %s cannot substitute for themselves", e.Person)
	}
	return nil
}

// ActivityLogEntry is one actual-work record. Zero hours means no activity.
type ActivityLogEntry struct {
	Date           time.Time
	Island         string
	Post           string
	Person         string
	Hours          decimal.Decimal
	Visitors       int
	Listeners      int
	NarrationCount int
	Tags           []string
	Status         LogStatus
	Timestamp      time.Time
}

func (e *ActivityLogEntry) Key() EntryKey {
	return EntryKey{Date: e.Date, Person: e.Person, Post: e.Post}
}

func (e *ActivityLogEntry) HasActivity() bool {
	return e.Hours.IsPositive()
}

// Note joins the category tags the way the note column stores them.
func (e *ActivityLogEntry) Note() string {
	return strings.Join(e.Tags, ",")
}

func (e *ActivityLogEntry) Validate() error {
	if e.Date.IsZero() {
		return fmt.Errorf("activity log: date is required")
	}
	if strings.TrimSpace(e.Person) == "" {
		return fmt.Errorf("activity log: person is required")
	}
	if strings.TrimSpace(e.Post) == "" {
		return fmt.Errorf("activity log: post is required")
	}
	if e.Hours.IsNegative() {
		return fmt.Errorf("activity log: hours must not be negative")
	}
	if e.Visitors < 0 || e.Listeners < 0 || e.NarrationCount < 0 {
		return fmt.Errorf("activity log: counts must not be negative")
	}
	return nil
}

// ParseTags splits a comma-joined note into trimmed, non-empty tags.
func ParseTags(note string) []string {
	var tags []string
	for _, part := range strings.Split(note, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Guide is a roster member.
type Guide struct {
	Name   string
	Island string
	Role   Role
}
