// Package reconcile derives the per-day display slots of a post from the
// plan table and the independently submitted activity log.
package reconcile

import (
	"fmt"
	"time"

	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultSlotCount is how many workers a post's daily row can show. Workers
// beyond it are left out of the grid and counted, never written anywhere.
const DefaultSlotCount = 4

// Slot pairs the person a day was planned for with whoever actually worked.
type Slot struct {
	Date         time.Time
	Weekday      string
	PlanOwner    string
	ActualWorker string
	Substitute   bool
	// Unplanned marks a result filled from a log entry no plan slot claimed.
	Unplanned bool
	Plan      string
	Result    string
	Hours     decimal.Decimal
}

func (s Slot) Empty() bool {
	return s.PlanOwner == "" && s.ActualWorker == "" && s.Result == ""
}

// Day is one reconciled date at one post.
type Day struct {
	Date          time.Time
	Weekday       string
	Post          string
	Slots         []Slot
	DroppedOwners int
	DroppedLogs   int
}

type Engine struct {
	slots int
}

// NewEngine returns an engine producing n slots per day; n <= 0 selects
// DefaultSlotCount.
func NewEngine(n int) *Engine {
	if n <= 0 {
		n = DefaultSlotCount
	}
	return &Engine{slots: n}
}

func (e *Engine) SlotCount() int { return e.slots }

// Reconcile uses the default slot count.
func Reconcile(date time.Time, post string, plans []domain.ScheduleEntry, logs []domain.ActivityLogEntry) Day {
	return NewEngine(DefaultSlotCount).Reconcile(date, post, plans, logs)
}

type owner struct {
	planOwner  string
	actual     string
	substitute bool
	shift      domain.Shift
}

// Reconcile builds exactly SlotCount slots for date at post. Entries for
// other dates or posts are ignored, and log entries with zero hours are
// treated as absent.
func (e *Engine) Reconcile(date time.Time, post string, plans []domain.ScheduleEntry, logs []domain.ActivityLogEntry) Day {
	day := Day{
		Date:    domain.TruncateDate(date),
		Weekday: domain.WeekdayLabel(date),
		Post:    post,
	}

	var subs, originals []domain.ScheduleEntry
	for _, p := range plans {
		if p.Post != post || !domain.SameDay(p.Date, date) {
			continue
		}
		if p.IsSubstitute() {
			subs = append(subs, p)
		} else {
			originals = append(originals, p)
		}
	}

	replaced := make(map[string]bool, len(subs))
	for _, s := range subs {
		replaced[s.OriginalPerson] = true
	}
	ownShift := make(map[string]domain.Shift, len(originals))
	for _, o := range originals {
		if _, seen := ownShift[o.Person]; !seen {
			ownShift[o.Person] = o.Shift
		}
	}

	owners := make([]owner, 0, len(subs)+len(originals))
	for _, s := range subs {
		shift, ok := ownShift[s.OriginalPerson]
		if !ok {
			shift = s.Shift
		}
		owners = append(owners, owner{planOwner: s.OriginalPerson, actual: s.Person, substitute: true, shift: shift})
	}
	for _, o := range originals {
		if replaced[o.Person] {
			continue
		}
		owners = append(owners, owner{planOwner: o.Person, actual: o.Person, shift: o.Shift})
	}
	if len(owners) > e.slots {
		day.DroppedOwners = len(owners) - e.slots
		owners = owners[:e.slots]
	}

	var dayLogs []domain.ActivityLogEntry
	for _, l := range logs {
		if l.Post != post || !domain.SameDay(l.Date, date) || !l.HasActivity() {
			continue
		}
		dayLogs = append(dayLogs, l)
	}
	consumed := make([]bool, len(dayLogs))

	day.Slots = make([]Slot, e.slots)
	for i := range day.Slots {
		slot := Slot{Date: day.Date, Weekday: day.Weekday}
		if i < len(owners) {
			o := owners[i]
			slot.PlanOwner = o.planOwner
			slot.ActualWorker = o.actual
			slot.Substitute = o.substitute
			slot.Plan = o.shift.PlanLabel()
			for j, l := range dayLogs {
				if consumed[j] || l.Person != o.actual {
					continue
				}
				consumed[j] = true
				slot.Hours = l.Hours
				if o.substitute {
					slot.Result = fmt.Sprintf("%s(%sH)", o.actual, l.Hours.String())
				} else {
					slot.Result = fmt.Sprintf("%sH", l.Hours.String())
				}
				break
			}
		}
		day.Slots[i] = slot
	}

	next := 0
	for j, l := range dayLogs {
		if consumed[j] {
			continue
		}
		for next < len(day.Slots) && day.Slots[next].Result != "" {
			next++
		}
		if next == len(day.Slots) {
			day.DroppedLogs++
			continue
		}
		consumed[j] = true
		slot := &day.Slots[next]
		slot.Result = fmt.Sprintf("%s\n(%sH)", l.Person, l.Hours.String())
		slot.Hours = l.Hours
		slot.Unplanned = true
		if slot.ActualWorker == "" {
			slot.ActualWorker = l.Person
		}
		next++
	}
	return day
}

// Month reconciles every day of period in year/month at post, in date order.
func (e *Engine) Month(year int, month time.Month, period domain.Period, post string, plans []domain.ScheduleEntry, logs []domain.ActivityLogEntry) []Day {
	days := period.Days(year, month)
	out := make([]Day, 0, len(days))
	for _, d := range days {
		out = append(out, e.Reconcile(domain.NewDate(year, month, d), post, plans, logs))
	}
	return out
}

// Owners returns, per slot index, the first non-empty plan owner across
// days. It fixes the column headers of a rendered month.
func Owners(days []Day, slots int) []string {
	owners := make([]string, slots)
	for _, d := range days {
		for i, s := range d.Slots {
			if i < slots && owners[i] == "" && s.PlanOwner != "" {
				owners[i] = s.PlanOwner
			}
		}
	}
	return owners
}

// Totals sums the dropped counters over days.
func Totals(days []Day) (droppedOwners, droppedLogs int) {
	for _, d := range days {
		droppedOwners += d.DroppedOwners
		droppedLogs += d.DroppedLogs
	}
	return droppedOwners, droppedLogs
}
