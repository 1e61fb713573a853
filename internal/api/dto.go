package api

import (
	"time"

	"github.com/geopark-ops/guidelog/internal/app"
	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/shopspring/decimal"
)

// =============================================================================
// REQUESTS
// =============================================================================

type SubmitPlanRequest struct {
	Island string `json:"island"`
	Post   string `json:"post"`
	Person string `json:"person"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Days   []int  `json:"days,omitempty"`
	Period string `json:"period,omitempty"`
	Shift  string `json:"shift"`
	Note   string `json:"note,omitempty"`
	Status string `json:"status,omitempty"`
}

type EntryKeyDTO struct {
	Date   string `json:"date"`
	Person string `json:"person"`
	Post   string `json:"post"`
}

type CancelPlansRequest struct {
	Keys []EntryKeyDTO `json:"keys"`
}

type SubstitutionRequest struct {
	Island     string `json:"island"`
	Post       string `json:"post"`
	Date       string `json:"date"`
	Original   string `json:"original"`
	Substitute string `json:"substitute"`
	Shift      string `json:"shift,omitempty"`
	Note       string `json:"note,omitempty"`
}

type ScopeRequest struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Island string `json:"island,omitempty"`
	Post   string `json:"post,omitempty"`
}

func (s ScopeRequest) scope() app.Scope {
	return app.Scope{Year: s.Year, Month: time.Month(s.Month), Island: s.Island, Post: s.Post}
}

type ActivityRowRequest struct {
	Day         int             `json:"day"`
	Person      string          `json:"person"`
	HoursOption string          `json:"hours_option,omitempty"`
	CustomHours decimal.Decimal `json:"custom_hours"`
	Visitors    int             `json:"visitors"`
	Listeners   int             `json:"listeners"`
	Narrations  int             `json:"narrations"`
	Tags        []string        `json:"tags,omitempty"`
}

type SubmitLogsRequest struct {
	Island string               `json:"island"`
	Post   string               `json:"post"`
	Year   int                  `json:"year"`
	Month  int                  `json:"month"`
	Rows   []ActivityRowRequest `json:"rows"`
}

type GuideDTO struct {
	Name   string `json:"name"`
	Island string `json:"island"`
	Role   string `json:"role,omitempty"`
}

type AddGuidesRequest struct {
	Guides []GuideDTO `json:"guides"`
}

type FerryStatusDTO struct {
	Date      string `json:"date"`
	Route     string `json:"route"`
	Scheduled int    `json:"scheduled"`
	Operated  int    `json:"operated"`
}

type RecordDisruptionsRequest struct {
	Statuses []FerryStatusDTO `json:"statuses"`
}

// =============================================================================
// RESPONSES
// =============================================================================

type ErrorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

type SubmitResultDTO struct {
	BatchID  string `json:"batch_id"`
	Saved    int    `json:"saved"`
	Replaced int    `json:"replaced"`
	Skipped  int    `json:"skipped"`
}

type CountDTO struct {
	Count int `json:"count"`
}

type PlanEntryDTO struct {
	Date           string `json:"date"`
	Weekday        string `json:"weekday"`
	Island         string `json:"island"`
	Post           string `json:"post"`
	Person         string `json:"person"`
	Shift          string `json:"shift"`
	Note           string `json:"note,omitempty"`
	Status         string `json:"status"`
	OriginalPerson string `json:"original_person,omitempty"`
}

type ActivityLogDTO struct {
	Date       string          `json:"date"`
	Island     string          `json:"island"`
	Post       string          `json:"post"`
	Person     string          `json:"person"`
	Hours      decimal.Decimal `json:"hours"`
	Visitors   int             `json:"visitors"`
	Listeners  int             `json:"listeners"`
	Narrations int             `json:"narrations"`
	Tags       []string        `json:"tags,omitempty"`
	Status     string          `json:"status"`
	Timestamp  time.Time       `json:"timestamp"`
}

type MonthlyReportDTO struct {
	Title           string     `json:"title"`
	Period          string     `json:"period"`
	Header          []string   `json:"header"`
	Rows            [][]string `json:"rows"`
	Pages           int        `json:"pages"`
	PlanUnavailable bool       `json:"plan_unavailable"`
	LogUnavailable  bool       `json:"log_unavailable"`
	DroppedOwners   int        `json:"dropped_owners"`
	DroppedLogs     int        `json:"dropped_logs"`
	Warnings        []string   `json:"warnings"`
}

type TotalsDTO struct {
	Entries    int             `json:"entries"`
	Hours      decimal.Decimal `json:"hours"`
	Visitors   int             `json:"visitors"`
	Listeners  int             `json:"listeners"`
	Narrations int             `json:"narrations"`
}

type IslandStatsDTO struct {
	Island string `json:"island"`
	TotalsDTO
}

type PostStatsDTO struct {
	Island string `json:"island"`
	Post   string `json:"post"`
	TotalsDTO
}

type StatsDTO struct {
	Islands        []IslandStatsDTO `json:"islands"`
	Posts          []PostStatsDTO   `json:"posts"`
	Overall        TotalsDTO        `json:"overall"`
	DisruptionDays []string         `json:"disruption_days"`
	Disrupted      TotalsDTO        `json:"disrupted"`
	Skipped        int              `json:"skipped"`
	Warnings       []string         `json:"warnings"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toSubmitResultDTO(r *app.SubmitResult) SubmitResultDTO {
	return SubmitResultDTO{BatchID: r.BatchID, Saved: r.Saved, Replaced: r.Replaced, Skipped: r.Skipped}
}

func toPlanEntryDTOs(entries []domain.ScheduleEntry) []PlanEntryDTO {
	out := make([]PlanEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, PlanEntryDTO{
			Date:           domain.FormatDate(e.Date),
			Weekday:        domain.WeekdayLabel(e.Date),
			Island:         e.Island,
			Post:           e.Post,
			Person:         e.Person,
			Shift:          e.Shift.DisplayText(),
			Note:           e.Note,
			Status:         string(e.Status),
			OriginalPerson: e.OriginalPerson,
		})
	}
	return out
}

func toActivityLogDTOs(logs []domain.ActivityLogEntry) []ActivityLogDTO {
	out := make([]ActivityLogDTO, 0, len(logs))
	for _, l := range logs {
		out = append(out, ActivityLogDTO{
			Date:       domain.FormatDate(l.Date),
			Island:     l.Island,
			Post:       l.Post,
			Person:     l.Person,
			Hours:      l.Hours,
			Visitors:   l.Visitors,
			Listeners:  l.Listeners,
			Narrations: l.NarrationCount,
			Tags:       l.Tags,
			Status:     string(l.Status),
			Timestamp:  l.Timestamp,
		})
	}
	return out
}

func toGuideDTOs(guides []domain.Guide) []GuideDTO {
	out := make([]GuideDTO, 0, len(guides))
	for _, g := range guides {
		out = append(out, GuideDTO{Name: g.Name, Island: g.Island, Role: string(g.Role)})
	}
	return out
}

func toTotalsDTO(t app.Totals) TotalsDTO {
	return TotalsDTO{Entries: t.Entries, Hours: t.Hours, Visitors: t.Visitors, Listeners: t.Listeners, Narrations: t.Narrations}
}

func toStatsDTO(resp *app.StatsResponse) StatsDTO {
	dto := StatsDTO{
		Islands:        make([]IslandStatsDTO, 0, len(resp.Islands)),
		Posts:          make([]PostStatsDTO, 0, len(resp.Posts)),
		Overall:        toTotalsDTO(resp.Overall),
		DisruptionDays: make([]string, 0, len(resp.DisruptionDays)),
		Disrupted:      toTotalsDTO(resp.Disrupted),
		Skipped:        resp.Skipped,
		Warnings:       nonNil(resp.Warnings),
	}
	for _, is := range resp.Islands {
		dto.Islands = append(dto.Islands, IslandStatsDTO{Island: is.Island, TotalsDTO: toTotalsDTO(is.Totals)})
	}
	for _, ps := range resp.Posts {
		dto.Posts = append(dto.Posts, PostStatsDTO{Island: ps.Island, Post: ps.Post, TotalsDTO: toTotalsDTO(ps.Totals)})
	}
	for _, d := range resp.DisruptionDays {
		dto.DisruptionDays = append(dto.DisruptionDays, domain.FormatDate(d))
	}
	return dto
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
