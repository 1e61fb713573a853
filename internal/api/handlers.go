package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/geopark-ops/guidelog/internal/app"
	"github.com/geopark-ops/guidelog/internal/disruption"
	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/geopark-ops/guidelog/internal/report"
	"github.com/geopark-ops/guidelog/internal/repository"
	"github.com/geopark-ops/guidelog/internal/service"
	"github.com/geopark-ops/guidelog/internal/sheet"
)

// Handler holds the services every endpoint delegates to.
type Handler struct {
	Schedule    service.ScheduleService
	Activity    service.ActivityService
	Reports     service.ReportService
	Stats       service.StatsService
	Roster      service.RosterService
	Disruptions service.DisruptionService
	Logger      *slog.Logger
}

// =============================================================================
// PLANS
// =============================================================================

func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromQuery(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	entries, err := h.Schedule.List(r.Context(), scope)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlanEntryDTOs(entries))
}

func (h *Handler) SubmitPlan(w http.ResponseWriter, r *http.Request) {
	var req SubmitPlanRequest
	if !h.decode(w, r, &req) {
		return
	}
	period, err := domain.ParsePeriod(req.Period)
	if err != nil {
		h.fail(w, r, &service.ValidationError{Field: "period", Message: err.Error()})
		return
	}
	sub := app.PlanSubmission{
		Island: req.Island,
		Post:   req.Post,
		Person: req.Person,
		Year:   req.Year,
		Month:  time.Month(req.Month),
		Days:   req.Days,
		Period: period,
		Note:   req.Note,
	}
	if strings.TrimSpace(req.Shift) != "" {
		sub.Shift = domain.ParseShift(req.Shift)
	}
	if req.Status != "" {
		if sub.Status, err = domain.ParsePlanStatus(req.Status); err != nil {
			h.fail(w, r, &service.ValidationError{Field: "status", Message: err.Error()})
			return
		}
	}
	res, err := h.Schedule.SubmitPlan(r.Context(), sub)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSubmitResultDTO(res))
}

func (h *Handler) CancelPlans(w http.ResponseWriter, r *http.Request) {
	var req CancelPlansRequest
	if !h.decode(w, r, &req) {
		return
	}
	keys := make([]domain.EntryKey, 0, len(req.Keys))
	for _, k := range req.Keys {
		d, err := domain.ParseDate(k.Date)
		if err != nil {
			h.fail(w, r, &service.ValidationError{Field: "keys", Message: err.Error()})
			return
		}
		keys = append(keys, domain.EntryKey{Date: d, Person: k.Person, Post: k.Post})
	}
	n, err := h.Schedule.Cancel(r.Context(), keys)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CountDTO{Count: n})
}

func (h *Handler) RegisterSubstitution(w http.ResponseWriter, r *http.Request) {
	var req SubstitutionRequest
	if !h.decode(w, r, &req) {
		return
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		h.fail(w, r, &service.ValidationError{Field: "date", Message: err.Error()})
		return
	}
	sub := app.SubstitutionRequest{
		Island:     req.Island,
		Post:       req.Post,
		Date:       date,
		Original:   req.Original,
		Substitute: req.Substitute,
		Note:       req.Note,
	}
	if strings.TrimSpace(req.Shift) != "" {
		sub.Shift = domain.ParseShift(req.Shift)
	}
	entry, err := h.Schedule.RegisterSubstitution(r.Context(), sub)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPlanEntryDTOs([]domain.ScheduleEntry{*entry})[0])
}

func (h *Handler) ApprovePlans(w http.ResponseWriter, r *http.Request) {
	var req ScopeRequest
	if !h.decode(w, r, &req) {
		return
	}
	n, err := h.Schedule.Approve(r.Context(), req.scope())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CountDTO{Count: n})
}

// =============================================================================
// ACTIVITY LOGS
// =============================================================================

// ListLogs serves the month listing, the ?person= listing and the
// ?status=pending review queue.
func (h *Handler) ListLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	scope, err := scopeFromQuery(q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var logs []domain.ActivityLogEntry
	switch {
	case q.Get("person") != "":
		logs, err = h.Activity.ListByPerson(r.Context(), q.Get("person"), scope)
	case q.Get("status") == "pending":
		logs, err = h.Activity.ListPending(r.Context(), scope)
	default:
		logs, err = h.Activity.List(r.Context(), scope)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toActivityLogDTOs(logs))
}

func (h *Handler) SubmitLogs(w http.ResponseWriter, r *http.Request) {
	var req SubmitLogsRequest
	if !h.decode(w, r, &req) {
		return
	}
	sub := app.ActivitySubmission{
		Island: req.Island,
		Post:   req.Post,
		Year:   req.Year,
		Month:  time.Month(req.Month),
		Rows:   make([]app.ActivityRow, 0, len(req.Rows)),
	}
	for i, row := range req.Rows {
		opt, ok := domain.ParseHoursOption(row.HoursOption)
		if !ok {
			h.fail(w, r, &service.ValidationError{Field: fmt.Sprintf("rows[%d].hours_option", i), Message: "unknown option " + strconv.Quote(row.HoursOption)})
			return
		}
		sub.Rows = append(sub.Rows, app.ActivityRow{
			Day:         row.Day,
			Person:      row.Person,
			Option:      opt,
			CustomHours: row.CustomHours,
			Visitors:    row.Visitors,
			Listeners:   row.Listeners,
			Narrations:  row.Narrations,
			Tags:        row.Tags,
		})
	}
	res, err := h.Activity.Submit(r.Context(), sub)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSubmitResultDTO(res))
}

func (h *Handler) ApproveLogs(w http.ResponseWriter, r *http.Request) {
	var req ScopeRequest
	if !h.decode(w, r, &req) {
		return
	}
	n, err := h.Activity.Approve(r.Context(), req.scope())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CountDTO{Count: n})
}

// =============================================================================
// REPORTS
// =============================================================================

func (h *Handler) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	req, err := reportFromQuery(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	rep, err := h.Reports.Monthly(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	header, rows := report.Grid(rep.Input(), rep.Document.Layout.Slots)
	writeJSON(w, http.StatusOK, MonthlyReportDTO{
		Title:           rep.Document.Title,
		Period:          rep.Request.Period.Label(),
		Header:          header,
		Rows:            rows,
		Pages:           len(rep.Document.Pages),
		PlanUnavailable: rep.PlanUnavailable,
		LogUnavailable:  rep.LogUnavailable,
		DroppedOwners:   rep.DroppedOwners,
		DroppedLogs:     rep.DroppedLogs,
		Warnings:        nonNil(rep.Warnings),
	})
}

// PrintReport buffers the workbook; errors are reported before any of the
// body is written.
func (h *Handler) PrintReport(w http.ResponseWriter, r *http.Request) {
	req, err := reportFromQuery(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var buf bytes.Buffer
	if _, err := h.Reports.Print(r.Context(), req, &buf); err != nil {
		h.fail(w, r, err)
		return
	}
	name := fmt.Sprintf("%s_%d-%02d.xlsx", req.Post, req.Year, int(req.Month))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// =============================================================================
// STATS, ROSTER, DISRUPTIONS
// =============================================================================

func (h *Handler) MonthlyStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	scope, err := scopeFromQuery(q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	resp, err := h.Stats.Monthly(r.Context(), app.StatsRequest{
		Year:   scope.Year,
		Month:  scope.Month,
		Island: scope.Island,
		Route:  q.Get("route"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatsDTO(resp))
}

func (h *Handler) ListRoster(w http.ResponseWriter, r *http.Request) {
	guides, err := h.Roster.List(r.Context(), r.URL.Query().Get("island"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGuideDTOs(guides))
}

func (h *Handler) AddGuides(w http.ResponseWriter, r *http.Request) {
	var req AddGuidesRequest
	if !h.decode(w, r, &req) {
		return
	}
	guides := make([]domain.Guide, 0, len(req.Guides))
	for _, g := range req.Guides {
		guide := domain.Guide{Name: g.Name, Island: g.Island}
		if g.Role != "" {
			role, err := domain.ParseRole(g.Role)
			if err != nil {
				h.fail(w, r, &service.ValidationError{Field: "role", Message: err.Error()})
				return
			}
			guide.Role = role
		}
		guides = append(guides, guide)
	}
	n, err := h.Roster.Add(r.Context(), guides...)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, CountDTO{Count: n})
}

func (h *Handler) DisruptionDays(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromQuery(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	days, err := h.Disruptions.Days(r.Context(), r.URL.Query().Get("route"), scope.Year, scope.Month)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out := make([]string, 0, days.Len())
	for _, d := range days.Days() {
		out = append(out, domain.FormatDate(d))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) RecordDisruptions(w http.ResponseWriter, r *http.Request) {
	var req RecordDisruptionsRequest
	if !h.decode(w, r, &req) {
		return
	}
	statuses := make([]disruption.FerryStatus, 0, len(req.Statuses))
	for _, s := range req.Statuses {
		d, err := domain.ParseDate(s.Date)
		if err != nil {
			h.fail(w, r, &service.ValidationError{Field: "date", Message: err.Error()})
			return
		}
		statuses = append(statuses, disruption.FerryStatus{Date: d, Route: s.Route, Scheduled: s.Scheduled, Operated: s.Operated})
	}
	if err := h.Disruptions.Record(r.Context(), statuses...); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, CountDTO{Count: len(statuses)})
}

// =============================================================================
// HELPERS
// =============================================================================

func scopeFromQuery(q url.Values) (app.Scope, error) {
	year, err := intParam(q, "year")
	if err != nil {
		return app.Scope{}, err
	}
	month, err := intParam(q, "month")
	if err != nil {
		return app.Scope{}, err
	}
	return app.Scope{Year: year, Month: time.Month(month), Island: q.Get("island"), Post: q.Get("post")}, nil
}

func reportFromQuery(q url.Values) (app.ReportRequest, error) {
	scope, err := scopeFromQuery(q)
	if err != nil {
		return app.ReportRequest{}, err
	}
	period, err := domain.ParsePeriod(q.Get("period"))
	if err != nil {
		return app.ReportRequest{}, &service.ValidationError{Field: "period", Message: err.Error()}
	}
	return app.ReportRequest{
		Year:   scope.Year,
		Month:  scope.Month,
		Period: period,
		Island: scope.Island,
		Post:   scope.Post,
		Note:   q.Get("note"),
	}, nil
}

func intParam(q url.Values, name string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, &service.ValidationError{Field: name, Message: "is required"}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &service.ValidationError{Field: name, Message: "must be a number"}
	}
	return n, nil
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return false
	}
	return true
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrSourceUnavailable), errors.Is(err, sheet.ErrReadFailed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError && h.Logger != nil {
		h.Logger.ErrorContext(r.Context(), "request_failed", "path", r.URL.Path, "status", status, "error", err.Error())
	}
	resp := ErrorResponse{Error: http.StatusText(status), Details: err.Error()}
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		resp.Field = ve.Field
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
