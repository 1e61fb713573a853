package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/geopark-ops/guidelog/internal/app"
	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/geopark-ops/guidelog/internal/reconcile"
	"github.com/geopark-ops/guidelog/internal/report"
	"github.com/geopark-ops/guidelog/internal/repository"
)

type reportService struct {
	plans     repository.ScheduleRepo
	logs      repository.ActivityRepo
	locations domain.Locations
	layout    report.Layout
	engine    *reconcile.Engine
	observer  UseCaseObserver
}

// NewReportService reconciles with layout.Slots slots per day, so the grid
// and the printed page always agree on the column count.
func NewReportService(
	plans repository.ScheduleRepo,
	logs repository.ActivityRepo,
	locations domain.Locations,
	layout report.Layout,
	observers ...UseCaseObserver,
) ReportService {
	engine := reconcile.NewEngine(layout.Slots)
	layout.Slots = engine.SlotCount()
	return &reportService{
		plans:     plans,
		logs:      logs,
		locations: locations,
		layout:    layout,
		engine:    engine,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *reportService) Monthly(ctx context.Context, req app.ReportRequest) (rep *app.MonthlyReport, err error) {
	fields := map[string]any{"year": req.Year, "month": int(req.Month), "post": req.Post}
	defer observe(ctx, s.observer, "monthly-report", fields, &err)()

	rep, err = s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	fields["days"] = len(rep.Days)
	fields["pages"] = len(rep.Document.Pages)
	fields["dropped_owners"] = rep.DroppedOwners
	fields["dropped_logs"] = rep.DroppedLogs
	fields["degraded"] = rep.Degraded()
	return rep, nil
}

func (s *reportService) Print(ctx context.Context, req app.ReportRequest, w io.Writer) (rep *app.MonthlyReport, err error) {
	fields := map[string]any{"year": req.Year, "month": int(req.Month), "post": req.Post}
	defer observe(ctx, s.observer, "print-report", fields, &err)()

	rep, err = s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	if rep.Degraded() {
		return rep, fmt.Errorf("printing %s: %w: %s", req.Post, ErrSourceUnavailable, strings.Join(rep.Warnings, "; "))
	}
	if err = report.WriteWorkbook(rep.Document, w); err != nil {
		return rep, fmt.Errorf("writing report workbook: %w", err)
	}
	fields["pages"] = len(rep.Document.Pages)
	return rep, nil
}

// build loads both tables and reconciles them. A table that cannot be read
// leaves its side of the grid empty and is reported as a warning.
func (s *reportService) build(ctx context.Context, req app.ReportRequest) (*app.MonthlyReport, error) {
	req, err := s.normalize(req)
	if err != nil {
		return nil, err
	}
	q := repository.Query{Year: req.Year, Month: req.Month, Island: req.Island, Post: req.Post}
	rep := &app.MonthlyReport{Request: req}

	var plans []domain.ScheduleEntry
	planListing, err := s.plans.ListMonth(ctx, q)
	switch {
	case isUnavailable(err):
		rep.PlanUnavailable = true
		rep.Warnings = append(rep.Warnings, unavailableWarning("schedule", err))
	case err != nil:
		return nil, err
	default:
		plans = planListing.Items
		if planListing.Skipped > 0 {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("%d schedule rows could not be read and were left out", planListing.Skipped))
		}
	}

	var logs []domain.ActivityLogEntry
	logListing, err := s.logs.ListMonth(ctx, q)
	switch {
	case isUnavailable(err):
		rep.LogUnavailable = true
		rep.Warnings = append(rep.Warnings, unavailableWarning("activity log", err))
	case err != nil:
		return nil, err
	default:
		logs = logListing.Items
		if logListing.Skipped > 0 {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("%d activity rows could not be read and were left out", logListing.Skipped))
		}
	}

	rep.Days = s.engine.Month(req.Year, req.Month, req.Period, req.Post, plans, logs)
	rep.DroppedOwners, rep.DroppedLogs = reconcile.Totals(rep.Days)
	if rep.DroppedOwners > 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("%d planned guides did not fit in %d slots", rep.DroppedOwners, s.engine.SlotCount()))
	}
	if rep.DroppedLogs > 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("%d activity entries did not fit in %d slots", rep.DroppedLogs, s.engine.SlotCount()))
	}
	rep.Document = report.Render(rep.Input(), s.layout)
	return rep, nil
}

// normalize fills the island from the post when only the post is given and
// defaults the period to the whole month.
func (s *reportService) normalize(req app.ReportRequest) (app.ReportRequest, error) {
	if err := validateMonth(req.Year, req.Month); err != nil {
		return req, err
	}
	if strings.TrimSpace(req.Post) == "" {
		return req, invalid("post", "is required")
	}
	if req.Period == "" {
		req.Period = domain.PeriodMonth
	}
	if req.Island == "" {
		if island, ok := s.locations.IslandOf(req.Post); ok {
			req.Island = island
		}
	}
	if req.Island != "" {
		if err := s.locations.Validate(req.Island, req.Post); err != nil {
			return req, invalid("post", "%v", err)
		}
	}
	return req, nil
}
