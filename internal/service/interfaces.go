package service

import (
	"context"
	"io"
	"time"

	"github.com/geopark-ops/guidelog/internal/app"
	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/geopark-ops/guidelog/internal/disruption"
)

type ScheduleService interface {
	SubmitPlan(ctx context.Context, req app.PlanSubmission) (*app.SubmitResult, error)
	RegisterSubstitution(ctx context.Context, req app.SubstitutionRequest) (*domain.ScheduleEntry, error)
	Cancel(ctx context.Context, keys []domain.EntryKey) (int, error)
	Approve(ctx context.Context, scope app.Scope) (int, error)
	List(ctx context.Context, scope app.Scope) ([]domain.ScheduleEntry, error)
}

type ActivityService interface {
	Submit(ctx context.Context, req app.ActivitySubmission) (*app.SubmitResult, error)
	Approve(ctx context.Context, scope app.Scope) (int, error)
	List(ctx context.Context, scope app.Scope) ([]domain.ActivityLogEntry, error)
	ListByPerson(ctx context.Context, person string, scope app.Scope) ([]domain.ActivityLogEntry, error)
	ListPending(ctx context.Context, scope app.Scope) ([]domain.ActivityLogEntry, error)
}

type ReportService interface {
	Monthly(ctx context.Context, req app.ReportRequest) (*app.MonthlyReport, error)
	// Print writes the printable workbook. It refuses with
	// ErrSourceUnavailable rather than print a partial month.
	Print(ctx context.Context, req app.ReportRequest, w io.Writer) (*app.MonthlyReport, error)
}

type StatsService interface {
	Monthly(ctx context.Context, req app.StatsRequest) (*app.StatsResponse, error)
}

type RosterService interface {
	Add(ctx context.Context, guides ...domain.Guide) (int, error)
	List(ctx context.Context, island string) ([]domain.Guide, error)
	Get(ctx context.Context, name string) (*domain.Guide, error)
}

type DisruptionService interface {
	Record(ctx context.Context, statuses ...disruption.FerryStatus) error
	Days(ctx context.Context, route string, year int, month time.Month) (disruption.DaySet, error)
}
