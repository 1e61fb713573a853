package cli

import (
	"fmt"
	"log/slog"

	"github.com/geopark-ops/guidelog/internal/config"
	"github.com/geopark-ops/guidelog/internal/disruption"
	"github.com/geopark-ops/guidelog/internal/repository"
	"github.com/geopark-ops/guidelog/internal/service"
	"github.com/geopark-ops/guidelog/internal/sheet"
)

// NewApp wires repositories and services over store. Use-case events and
// HTTP requests are logged through logger; a nil logger disables both.
func NewApp(cfg *config.Config, store *sheet.Store, logger *slog.Logger) (*App, error) {
	locations := cfg.DomainLocations()
	known, err := cfg.DisruptionDays()
	if err != nil {
		return nil, fmt.Errorf("wiring disruption feed: %w", err)
	}
	recorder := disruption.NewSheetFeed(store)
	feed := disruption.Union{
		disruption.StaticFeed{Route: cfg.Disruption.Route, Days: known},
		recorder,
	}

	observer := service.NewSlogUseCaseObserver(logger)
	plans := repository.NewSheetScheduleRepo(store)
	logs := repository.NewSheetActivityRepo(store)

	return &App{
		Schedule:    service.NewScheduleService(plans, locations, observer),
		Activity:    service.NewActivityService(logs, locations, observer),
		Reports:     service.NewReportService(plans, logs, locations, cfg.Layout(), observer),
		Stats:       service.NewStatsService(logs, feed, locations, observer),
		Roster:      service.NewRosterService(repository.NewSheetRosterRepo(store), locations, observer),
		Disruptions: service.NewDisruptionService(recorder, feed, observer),
		Config:      cfg,
		Logger:      logger,
	}, nil
}
