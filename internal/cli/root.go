package cli

import (
	"log/slog"
	"time"

	"github.com/geopark-ops/guidelog/internal/config"
	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/geopark-ops/guidelog/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Schedule    service.ScheduleService
	Activity    service.ActivityService
	Reports     service.ReportService
	Stats       service.StatsService
	Roster      service.RosterService
	Disruptions service.DisruptionService

	Config *config.Config
	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal; --interactive
	// forms refuse to run otherwise.
	IsInteractive func() bool
	Now           func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) locations() domain.Locations {
	if a.Config == nil || len(a.Config.Locations) == 0 {
		return domain.DefaultLocations()
	}
	return a.Config.DomainLocations()
}

func (a *App) route() string {
	if a.Config == nil {
		return ""
	}
	return a.Config.Disruption.Route
}

// NewRootCmd creates the top-level "guidelog" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "guidelog",
		Short:         "Park-guide shift plans, activity logs and monthly operation sheets",
		SilenceErrors: true,
	}
	// Read by ConfigPath before the App is built; declared here so cobra
	// accepts it.
	root.PersistentFlags().String("config", "", "Config file (default ./guidelog.yaml or ~/.guidelog/guidelog.yaml)")

	root.AddCommand(
		newPlanCmd(app),
		newLogCmd(app),
		newReportCmd(app),
		newStatsCmd(app),
		newRosterCmd(app),
		newDisruptionCmd(app),
		newServeCmd(app),
	)

	return root
}

// ConfigPath extracts --config from args without knowing the rest of the
// command tree.
func ConfigPath(args []string) string {
	fs := pflag.NewFlagSet("guidelog", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	path := fs.String("config", "", "")
	_ = fs.Parse(args)
	return *path
}
