package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/geopark-ops/guidelog/internal/cli/formatter"
	"github.com/geopark-ops/guidelog/internal/disruption"
	"github.com/spf13/cobra"
)

func newDisruptionCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disruption",
		Short: "Record and list ferry disruption days",
	}

	cmd.AddCommand(
		newDisruptionAddCmd(a),
		newDisruptionDaysCmd(a),
	)

	return cmd
}

func newDisruptionAddCmd(a *App) *cobra.Command {
	var route string
	var scheduled, operated int
	date := &dateValue{}

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Record how many departures of a route sailed on a day",
		Example: `  guidelog disruption add --date 2025-03-20 --route 인천-백령 --scheduled 2 --operated 0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("route") {
				route = a.route()
			}
			status := disruption.FerryStatus{Date: date.t, Route: route, Scheduled: scheduled, Operated: operated}
			if err := a.Disruptions.Record(cmd.Context(), status); err != nil {
				return err
			}
			state := formatter.StyleGreen.Render("정상 운항")
			if status.Disrupted() {
				state = formatter.StyleRed.Render("결항")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %d/%d %s\n", formatter.DayLabel(status.Date), route, operated, scheduled, state)
			return nil
		},
	}

	cmd.Flags().Var(date, "date", "Day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&route, "route", "", "Ferry route (default from config)")
	cmd.Flags().IntVar(&scheduled, "scheduled", 1, "Departures scheduled")
	cmd.Flags().IntVar(&operated, "operated", 0, "Departures that sailed")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newDisruptionDaysCmd(a *App) *cobra.Command {
	var route string
	month := newMonthValue(a.now())

	cmd := &cobra.Command{
		Use:   "days",
		Short: "List the disrupted days of a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("route") {
				route = a.route()
			}
			days, err := a.Disruptions.Days(cmd.Context(), route, month.year, month.month)
			if err != nil {
				return err
			}
			if days.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No disruption days.")
				return nil
			}
			labels := make([]string, 0, days.Len())
			for _, d := range days.Days() {
				labels = append(labels, strconv.Itoa(d.Day()))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s 결항일: %s\n", formatter.MonthLabel(month.year, month.month), strings.Join(labels, ", "))
			return nil
		},
	}

	cmd.Flags().Var(month, "month", "Month (default current month)")
	cmd.Flags().StringVar(&route, "route", "", "Ferry route (default from config)")

	return cmd
}
