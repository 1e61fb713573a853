package cli

import (
	"fmt"

	"github.com/geopark-ops/guidelog/internal/app"
	"github.com/geopark-ops/guidelog/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatsCmd(a *App) *cobra.Command {
	var island, route string
	month := newMonthValue(a.now())

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Monthly visitor and hour totals per island and post",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("route") {
				route = a.route()
			}
			resp, err := a.Stats.Monthly(cmd.Context(), app.StatsRequest{
				Year:   month.year,
				Month:  month.month,
				Island: island,
				Route:  route,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStats(resp))
			return nil
		},
	}

	cmd.Flags().Var(month, "month", "Month (default current month)")
	cmd.Flags().StringVar(&island, "island", "", "Limit to one island")
	cmd.Flags().StringVar(&route, "route", "", "Ferry route whose disruption days are split out (default from config)")

	return cmd
}
