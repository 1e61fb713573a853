package cli

import (
	"fmt"

	"github.com/geopark-ops/guidelog/internal/cli/formatter"
	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/spf13/cobra"
)

func newRosterCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage the guide roster",
	}

	cmd.AddCommand(
		newRosterAddCmd(a),
		newRosterListCmd(a),
		newRosterShowCmd(a),
	)

	return cmd
}

func newRosterAddCmd(a *App) *cobra.Command {
	var island, roleStr string

	cmd := &cobra.Command{
		Use:   "add NAME...",
		Short: "Add guides to an island's roster, replacing existing entries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var role domain.Role
			if roleStr != "" {
				r, err := domain.ParseRole(roleStr)
				if err != nil {
					return err
				}
				role = r
			}
			guides := make([]domain.Guide, 0, len(args))
			for _, name := range args {
				guides = append(guides, domain.Guide{Name: name, Island: island, Role: role})
			}
			n, err := a.Roster.Add(cmd.Context(), guides...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d명 등록 (%s)\n", n, island)
			return nil
		},
	}

	cmd.Flags().StringVar(&island, "island", "", "Island the guides work on")
	cmd.Flags().StringVar(&roleStr, "role", "", "guide, leader or admin (해설사/조장/관리자)")
	_ = cmd.MarkFlagRequired("island")

	return cmd
}

func newRosterListCmd(a *App) *cobra.Command {
	var island string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List guides",
		RunE: func(cmd *cobra.Command, args []string) error {
			guides, err := a.Roster.List(cmd.Context(), island)
			if err != nil {
				return err
			}
			if len(guides) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No guides found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRoster(guides))
			return nil
		},
	}

	cmd.Flags().StringVar(&island, "island", "", "Only guides of this island")

	return cmd
}

func newRosterShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show one guide",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.Roster.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", formatter.Bold(g.Name), g.Island, g.Role.Label())
			return nil
		},
	}
}
