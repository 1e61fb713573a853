package cli

import (
	"fmt"

	"github.com/geopark-ops/guidelog/internal/app"
	"github.com/geopark-ops/guidelog/internal/cli/formatter"
	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/spf13/cobra"
)

func newPlanCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage planned shifts and substitutions",
	}

	cmd.AddCommand(
		newPlanSubmitCmd(a),
		newPlanSubstituteCmd(a),
		newPlanCancelCmd(a),
		newPlanApproveCmd(a),
		newPlanListCmd(a),
	)

	return cmd
}

// islandFor fills in the island of post when the user left it out.
func (a *App) islandFor(island, post string) string {
	if island != "" {
		return island
	}
	derived, _ := a.locations().IslandOf(post)
	return derived
}

func newPlanSubmitCmd(a *App) *cobra.Command {
	var (
		island, post, person, note string
		draft, interactive         bool
	)
	month := newMonthValue(a.now())
	period := &periodValue{p: domain.PeriodMonth}
	shift := &shiftValue{s: domain.FullDay}
	days := &daysValue{}

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Plan a guide's shifts for some days of a month",
		Example: `  guidelog plan submit --post "두무진 안내소" --person 홍길동 --month 2025-03 --days 3,5,10-12
  guidelog plan submit --post "두무진 안내소" --person 홍길동 --period first_half --shift 오전
  guidelog plan submit --interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				if !a.interactive() {
					return fmt.Errorf("--interactive needs a terminal")
				}
				place := placeForm{Island: island, Post: post}
				if err := wizardSelectPlace(a.locations(), &place).Run(); err != nil {
					return err
				}
				form := planForm{Person: person, Period: string(period.p), Shift: shift.s.Descriptor(), Note: note}
				if err := wizardPlan(&form).Run(); err != nil {
					return err
				}
				island, post, person, note = place.Island, place.Post, form.Person, form.Note
				if err := period.Set(form.Period); err != nil {
					return err
				}
				_ = shift.Set(form.Shift)
				if err := days.Set(form.Days); err != nil {
					return err
				}
			}

			status := domain.PlanSubmitted
			if draft {
				status = domain.PlanDraft
			}
			res, err := a.Schedule.SubmitPlan(cmd.Context(), app.PlanSubmission{
				Island: a.islandFor(island, post),
				Post:   post,
				Person: person,
				Year:   month.year,
				Month:  month.month,
				Days:   days.days,
				Period: period.p,
				Shift:  shift.s,
				Note:   note,
				Status: status,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSubmitResult("근무 계획", res))
			return nil
		},
	}

	cmd.Flags().StringVar(&island, "island", "", "Island (derived from --post when omitted)")
	cmd.Flags().StringVar(&post, "post", "", "Visitor-information post")
	cmd.Flags().StringVar(&person, "person", "", "Guide name")
	cmd.Flags().Var(month, "month", "Month to plan (default current month)")
	cmd.Flags().Var(period, "period", "first_half, second_half or month; used when --days is empty")
	cmd.Flags().Var(days, "days", "Days of the month, e.g. 3,5,10-12")
	cmd.Flags().Var(shift, "shift", "full_day, morning_half, afternoon_half or free text")
	cmd.Flags().StringVar(&note, "note", "", "Note shown with each entry")
	cmd.Flags().BoolVar(&draft, "draft", false, "Save as draft instead of submitting")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill the plan in a form")

	return cmd
}

func newPlanSubstituteCmd(a *App) *cobra.Command {
	var island, post, original, substitute, note string
	date := &dateValue{}
	shift := &shiftValue{}

	cmd := &cobra.Command{
		Use:     "substitute",
		Short:   "Record that one guide works another guide's planned day",
		Example: `  guidelog plan substitute --post "두무진 안내소" --date 2025-03-03 --original 홍길동 --substitute 김영희`,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := a.Schedule.RegisterSubstitution(cmd.Context(), app.SubstitutionRequest{
				Island:     a.islandFor(island, post),
				Post:       post,
				Date:       date.t,
				Original:   original,
				Substitute: substitute,
				Shift:      shift.s,
				Note:       note,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s 대근 등록: %s %s %s → %s (%s)\n",
				formatter.StyleGreen.Render("✔"), formatter.DayLabel(entry.Date), entry.Post,
				entry.OriginalPerson, formatter.Bold(entry.Person), entry.Shift.DisplayText())
			return nil
		},
	}

	cmd.Flags().StringVar(&island, "island", "", "Island (derived from --post when omitted)")
	cmd.Flags().StringVar(&post, "post", "", "Visitor-information post")
	cmd.Flags().Var(date, "date", "Day of the substitution (YYYY-MM-DD)")
	cmd.Flags().StringVar(&original, "original", "", "Guide who was planned")
	cmd.Flags().StringVar(&substitute, "substitute", "", "Guide who works instead")
	cmd.Flags().Var(shift, "shift", "Shift worked (default: the original guide's shift)")
	cmd.Flags().StringVar(&note, "note", "", "Note")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("original")
	_ = cmd.MarkFlagRequired("substitute")

	return cmd
}

func newPlanCancelCmd(a *App) *cobra.Command {
	var post string
	var people []string
	date := &dateValue{}

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Remove planned entries of some guides on one day",
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := make([]domain.EntryKey, 0, len(people))
			for _, p := range people {
				keys = append(keys, domain.EntryKey{Date: date.t, Person: p, Post: post})
			}
			n, err := a.Schedule.Cancel(cmd.Context(), keys)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d건 취소\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&post, "post", "", "Visitor-information post")
	cmd.Flags().Var(date, "date", "Day (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&people, "person", nil, "Guide name (repeatable)")
	_ = cmd.MarkFlagRequired("post")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("person")

	return cmd
}

func newPlanApproveCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve",
		Short: "Approve every plan entry of a month",
	}
	scope := addScopeFlags(cmd, a)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		n, err := a.Schedule.Approve(cmd.Context(), scope.scope())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d건 승인\n", n)
		return nil
	}
	return cmd
}

func newPlanListCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List planned entries of a month",
	}
	scope := addScopeFlags(cmd, a)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		entries, err := a.Schedule.List(cmd.Context(), scope.scope())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No plans found.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlanList(entries))
		return nil
	}
	return cmd
}
