package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/geopark-ops/guidelog/internal/app"
	"github.com/geopark-ops/guidelog/internal/cli/formatter"
	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newLogCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Submit and review actual activity",
	}

	cmd.AddCommand(
		newLogSubmitCmd(a),
		newLogApproveCmd(a),
		newLogListCmd(a),
		newLogPendingCmd(a),
		newLogMineCmd(a),
	)

	return cmd
}

func (f activityRowForm) row() (app.ActivityRow, error) {
	day, err := strconv.Atoi(strings.TrimSpace(f.Day))
	if err != nil {
		return app.ActivityRow{}, fmt.Errorf("bad day %q", f.Day)
	}
	opt, ok := domain.ParseHoursOption(f.Option)
	if !ok {
		return app.ActivityRow{}, fmt.Errorf("unknown hours option %q", f.Option)
	}
	custom := decimal.Zero
	if s := strings.TrimSpace(f.CustomHours); s != "" {
		if custom, err = decimal.NewFromString(s); err != nil {
			return app.ActivityRow{}, fmt.Errorf("bad hours %q", s)
		}
	}
	return app.ActivityRow{
		Day:         day,
		Person:      strings.TrimSpace(f.Person),
		Option:      opt,
		CustomHours: custom,
		Visitors:    parseCount(f.Visitors),
		Listeners:   parseCount(f.Listeners),
		Narrations:  parseCount(f.Narrations),
		Tags:        domain.ParseTags(f.Tags),
	}, nil
}

func newLogSubmitCmd(a *App) *cobra.Command {
	var (
		island, post, person, custom string
		day, visitors, listeners     int
		narrations                   int
		tags                         []string
		interactive                  bool
	)
	month := newMonthValue(a.now())
	hours := &hoursValue{o: domain.HoursFullDay}

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Log a day of actual activity at a post",
		Example: `  guidelog log submit --post "두무진 안내소" --month 2025-03 --day 3 --person 홍길동 --visitors 20 --listeners 12 --narrations 3
  guidelog log submit --post "두무진 안내소" --day 4 --person 홍길동 --hours 직접입력 --custom-hours 6.5
  guidelog log submit --post "두무진 안내소" --interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows []app.ActivityRow
			if interactive {
				if !a.interactive() {
					return fmt.Errorf("--interactive needs a terminal")
				}
				var err error
				if island, post, rows, err = runActivityWizard(a, island, post); err != nil {
					return err
				}
			} else {
				row := activityRowForm{
					Day:         strconv.Itoa(day),
					Person:      person,
					Option:      string(hours.o),
					CustomHours: custom,
					Visitors:    strconv.Itoa(visitors),
					Listeners:   strconv.Itoa(listeners),
					Narrations:  strconv.Itoa(narrations),
					Tags:        strings.Join(tags, ","),
				}
				r, err := row.row()
				if err != nil {
					return err
				}
				// Negative counts reach the service as typed so it can reject them.
				r.Visitors, r.Listeners, r.Narrations = visitors, listeners, narrations
				rows = append(rows, r)
			}

			res, err := a.Activity.Submit(cmd.Context(), app.ActivitySubmission{
				Island: a.islandFor(island, post),
				Post:   post,
				Year:   month.year,
				Month:  month.month,
				Rows:   rows,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSubmitResult("활동 기록", res))
			return nil
		},
	}

	cmd.Flags().StringVar(&island, "island", "", "Island (derived from --post when omitted)")
	cmd.Flags().StringVar(&post, "post", "", "Visitor-information post")
	cmd.Flags().Var(month, "month", "Month of the form (default current month)")
	cmd.Flags().IntVar(&day, "day", 0, "Day of the month")
	cmd.Flags().StringVar(&person, "person", "", "Guide name")
	cmd.Flags().Var(hours, "hours", "8시간, 4시간 or 직접입력")
	cmd.Flags().StringVar(&custom, "custom-hours", "", "Hours worked when --hours is 직접입력")
	cmd.Flags().IntVar(&visitors, "visitors", 0, "Visitors")
	cmd.Flags().IntVar(&listeners, "listeners", 0, "Visitors who listened to a narration")
	cmd.Flags().IntVar(&narrations, "narrations", 0, "Narrations given")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Category tag (repeatable)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill the form row by row")

	return cmd
}

func runActivityWizard(a *App, island, post string) (string, string, []app.ActivityRow, error) {
	place := placeForm{Island: island, Post: post}
	if err := wizardSelectPlace(a.locations(), &place).Run(); err != nil {
		return "", "", nil, err
	}
	var rows []app.ActivityRow
	for {
		var f activityRowForm
		if err := wizardActivityRow(&f).Run(); err != nil {
			return "", "", nil, err
		}
		r, err := f.row()
		if err != nil {
			return "", "", nil, err
		}
		rows = append(rows, r)

		more := false
		if err := wizardConfirm("다른 행을 추가할까요?", &more).Run(); err != nil {
			return "", "", nil, err
		}
		if !more {
			return place.Island, place.Post, rows, nil
		}
	}
}

func newLogApproveCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve",
		Short: "Approve pending activity of a month",
	}
	scope := addScopeFlags(cmd, a)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		n, err := a.Activity.Approve(cmd.Context(), scope.scope())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d건 승인\n", n)
		return nil
	}
	return cmd
}

type logLister func(ctx context.Context, scope app.Scope) ([]domain.ActivityLogEntry, error)

func newLogListingCmd(a *App, use, short, title string, list func(*App) logLister) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}
	scope := addScopeFlags(cmd, a)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		logs, err := list(a)(cmd.Context(), scope.scope())
		if err != nil {
			return err
		}
		if len(logs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No activity found.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatActivityList(title, logs))
		return nil
	}
	return cmd
}

func newLogListCmd(a *App) *cobra.Command {
	return newLogListingCmd(a, "list", "List activity of a month", "활동 기록",
		func(a *App) logLister { return a.Activity.List })
}

func newLogPendingCmd(a *App) *cobra.Command {
	return newLogListingCmd(a, "pending", "List activity waiting for approval", "검토 대기",
		func(a *App) logLister { return a.Activity.ListPending })
}

func newLogMineCmd(a *App) *cobra.Command {
	var person string
	cmd := newLogListingCmd(a, "mine", "List one guide's activity", "내 활동",
		func(a *App) logLister {
			return func(ctx context.Context, scope app.Scope) ([]domain.ActivityLogEntry, error) {
				return a.Activity.ListByPerson(ctx, person, scope)
			}
		})
	cmd.Flags().StringVar(&person, "person", "", "Guide name")
	_ = cmd.MarkFlagRequired("person")
	return cmd
}
