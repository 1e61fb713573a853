package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/geopark-ops/guidelog/internal/app"
	"github.com/geopark-ops/guidelog/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newReportCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show or print a post's monthly operations sheet",
	}

	cmd.AddCommand(
		newReportShowCmd(a),
		newReportPrintCmd(a),
	)

	return cmd
}

// reportFlags are shared by show and print.
type reportFlags struct {
	month  *monthValue
	period *periodValue
	island string
	post   string
	note   string
}

func addReportFlags(cmd *cobra.Command, a *App) *reportFlags {
	f := &reportFlags{month: newMonthValue(a.now()), period: &periodValue{}}
	cmd.Flags().Var(f.month, "month", "Month of the sheet (default current month)")
	cmd.Flags().Var(f.period, "period", "first_half, second_half or month (default month)")
	cmd.Flags().StringVar(&f.island, "island", "", "Island (derived from --post when omitted)")
	cmd.Flags().StringVar(&f.post, "post", "", "Visitor-information post")
	cmd.Flags().StringVar(&f.note, "note", "", "Special note printed in the header")
	_ = cmd.MarkFlagRequired("post")
	return f
}

func (f *reportFlags) request() app.ReportRequest {
	return app.ReportRequest{
		Year:   f.month.year,
		Month:  f.month.month,
		Period: f.period.p,
		Island: f.island,
		Post:   f.post,
		Note:   f.note,
	}
}

func newReportShowCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the reconciled plan/result grid",
	}
	flags := addReportFlags(cmd, a)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		rep, err := a.Reports.Monthly(cmd.Context(), flags.request())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMonthlyReport(rep))
		return nil
	}
	return cmd
}

func newReportPrintCmd(a *App) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:     "print",
		Short:   "Write the printable sheet as an .xlsx workbook",
		Example: `  guidelog report print --post "두무진 안내소" --month 2025-03 --period first_half --out 두무진-2025-03.xlsx`,
	}
	flags := addReportFlags(cmd, a)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output workbook path")
	_ = cmd.MarkFlagRequired("out")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		f, err := os.CreateTemp(filepath.Dir(out), ".guidelog-*.xlsx")
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		tmp := f.Name()
		defer os.Remove(tmp)

		rep, printErr := a.Reports.Print(cmd.Context(), flags.request(), f)
		closeErr := f.Close()
		if printErr != nil {
			if rep != nil {
				if w := formatter.Warnings(rep.Warnings); w != "" {
					fmt.Fprintln(cmd.ErrOrStderr(), w)
				}
			}
			return printErr
		}
		if closeErr != nil {
			return fmt.Errorf("writing %s: %w", out, closeErr)
		}
		if err := os.Rename(tmp, out); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d쪽)\n", formatter.StyleGreen.Render("✔"), out, len(rep.Document.Pages))
		if w := formatter.Warnings(rep.Warnings); w != "" {
			fmt.Fprintln(cmd.OutOrStdout(), w)
		}
		return nil
	}
	return cmd
}
