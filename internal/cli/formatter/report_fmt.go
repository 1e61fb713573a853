package formatter

import (
	"fmt"
	"strings"

	"github.com/geopark-ops/guidelog/internal/app"
	"github.com/geopark-ops/guidelog/internal/report"
)

// FormatMonthlyReport renders the reconciled grid of one post with its
// header block and any warnings about missing or truncated data.
func FormatMonthlyReport(rep *app.MonthlyReport) string {
	in := rep.Input()
	headers, rows := report.Grid(in, rep.Document.Layout.Slots)

	var b strings.Builder
	b.WriteString(Header(rep.Document.Title))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", MonthLabel(in.Year, in.Month), in.PeriodLabel))
	if strings.TrimSpace(in.Note) != "" {
		b.WriteString(Dim("특이사항: "+in.Note) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(RenderGrid(headers, rows))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("인쇄 시 %d쪽", len(rep.Document.Pages))))
	if w := Warnings(rep.Warnings); w != "" {
		b.WriteString("\n\n" + w)
	}
	return b.String()
}
