package formatter

import (
	"fmt"

	"github.com/geopark-ops/guidelog/internal/app"
	"github.com/geopark-ops/guidelog/internal/domain"
)

// FormatPlanList renders planned entries in a box. Substitutes show the
// guide they replaced.
func FormatPlanList(entries []domain.ScheduleEntry) string {
	headers := []string{"날짜", "섬", "안내소", "해설사", "근무", "상태", "비고"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		person := Bold(e.Person)
		if e.IsSubstitute() {
			person += Dim(fmt.Sprintf(" (대신: %s)", e.OriginalPerson))
		}
		rows = append(rows, []string{
			DayLabel(e.Date),
			e.Island,
			e.Post,
			person,
			e.Shift.DisplayText(),
			PlanStatusPill(e.Status),
			e.Note,
		})
	}
	return RenderBox(fmt.Sprintf("근무 계획 (%d건)", len(entries)), RenderTable(headers, rows))
}

// FormatSubmitResult renders the one-line outcome of a batch submission.
func FormatSubmitResult(what string, r *app.SubmitResult) string {
	line := fmt.Sprintf("%s %s: %d건 저장", StyleGreen.Render("✔"), what, r.Saved)
	if r.Replaced > 0 {
		line += fmt.Sprintf(", %d건 교체", r.Replaced)
	}
	if r.Skipped > 0 {
		line += fmt.Sprintf(", %d건 제외", r.Skipped)
	}
	return line + Dim(" ["+r.BatchID+"]")
}

func FormatRoster(guides []domain.Guide) string {
	headers := []string{"이름", "섬", "역할"}
	rows := make([][]string, 0, len(guides))
	for _, g := range guides {
		rows = append(rows, []string{Bold(g.Name), g.Island, g.Role.Label()})
	}
	return RenderBox(fmt.Sprintf("해설사 명단 (%d명)", len(guides)), RenderTable(headers, rows))
}
