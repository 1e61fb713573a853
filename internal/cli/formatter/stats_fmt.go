package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/geopark-ops/guidelog/internal/app"
)

func totalsCells(t app.Totals) []string {
	return []string{
		strconv.Itoa(t.Entries),
		Hours(t.Hours),
		strconv.Itoa(t.Visitors),
		strconv.Itoa(t.Listeners),
		strconv.Itoa(t.Narrations),
	}
}

var totalsHeaders = []string{"건수", "시간", "방문객", "청취", "해설"}

// FormatStats renders monthly totals per island and per post, then the
// overall line and the share that fell on ferry disruption days.
func FormatStats(resp *app.StatsResponse) string {
	var b strings.Builder

	rows := make([][]string, 0, len(resp.Islands)+1)
	for _, is := range resp.Islands {
		rows = append(rows, append([]string{Bold(is.Island)}, totalsCells(is.Totals)...))
	}
	rows = append(rows, append([]string{StyleHeader.Render("전체")}, totalsCells(resp.Overall)...))
	b.WriteString(Header("섬별"))
	b.WriteString("\n")
	b.WriteString(RenderTable(append([]string{"섬"}, totalsHeaders...), rows))

	rows = rows[:0]
	for _, ps := range resp.Posts {
		rows = append(rows, append([]string{ps.Island, Bold(ps.Post)}, totalsCells(ps.Totals)...))
	}
	b.WriteString("\n\n")
	b.WriteString(Header("안내소별"))
	b.WriteString("\n")
	b.WriteString(RenderTable(append([]string{"섬", "안내소"}, totalsHeaders...), rows))

	if len(resp.DisruptionDays) > 0 {
		days := make([]string, 0, len(resp.DisruptionDays))
		for _, d := range resp.DisruptionDays {
			days = append(days, strconv.Itoa(d.Day()))
		}
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("결항일 %s일: 방문객 %d명, %s",
			strings.Join(days, ", "), resp.Disrupted.Visitors, Hours(resp.Disrupted.Hours)))
	}
	if resp.Skipped > 0 {
		b.WriteString("\n" + Dim(fmt.Sprintf("읽을 수 없는 행 %d개 제외", resp.Skipped)))
	}
	if w := Warnings(resp.Warnings); w != "" {
		b.WriteString("\n\n" + w)
	}

	return RenderBox("월간 통계 · "+MonthLabel(resp.Request.Year, resp.Request.Month), b.String())
}
