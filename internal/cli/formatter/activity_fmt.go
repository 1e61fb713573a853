package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/shopspring/decimal"
)

// FormatActivityList renders activity rows with a totals line under the
// table.
func FormatActivityList(title string, logs []domain.ActivityLogEntry) string {
	headers := []string{"날짜", "안내소", "해설사", "시간", "방문객", "청취", "해설", "분류", "상태"}
	rows := make([][]string, 0, len(logs))
	hours := decimal.Zero
	visitors := 0
	for _, l := range logs {
		hours = hours.Add(l.Hours)
		visitors += l.Visitors
		rows = append(rows, []string{
			DayLabel(l.Date),
			l.Post,
			Bold(l.Person),
			Hours(l.Hours),
			strconv.Itoa(l.Visitors),
			strconv.Itoa(l.Listeners),
			strconv.Itoa(l.NarrationCount),
			strings.Join(l.Tags, ", "),
			LogStatusPill(l.Status),
		})
	}
	body := RenderTable(headers, rows)
	body += "\n" + Dim(fmt.Sprintf("합계 %s · 방문객 %d명", Hours(hours), visitors))
	return RenderBox(fmt.Sprintf("%s (%d건)", title, len(logs)), body)
}
