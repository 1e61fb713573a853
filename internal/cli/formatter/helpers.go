package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/shopspring/decimal"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(title) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// DayLabel renders a date as "2025-03-03 (월)".
func DayLabel(t time.Time) string {
	return fmt.Sprintf("%s (%s)", domain.FormatDate(t), domain.WeekdayLabel(t))
}

// Hours renders an hour total without trailing zeros, e.g. "6.5h".
func Hours(h decimal.Decimal) string {
	return h.String() + "h"
}

// Warnings renders one warning per line, or "" when there are none.
func Warnings(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, 0, len(warnings))
	for _, w := range warnings {
		lines = append(lines, Warn(w))
	}
	return strings.Join(lines, "\n")
}

// MonthLabel renders "2025년 3월".
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%d년 %d월", year, int(month))
}
