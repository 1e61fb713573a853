package formatter

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const colGap = 2

// RenderTable renders an aligned list table: no outer border, a dim rule
// under the header and a gap between columns.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	cell := lipgloss.NewStyle().PaddingRight(colGap)
	head := StyleHeader.PaddingRight(colGap)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderStyle(StyleDim).
		Headers(headers...).
		Rows(padRows(rows, len(headers))...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return head
			}
			return cell
		})
	return t.String()
}

// RenderGrid renders the reconciled month grid with every cell boxed, so
// multi-line result cells stay readable. The first two columns are the day
// and weekday.
func RenderGrid(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	cell := lipgloss.NewStyle().Padding(0, 1)
	day := cell.Align(lipgloss.Right)
	weekend := day.Foreground(ColorRed)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderRow(true).
		BorderStyle(StyleDim).
		Headers(headers...).
		Rows(padRows(rows, len(headers))...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return StyleHeader.Padding(0, 1)
			case col < 2 && isWeekend(rows, row):
				return weekend
			case col < 2:
				return day
			default:
				return cell
			}
		})
	return t.String()
}

func isWeekend(rows [][]string, row int) bool {
	if row < 0 || row >= len(rows) || len(rows[row]) < 2 {
		return false
	}
	return rows[row][1] == "토" || rows[row][1] == "일"
}

// padRows fills short rows so every row has cols cells.
func padRows(rows [][]string, cols int) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		if len(r) >= cols {
			out[i] = r
			continue
		}
		padded := make([]string, cols)
		copy(padded, r)
		out[i] = padded
	}
	return out
}
