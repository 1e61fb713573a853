// Package report lays reconciled days out as the monthly operations sheet
// of a post: a fixed-column grid split into pages, with a title block on
// the first page, the column header repeated on every page and a signature
// footer at the end.
package report

import "github.com/geopark-ops/guidelog/internal/reconcile"

// Layout holds page geometry in millimetres.
type Layout struct {
	PageWidth    float64
	PageHeight   float64
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64

	TitleLineHeight float64
	HeaderRowHeight float64
	RowHeight       float64
	FooterHeight    float64

	DayWidth     float64
	WeekdayWidth float64

	Slots int
}

// DefaultLayout is A4 portrait.
func DefaultLayout() Layout {
	return Layout{
		PageWidth:       210,
		PageHeight:      297,
		MarginTop:       12,
		MarginBottom:    12,
		MarginLeft:      10,
		MarginRight:     10,
		TitleLineHeight: 8,
		HeaderRowHeight: 7,
		RowHeight:       8,
		FooterHeight:    14,
		DayWidth:        10,
		WeekdayWidth:    10,
		Slots:           reconcile.DefaultSlotCount,
	}
}

func (l Layout) slots() int {
	if l.Slots <= 0 {
		return reconcile.DefaultSlotCount
	}
	return l.Slots
}

// Columns is day + weekday + one plan and one result column per slot.
func (l Layout) Columns() int { return 2 + 2*l.slots() }

func (l Layout) top() float64    { return l.MarginTop }
func (l Layout) bottom() float64 { return l.PageHeight - l.MarginBottom }

// SlotWidth splits the width left after the day and weekday columns evenly.
func (l Layout) SlotWidth() float64 {
	usable := l.PageWidth - l.MarginLeft - l.MarginRight - l.DayWidth - l.WeekdayWidth
	return usable / float64(2*l.slots())
}

// colX returns the left edge and width of a cell starting at col spanning
// span columns.
func (l Layout) colX(col, span int) (float64, float64) {
	widths := make([]float64, l.Columns())
	widths[0] = l.DayWidth
	widths[1] = l.WeekdayWidth
	for i := 2; i < len(widths); i++ {
		widths[i] = l.SlotWidth()
	}
	x := l.MarginLeft
	for i := 0; i < col; i++ {
		x += widths[i]
	}
	w := 0.0
	for i := col; i < col+span && i < len(widths); i++ {
		w += widths[i]
	}
	return x, w
}

// ColumnWidth is the width in millimetres of a single column.
func (l Layout) ColumnWidth(col int) float64 {
	_, w := l.colX(col, 1)
	return w
}
