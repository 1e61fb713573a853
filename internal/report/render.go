package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/geopark-ops/guidelog/internal/reconcile"
)

type LineKind string

const (
	LineTitle  LineKind = "title"
	LineHeader LineKind = "header"
	LineRow    LineKind = "row"
	LineFooter LineKind = "footer"
)

// Cell is one box of the grid. Multi-line cells keep the box of a
// single-line cell and divide its height between their lines.
type Cell struct {
	Col        int
	Span       int
	X          float64
	W          float64
	Lines      []string
	LineHeight float64
	Border     bool
}

func (c Cell) Text() string { return strings.Join(c.Lines, "\n") }

type Line struct {
	Kind   LineKind
	Y      float64
	Height float64
	Cells  []Cell
}

type Page struct {
	Number int
	Lines  []Line
}

type Document struct {
	Layout Layout
	Title  string
	Pages  []Page
}

// Input is everything one monthly sheet shows.
type Input struct {
	PostName    string
	Note        string
	Year        int
	Month       time.Month
	PeriodLabel string
	Days        []reconcile.Day
}

const (
	footerWriter  = "작성자:                (인)"
	footerChecker = "확인자:                (인)"
)

// Render lays in out on pages of layout. It does no I/O and identical input
// yields an identical Document.
func Render(in Input, layout Layout) Document {
	r := renderer{layout: layout, owners: reconcile.Owners(in.Days, layout.slots())}
	r.doc.Layout = layout
	r.doc.Title = fmt.Sprintf("%s 운영일지", in.PostName)

	r.newPage()
	note := in.Note
	if strings.TrimSpace(note) == "" {
		note = "-"
	}
	for _, text := range []string{
		r.doc.Title,
		fmt.Sprintf("%d년 %d월 %s", in.Year, int(in.Month), in.PeriodLabel),
		"특이사항: " + note,
	} {
		r.emit(LineTitle, layout.TitleLineHeight, []Cell{r.cell(0, layout.Columns(), text, layout.TitleLineHeight, false)})
	}
	r.header()

	for _, d := range in.Days {
		if r.y+layout.RowHeight > layout.bottom() {
			r.newPage()
			r.header()
		}
		r.emit(LineRow, layout.RowHeight, r.dayCells(d))
	}

	if r.y+layout.FooterHeight > layout.bottom() {
		r.newPage()
	}
	half := layout.Columns() / 2
	r.emit(LineFooter, layout.FooterHeight, []Cell{
		r.cell(0, half, footerWriter, layout.FooterHeight, false),
		r.cell(half, layout.Columns()-half, footerChecker, layout.FooterHeight, false),
	})
	return r.doc
}

type renderer struct {
	layout Layout
	owners []string
	doc    Document
	y      float64
}

func (r *renderer) newPage() {
	r.doc.Pages = append(r.doc.Pages, Page{Number: len(r.doc.Pages) + 1})
	r.y = r.layout.top()
}

func (r *renderer) emit(kind LineKind, height float64, cells []Cell) {
	p := &r.doc.Pages[len(r.doc.Pages)-1]
	p.Lines = append(p.Lines, Line{Kind: kind, Y: r.y, Height: height, Cells: cells})
	r.y += height
}

func (r *renderer) cell(col, span int, text string, height float64, border bool) Cell {
	x, w := r.layout.colX(col, span)
	lines := strings.Split(text, "\n")
	return Cell{
		Col:        col,
		Span:       span,
		X:          x,
		W:          w,
		Lines:      lines,
		LineHeight: height / float64(len(lines)),
		Border:     border,
	}
}

// header emits the two-row column header.
func (r *renderer) header() {
	n := r.layout.slots()
	h := r.layout.HeaderRowHeight
	r.emit(LineHeader, h, []Cell{
		r.cell(0, 1, "일", h, true),
		r.cell(1, 1, "요일", h, true),
		r.cell(2, n, "계획", h, true),
		r.cell(2+n, n, "실적", h, true),
	})
	cells := []Cell{r.cell(0, 1, "", h, true), r.cell(1, 1, "", h, true)}
	for i := 0; i < n; i++ {
		cells = append(cells, r.cell(2+i, 1, r.owners[i], h, true))
	}
	for i := 0; i < n; i++ {
		cells = append(cells, r.cell(2+n+i, 1, r.owners[i], h, true))
	}
	r.emit(LineHeader, h, cells)
}

func (r *renderer) dayCells(d reconcile.Day) []Cell {
	n := r.layout.slots()
	h := r.layout.RowHeight
	cells := []Cell{
		r.cell(0, 1, strconv.Itoa(d.Date.Day()), h, true),
		r.cell(1, 1, d.Weekday, h, true),
	}
	for i := 0; i < n; i++ {
		cells = append(cells, r.cell(2+i, 1, slotAt(d, i).Plan, h, true))
	}
	for i := 0; i < n; i++ {
		cells = append(cells, r.cell(2+n+i, 1, slotAt(d, i).Result, h, true))
	}
	return cells
}

func slotAt(d reconcile.Day, i int) reconcile.Slot {
	if i < len(d.Slots) {
		return d.Slots[i]
	}
	return reconcile.Slot{}
}

// Grid flattens in into a header row and one row per day, for on-screen
// tables.
func Grid(in Input, slots int) ([]string, [][]string) {
	if slots <= 0 {
		slots = reconcile.DefaultSlotCount
	}
	owners := reconcile.Owners(in.Days, slots)
	header := []string{"일", "요일"}
	for _, o := range owners {
		header = append(header, strings.TrimSpace("계획 "+o))
	}
	for _, o := range owners {
		header = append(header, strings.TrimSpace("실적 "+o))
	}
	rows := make([][]string, 0, len(in.Days))
	for _, d := range in.Days {
		row := []string{strconv.Itoa(d.Date.Day()), d.Weekday}
		for i := 0; i < slots; i++ {
			row = append(row, slotAt(d, i).Plan)
		}
		for i := 0; i < slots; i++ {
			row = append(row, slotAt(d, i).Result)
		}
		rows = append(rows, row)
	}
	return header, rows
}
