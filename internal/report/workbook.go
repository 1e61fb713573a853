package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	sheetName = "운영일지"
	// mmToPoint converts millimetres to the points excelize row heights use.
	mmToPoint = 72 / 25.4
	// mmPerChar approximates one unit of column width at the default font.
	mmPerChar = 1.9
	paperA4   = 9
)

type workbookStyles struct {
	title     int
	grid      int
	multiLine int
	footer    int
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}

	var s workbookStyles
	var err error
	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return s, fmt.Errorf("creating title style: %w", err)
	}
	if s.grid, err = f.NewStyle(&excelize.Style{
		Border:    border,
		Font:      &excelize.Font{Size: 10},
		Alignment: center,
	}); err != nil {
		return s, fmt.Errorf("creating grid style: %w", err)
	}
	if s.multiLine, err = f.NewStyle(&excelize.Style{
		Border:    border,
		Font:      &excelize.Font{Size: 8},
		Alignment: center,
	}); err != nil {
		return s, fmt.Errorf("creating multi-line style: %w", err)
	}
	if s.footer, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "bottom"},
	}); err != nil {
		return s, fmt.Errorf("creating footer style: %w", err)
	}
	return s, nil
}

// WriteWorkbook writes the document as a printable A4 workbook: one sheet,
// one worksheet row per grid line and a manual page break wherever the
// document starts a new page.
func WriteWorkbook(doc Document, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating report sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	styles, err := newWorkbookStyles(f)
	if err != nil {
		return err
	}

	for col := 0; col < doc.Layout.Columns(); col++ {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, name, name, doc.Layout.ColumnWidth(col)/mmPerChar); err != nil {
			return fmt.Errorf("setting column width: %w", err)
		}
	}

	row := 0
	for pi, page := range doc.Pages {
		if pi > 0 {
			cell, err := excelize.CoordinatesToCellName(1, row+1)
			if err != nil {
				return err
			}
			if err := f.InsertPageBreak(sheetName, cell); err != nil {
				return fmt.Errorf("inserting page break before page %d: %w", page.Number, err)
			}
		}
		for _, line := range page.Lines {
			row++
			if err := f.SetRowHeight(sheetName, row, line.Height*mmToPoint); err != nil {
				return fmt.Errorf("setting row %d height: %w", row, err)
			}
			for _, c := range line.Cells {
				if err := writeCell(f, row, line.Kind, c, styles); err != nil {
					return err
				}
			}
		}
	}

	size, orientation := paperA4, "portrait"
	if err := f.SetPageLayout(sheetName, &excelize.PageLayoutOptions{Size: &size, Orientation: &orientation}); err != nil {
		return fmt.Errorf("setting page layout: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing report workbook: %w", err)
	}
	return nil
}

func writeCell(f *excelize.File, row int, kind LineKind, c Cell, styles workbookStyles) error {
	start, err := excelize.CoordinatesToCellName(c.Col+1, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(c.Col+c.Span, row)
	if err != nil {
		return err
	}
	if c.Span > 1 {
		if err := f.MergeCell(sheetName, start, end); err != nil {
			return fmt.Errorf("merging %s:%s: %w", start, end, err)
		}
	}
	if text := c.Text(); text != "" {
		if err := f.SetCellStr(sheetName, start, text); err != nil {
			return fmt.Errorf("writing %s: %w", start, err)
		}
	}

	style := styles.grid
	switch {
	case kind == LineTitle:
		style = styles.title
	case kind == LineFooter:
		style = styles.footer
	case len(c.Lines) > 1:
		style = styles.multiLine
	}
	if err := f.SetCellStyle(sheetName, start, end, style); err != nil {
		return fmt.Errorf("styling %s: %w", start, err)
	}
	return nil
}
