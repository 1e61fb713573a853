package sheet

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// WorkbookBackend stores each table as a worksheet of one .xlsx file. Every
// write saves a complete copy of the workbook next to the target and renames
// it into place, so readers never observe a half-written file.
type WorkbookBackend struct {
	path string
	mu   sync.Mutex
}

func NewWorkbookBackend(path string) *WorkbookBackend {
	return &WorkbookBackend{path: path}
}

func (w *WorkbookBackend) Path() string { return w.path }

func (w *WorkbookBackend) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(w.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", w.path, err)
	}
	return f, nil
}

func (w *WorkbookBackend) ReadTable(ctx context.Context, name string) ([]string, [][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := w.open()
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return nil, nil, fmt.Errorf("locating sheet %s: %w", name, err)
	}
	if idx < 0 {
		return nil, nil, ErrTableNotFound
	}
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("reading sheet %s: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	return rows[0], rows[1:], nil
}

func (w *WorkbookBackend) WriteTable(ctx context.Context, name string, header []string, rows [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := w.open()
	fresh := errors.Is(err, ErrTableNotFound)
	switch {
	case fresh:
		f = excelize.NewFile()
	case err != nil:
		return err
	}
	defer f.Close()

	if err := clearSheet(f, name); err != nil {
		return err
	}
	if err := setRow(f, name, 1, header); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setRow(f, name, i+2, r); err != nil {
			return err
		}
	}
	if fresh && name != defaultSheet {
		idx, _ := f.GetSheetIndex(name)
		f.SetActiveSheet(idx)
		f.DeleteSheet(defaultSheet)
	}
	return w.save(f)
}

// clearSheet empties an existing sheet or creates it. Rows are removed from
// the bottom up so indices stay valid.
func clearSheet(f *excelize.File, name string) error {
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return fmt.Errorf("locating sheet %s: %w", name, err)
	}
	if idx < 0 {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
		return nil
	}
	existing, err := f.GetRows(name)
	if err != nil {
		return fmt.Errorf("reading sheet %s: %w", name, err)
	}
	for r := len(existing); r >= 1; r-- {
		if err := f.RemoveRow(name, r); err != nil {
			return fmt.Errorf("clearing sheet %s row %d: %w", name, r, err)
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []string) error {
	if len(cells) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}

func (w *WorkbookBackend) save(f *excelize.File) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating workbook directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".guidelog-*.xlsx")
	if err != nil {
		return fmt.Errorf("creating temp workbook: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("writing workbook: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing workbook: %w", err)
	}
	if err := os.Rename(tmpName, w.path); err != nil {
		return fmt.Errorf("replacing workbook: %w", err)
	}
	return nil
}
