package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/muhammadolammi/resumestatus/internal/review"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// XLSX is a Backend over a tab of a local Excel workbook. The file is
// reopened on every call so edits made outside the process are picked up.
type XLSX struct {
	tabular
	path string
	tab  string
	mu   sync.Mutex
}

func NewXLSX(path, tab string, log *zap.Logger) *XLSX {
	if tab == "" {
		tab = DefaultTab
	}
	if log == nil {
		log = zap.NewNop()
	}
	x := &XLSX{path: path, tab: tab}
	x.tabular = tabular{name: "xlsx", t: x, log: log}
	return x
}

func (x *XLSX) readRows(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	x.mu.Lock()
	defer x.mu.Unlock()

	f, err := excelize.OpenFile(x.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", x.path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(x.tab)
	if err != nil {
		return nil, fmt.Errorf("read tab %s: %w", x.tab, err)
	}
	return rows, nil
}

func (x *XLSX) writeRow(ctx context.Context, sheetRow int, u review.Update) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	x.mu.Lock()
	defer x.mu.Unlock()

	f, err := excelize.OpenFile(x.path)
	if err != nil {
		return fmt.Errorf("open workbook %s: %w", x.path, err)
	}
	defer f.Close()

	values := []string{u.ResumeLink, string(u.Status), u.Feedback}
	for i, v := range values {
		cellName, err := excelize.CoordinatesToCellName(colResumeLink+1+i, sheetRow)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(x.tab, cellName, v); err != nil {
			return fmt.Errorf("set %s: %w", cellName, err)
		}
	}
	return f.Save()
}

// WriteWorkbook creates a workbook at path with a header row and one row
// per record on the given tab.
func WriteWorkbook(path, tab string, records []review.Record) error {
	if tab == "" {
		tab = DefaultTab
	}
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(tab); err != nil {
		return err
	}
	if tab != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}
	index, err := f.GetSheetIndex(tab)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	rows := [][]string{Header}
	for _, rec := range records {
		rows = append(rows, RowFromRecord(rec))
	}
	for r, row := range rows {
		for c, v := range row {
			cellName, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(tab, cellName, v); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}
