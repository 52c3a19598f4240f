// internal/sheet/xlsx.go
package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// OpenWorkbook loads every sheet of an xlsx file into typed rows.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file %s: %w", path, err)
	}
	defer f.Close()

	wb := &Workbook{Path: path}
	for _, name := range f.GetSheetList() {
		s, err := readSheet(f, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s of %s: %w", name, path, err)
		}
		wb.Sheets = append(wb.Sheets, s)
	}
	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("xlsx file %s has no sheets", path)
	}
	return wb, nil
}

func readSheet(f *excelize.File, name string) (Sheet, error) {
	s := Sheet{Name: name}

	rows, err := f.Rows(name)
	if err != nil {
		return s, fmt.Errorf("failed to read rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		record, err := rows.Columns()
		if err != nil {
			return s, fmt.Errorf("failed to read row: %w", err)
		}
		row := make(Row, len(record))
		for i, raw := range record {
			row[i] = Classify(raw)
		}
		s.Rows = append(s.Rows, row)
	}
	if err := rows.Error(); err != nil {
		return s, fmt.Errorf("error iterating rows: %w", err)
	}

	return s, nil
}

// Active returns the first sheet of the workbook. Single-sheet exports such
// as the depletion report are read through this.
func (w *Workbook) Active() Sheet {
	return w.Sheets[0]
}
