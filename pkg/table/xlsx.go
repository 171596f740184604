package table

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadSheet reads one worksheet of an XLSX workbook into a Table. An empty
// sheet name selects the first sheet in the workbook.
func ReadSheet(path, sheet string, opts Options) (Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return Table{}, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return Table{}, fmt.Errorf("failed to read sheet %q of %s: %w", sheet, path, err)
	}
	if len(rows) == 0 {
		return Table{}, fmt.Errorf("sheet %q of %s is empty", sheet, path)
	}

	t, err := trim(rows, opts)
	if err != nil {
		return Table{}, fmt.Errorf("sheet %q of %s: %w", sheet, path, err)
	}
	return t, nil
}
