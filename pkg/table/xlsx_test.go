package table

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeTestWorkbook creates a workbook with a title row, a header row and two
// data rows on the sheet "Variables".
func writeTestWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Variables"
	if _, err := f.NewSheet(sheet); err != nil {
		t.Fatalf("NewSheet() error = %v", err)
	}
	cells := map[string]string{
		"A1": "Survey 1234 variables",
		"A2": "Variable", "B2": "Label",
		"A3": "Q2", "B3": "Which party?",
		"A4": "col_10", "B4": "Religion",
	}
	for ref, value := range cells {
		if err := f.SetCellValue(sheet, ref, value); err != nil {
			t.Fatalf("SetCellValue(%s) error = %v", ref, err)
		}
	}

	path := filepath.Join(t.TempDir(), "export.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	return path
}

func TestReadSheet(t *testing.T) {
	path := writeTestWorkbook(t)

	got, err := ReadSheet(path, "Variables", Options{SkipHead: 1})
	if err != nil {
		t.Fatalf("ReadSheet() error = %v", err)
	}

	if len(got.Headers) != 2 || got.Headers[0] != "Variable" {
		t.Errorf("Headers = %v, want [Variable Label]", got.Headers)
	}
	if len(got.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(got.Rows))
	}
	if got.Cell(0, 1) != "Which party?" {
		t.Errorf("Cell(0, 1) = %q, want %q", got.Cell(0, 1), "Which party?")
	}
}

func TestReadSheet_UnknownSheet(t *testing.T) {
	path := writeTestWorkbook(t)

	if _, err := ReadSheet(path, "NoSuchSheet", Options{}); err == nil {
		t.Error("ReadSheet() of a missing sheet succeeded, want error")
	}
}

func TestReadSheet_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.xlsx")

	if _, err := ReadSheet(path, "", Options{}); err == nil {
		t.Error("ReadSheet() of a missing file succeeded, want error")
	}
}
