package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ReadCSV reads a delimited source into a Table. Records may have varying
// field counts; short rows read as empty cells through Table.Cell.
func ReadCSV(r io.Reader, opts Options) (Table, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	// Export tools pad or truncate rows inconsistently.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("empty csv source")
	}
	return trim(records, opts)
}

// ReadCSVFile reads a CSV file from disk.
func ReadCSVFile(path string, opts Options) (Table, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Table{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	t, err := ReadCSV(f, opts)
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
