// Package table provides a minimal tabular abstraction over delimited and
// spreadsheet inputs: a header row plus data rows, with optional leading and
// trailing junk rows skipped at read time.
package table

import "fmt"

// Table holds one materialized tabular source.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Options controls how a raw source is turned into a Table.
type Options struct {
	// SkipHead drops this many rows before the header row.
	SkipHead int
	// SkipFoot drops this many rows from the end of the data.
	SkipFoot int
	// Delimiter for CSV sources. Zero means comma.
	Delimiter rune
}

// ColumnIndex returns the position of a header, or false if absent.
func (t Table) ColumnIndex(name string) (int, bool) {
	for i, h := range t.Headers {
		if h == name {
			return i, true
		}
	}
	return 0, false
}

// Cell returns the value at (row, col), or "" when the row is shorter than
// the header. Exports frequently omit trailing empty cells.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Column returns all values of the named column in row order.
func (t Table) Column(name string) ([]string, error) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, fmt.Errorf("table has no column %q", name)
	}
	values := make([]string, len(t.Rows))
	for i := range t.Rows {
		values[i] = t.Cell(i, idx)
	}
	return values, nil
}

// trim applies SkipHead/SkipFoot and splits off the header row.
func trim(records [][]string, opts Options) (Table, error) {
	if opts.SkipHead < 0 || opts.SkipFoot < 0 {
		return Table{}, fmt.Errorf("negative skip counts (head=%d, foot=%d)", opts.SkipHead, opts.SkipFoot)
	}
	if opts.SkipHead >= len(records) {
		return Table{}, fmt.Errorf("skip_head=%d leaves no header row (%d rows total)", opts.SkipHead, len(records))
	}
	records = records[opts.SkipHead:]
	header := records[0]
	body := records[1:]
	if opts.SkipFoot > len(body) {
		return Table{}, fmt.Errorf("skip_foot=%d exceeds %d data rows", opts.SkipFoot, len(body))
	}
	body = body[:len(body)-opts.SkipFoot]
	return Table{Headers: header, Rows: body}, nil
}
