package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Table is a raw tabular source: a header and rows of string cells in
// header order. Rows may be shorter than the header; missing cells read as
// empty strings.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Column returns the index of the named column, or -1.
func (t Table) Column(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns row[i], or "" when the row has no such cell.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// Value returns the cell of row under the named column.
func (t Table) Value(row []string, column string) string {
	return Cell(row, t.Column(column))
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// LoadCSV reads a CSV file with a header row.
func LoadCSV(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return Table{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return t, nil
}

// ReadCSV parses CSV content with a header row. Quotes are handled leniently
// and rows may have any number of fields.
func ReadCSV(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Table{}, nil
	}
	if err != nil {
		return Table{}, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := Table{Columns: header}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, err
		}
		t.Rows = append(t.Rows, record)
	}
	return t, nil
}
