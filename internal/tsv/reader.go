// SPDX-License-Identifier: Apache-2.0

package tsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Table is a fully loaded tab delimited file. Comment lines (starting with
// '#') are skipped, header names are trimmed.
type Table struct {
	Header []string
	Rows   [][]string

	columns map[string]int
}

var ErrEmptyFile = errors.New("file has no header")

func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}

func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.Comment = '#'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	header := make([]string, len(records[0]))
	columns := make(map[string]int, len(header))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
		// the first occurrence of a duplicated column wins
		if _, found := columns[header[i]]; !found {
			columns[header[i]] = i
		}
	}

	return &Table{
		Header:  header,
		Rows:    records[1:],
		columns: columns,
	}, nil
}

// HasColumn reports whether the header contains the column.
func (t *Table) HasColumn(name string) bool {
	_, found := t.columns[name]
	return found
}

// Value returns the raw value of the column in the given row. The boolean is
// false when the column is unknown or the row is too short to hold it.
func (t *Table) Value(row []string, column string) (string, bool) {
	i, found := t.columns[column]
	if !found || i >= len(row) {
		return "", false
	}
	return row[i], true
}

// Records returns one column -> value map per row. Columns missing from short
// rows are absent from the map.
func (t *Table) Records() []map[string]string {
	records := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		record := make(map[string]string, len(t.Header))
		for _, column := range t.Header {
			if v, found := t.Value(row, column); found {
				record[column] = v
			}
		}
		records = append(records, record)
	}
	return records
}
