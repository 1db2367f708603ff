package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Orientation tells the parser which axis of the file carries the row keys.
type Orientation uint8

const (
	// RowKeyed tables use the first cell of each record as the key.
	RowKeyed Orientation = iota
	// ColumnKeyed tables are transposed first, so the header record supplies the keys.
	ColumnKeyed
)

func (o Orientation) String() string {
	switch o {
	case RowKeyed:
		return "row-keyed"
	case ColumnKeyed:
		return "column-keyed"
	default:
		return "unknown"
	}
}

// ParseOptions controls record validation.
type ParseOptions struct {
	// StrictRows rejects records whose field count differs from the header.
	// Without it ragged records are kept and only fail when a lookup runs
	// past their end.
	StrictRows bool
}

// Table maps a row key to the remaining cells of that row in file order.
// The header row is consumed for alignment and never stored.
type Table struct {
	Name        string
	Orientation Orientation

	keys []string
	rows map[string][]string
}

// LoadTable reads a tab-separated file. The file is closed before returning.
func LoadTable(path string, orientation Orientation, opts ParseOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := ParseTable(f, orientation, opts)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	t.Name = filepath.Base(path)
	return t, nil
}

// ParseTable builds a table from tab-separated records read from r.
func ParseTable(r io.Reader, orientation Orientation, opts ParseOptions) (*Table, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, err
	}
	if opts.StrictRows {
		if err := checkRectangular(records); err != nil {
			return nil, err
		}
	}
	if orientation == ColumnKeyed {
		records = Transpose(records)
	}
	return buildTable(records, orientation), nil
}

func readRecords(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return records, nil
}

func checkRectangular(records [][]string) error {
	if len(records) == 0 {
		return nil
	}
	want := len(records[0])
	for i, rec := range records[1:] {
		if len(rec) != want {
			return fmt.Errorf("%w: record %d has %d fields, header has %d", ErrParse, i+2, len(rec), want)
		}
	}
	return nil
}

// Transpose turns columns into records. Like a zip over the records, the
// result is cut to the shortest record so a ragged grid loses its tail columns.
func Transpose(records [][]string) [][]string {
	if len(records) == 0 {
		return nil
	}
	width := len(records[0])
	for _, rec := range records[1:] {
		width = min(width, len(rec))
	}
	out := make([][]string, width)
	for col := 0; col < width; col++ {
		column := make([]string, len(records))
		for row, rec := range records {
			column[row] = rec[col]
		}
		out[col] = column
	}
	return out
}

func buildTable(records [][]string, orientation Orientation) *Table {
	t := &Table{
		Orientation: orientation,
		rows:        make(map[string][]string),
	}
	if len(records) < 2 {
		return t
	}
	for _, rec := range records[1:] {
		if len(rec) == 0 {
			continue
		}
		key := rec[0]
		values := make([]string, len(rec)-1)
		copy(values, rec[1:])
		if _, seen := t.rows[key]; !seen {
			t.keys = append(t.keys, key)
		}
		// Later duplicates win, matching file order.
		t.rows[key] = values
	}
	return t
}

// Len returns the number of distinct keys.
func (t *Table) Len() int { return len(t.keys) }

// Keys returns the row keys in first-seen order.
func (t *Table) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Values returns a copy of the value sequence stored under key.
func (t *Table) Values(key string) ([]string, bool) {
	row, ok := t.rows[key]
	if !ok {
		return nil, false
	}
	out := make([]string, len(row))
	copy(out, row)
	return out, true
}

// Cell returns the value at pos in the row stored under key.
func (t *Table) Cell(key string, pos int) (string, error) {
	row, ok := t.rows[key]
	if !ok {
		return "", fmt.Errorf("%w: %s has no row %q", ErrMissingKey, t.label(), key)
	}
	if pos < 0 || pos >= len(row) {
		return "", fmt.Errorf("%w: %s row %q has %d values, need position %d", ErrMissingKey, t.label(), key, len(row), pos)
	}
	return row[pos], nil
}

// Float parses the cell at (key, pos) as a finite float64.
func (t *Table) Float(key string, pos int) (float64, error) {
	cell, err := t.Cell(key, pos)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s row %q position %d: %q is not a number", ErrParse, t.label(), key, pos, cell)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s row %q position %d: %q is not finite", ErrParse, t.label(), key, pos, cell)
	}
	return v, nil
}

func (t *Table) label() string {
	if t.Name == "" {
		return "table"
	}
	return t.Name
}
