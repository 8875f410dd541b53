package analysis

import (
	"fmt"
	"strings"
)

// Cell is one raw value of a table: either text or the explicit missing marker.
type Cell struct {
	Text    string
	Present bool
}

// Text returns a present cell holding s.
func Text(s string) Cell { return Cell{Text: s, Present: true} }

// Missing returns the missing marker.
func Missing() Cell { return Cell{} }

// RawTable is loader output: ordered, uniquely named columns of raw cells.
// It is never modified after construction.
type RawTable struct {
	Name    string
	columns []string
	cells   [][]Cell // column-major
	index   map[string]int
	rows    int
}

// NewRawTable validates names and column lengths and returns a table.
// cells is column-major: cells[i] holds the values of names[i].
func NewRawTable(name string, names []string, cells [][]Cell) (*RawTable, error) {
	if len(names) != len(cells) {
		return nil, fmt.Errorf("table %q: %d column names for %d columns", name, len(names), len(cells))
	}
	t := &RawTable{
		Name:    name,
		columns: make([]string, len(names)),
		cells:   make([][]Cell, len(cells)),
		index:   make(map[string]int, len(names)),
	}
	for i, n := range names {
		if strings.TrimSpace(n) == "" {
			return nil, fmt.Errorf("table %q: column %d has an empty name", name, i+1)
		}
		if _, dup := t.index[n]; dup {
			return nil, fmt.Errorf("table %q: duplicate column name %q", name, n)
		}
		if i > 0 && len(cells[i]) != len(cells[0]) {
			return nil, fmt.Errorf("table %q: column %q has %d rows, want %d", name, n, len(cells[i]), len(cells[0]))
		}
		t.index[n] = i
		t.columns[i] = n
		t.cells[i] = cells[i]
	}
	if len(cells) > 0 {
		t.rows = len(cells[0])
	}
	return t, nil
}

// FromRows builds a table from row-major records. A record shorter than the
// header is padded with missing cells; isMissing decides which texts are absent.
func FromRows(name string, header []string, records [][]string, isMissing func(string) bool) (*RawTable, error) {
	cells := make([][]Cell, len(header))
	for j := range cells {
		cells[j] = make([]Cell, len(records))
	}
	for i, rec := range records {
		if len(rec) > len(header) {
			return nil, fmt.Errorf("table %q: row %d has %d fields, want %d", name, i+1, len(rec), len(header))
		}
		for j := range header {
			if j >= len(rec) || isMissing(rec[j]) {
				continue
			}
			cells[j][i] = Text(rec[j])
		}
	}
	return NewRawTable(name, header, cells)
}

// Columns returns the column names in table order.
func (t *RawTable) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Rows is the uniform row count.
func (t *RawTable) Rows() int { return t.rows }

// Has reports whether the table has a column with the given name.
func (t *RawTable) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the raw cells of a column.
func (t *RawTable) Column(name string) ([]Cell, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, &SchemaError{Variable: name, Table: t.Name, Available: t.Columns()}
	}
	return t.cells[i], nil
}

// Select returns a table restricted to names, in the given order.
// An empty selection returns t itself.
func (t *RawTable) Select(names []string) (*RawTable, error) {
	if len(names) == 0 {
		return t, nil
	}
	cols := make([][]Cell, 0, len(names))
	kept := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		c, err := t.Column(n)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
		kept = append(kept, n)
	}
	sel, err := NewRawTable(t.Name, kept, cols)
	if err != nil {
		return nil, err
	}
	sel.rows = t.rows
	return sel, nil
}
