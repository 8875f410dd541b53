package analysis

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberPattern is the accepted numeric grammar: optional sign, digits with an
// optional decimal point, optional exponent. It rejects the hex, inf, nan and
// underscore forms strconv would otherwise take.
var numberPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !numberPattern.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Infer classifies one column of raw cells and converts its present values.
// It never fails: all-missing and empty columns come back Categorical with no
// levels.
func Infer(name string, cells []Cell, opt Options) *TypedColumn {
	col := &TypedColumn{Name: name, Kind: Categorical, Values: make([]Value, len(cells))}
	present := 0
	for _, c := range cells {
		if c.Present {
			present++
		}
	}
	col.Missing = len(cells) - present
	if present == 0 {
		return col
	}

	if nums, ok := inferNumeric(cells); ok {
		col.Kind = Numeric
		for i, c := range cells {
			if c.Present {
				col.Values[i] = Float(nums[i])
			}
		}
		return col
	}

	if vocab, ok := inferBoolean(cells, opt); ok {
		col.Kind = Boolean
		for i, c := range cells {
			if c.Present {
				col.Values[i] = Bool(vocab[strings.ToLower(strings.TrimSpace(c.Text))])
			}
		}
		return col
	}

	for i, c := range cells {
		if c.Present {
			col.Values[i] = Category(c.Text)
		}
	}
	return col
}

func inferNumeric(cells []Cell) ([]float64, bool) {
	nums := make([]float64, len(cells))
	for i, c := range cells {
		if !c.Present {
			continue
		}
		f, ok := parseNumber(c.Text)
		if !ok {
			return nil, false
		}
		nums[i] = f
	}
	return nums, true
}

// inferBoolean accepts the column when its distinct lower-cased values are a
// subset of the vocabulary and there are at most two of them.
func inferBoolean(cells []Cell, opt Options) (map[string]bool, bool) {
	vocab := opt.boolVocabulary()
	distinct := make(map[string]struct{}, 2)
	for _, c := range cells {
		if !c.Present {
			continue
		}
		v := strings.ToLower(strings.TrimSpace(c.Text))
		if _, ok := vocab[v]; !ok {
			return nil, false
		}
		distinct[v] = struct{}{}
		if len(distinct) > 2 {
			return nil, false
		}
	}
	return vocab, true
}

// InferTable infers every column of t concurrently and returns them in table
// order.
func InferTable(ctx context.Context, t *RawTable, opt Options) ([]*TypedColumn, error) {
	names := t.Columns()
	out := make([]*TypedColumn, len(names))
	err := forEach(ctx, len(names), opt.workers(), func(i int) {
		out[i] = Infer(names[i], t.cells[i], opt)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Lookup finds a column by name.
func Lookup(cols []*TypedColumn, name string) (*TypedColumn, error) {
	for _, c := range cols {
		if c.Name == name {
			return c, nil
		}
	}
	avail := make([]string, len(cols))
	for i, c := range cols {
		avail[i] = c.Name
	}
	return nil, &SchemaError{Variable: name, Available: avail}
}

// NumericColumns keeps only the Numeric columns, preserving order.
func NumericColumns(cols []*TypedColumn) []*TypedColumn {
	var out []*TypedColumn
	for _, c := range cols {
		if c.Kind == Numeric {
			out = append(out, c)
		}
	}
	return out
}

// ColumnTypeInfo describes one column for the types listing.
type ColumnTypeInfo struct {
	Variable string
	Kind     Kind
	Unique   int
	Levels   []string
}

// maxListedLevels bounds how many levels DescribeTypes spells out.
const maxListedLevels = 20

// DescribeTypes summarizes the inferred kind and levels of each column.
// Levels are listed for non-numeric columns with at most 20 distinct values.
func DescribeTypes(cols []*TypedColumn) []ColumnTypeInfo {
	out := make([]ColumnTypeInfo, 0, len(cols))
	for _, c := range cols {
		levels := c.Levels()
		info := ColumnTypeInfo{Variable: c.Name, Kind: c.Kind, Unique: len(levels)}
		if c.Kind != Numeric && len(levels) <= maxListedLevels {
			info.Levels = levels
		}
		out = append(out, info)
	}
	return out
}
