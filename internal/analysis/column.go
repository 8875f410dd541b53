package analysis

import (
	"sort"
	"strconv"
)

// Kind is the inferred semantic type of a column.
type Kind int

const (
	Categorical Kind = iota
	Numeric
	Boolean
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "Numeric"
	case Boolean:
		return "Boolean"
	default:
		return "Categorical"
	}
}

// Value is a present cell after inference. The concrete type is one of
// Float, Bool or Category; a missing cell is a nil Value.
type Value interface {
	isValue()
	String() string
}

// Float is a numeric value.
type Float float64

// Bool is a boolean value.
type Bool bool

// Category is a categorical value, kept verbatim.
type Category string

func (Float) isValue()    {}
func (Bool) isValue()     {}
func (Category) isValue() {}

func (f Float) String() string    { return strconv.FormatFloat(float64(f), 'g', -1, 64) }
func (b Bool) String() string     { return strconv.FormatBool(bool(b)) }
func (c Category) String() string { return string(c) }

// TypedColumn is a column after type inference. Values[i] is nil when row i
// is missing; every present value has the column's Kind.
type TypedColumn struct {
	Name    string
	Kind    Kind
	Values  []Value
	Missing int
}

// Len is the row count.
func (c *TypedColumn) Len() int { return len(c.Values) }

// Present is the number of non-missing values.
func (c *TypedColumn) Present() int { return len(c.Values) - c.Missing }

// Float returns row i as a number. ok is false when the row is missing or the
// column is not numeric.
func (c *TypedColumn) Float(i int) (float64, bool) {
	f, ok := c.Values[i].(Float)
	return float64(f), ok
}

// Levels returns the distinct present values in sorted order.
func (c *TypedColumn) Levels() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, v := range c.Values {
		if v == nil {
			continue
		}
		s := v.String()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	if c.Kind == Numeric {
		sort.Slice(out, func(i, j int) bool {
			a, _ := strconv.ParseFloat(out[i], 64)
			b, _ := strconv.ParseFloat(out[j], 64)
			return a < b
		})
	} else {
		sort.Strings(out)
	}
	return out
}

// PresentValues returns the column's non-missing numbers in row order.
// It is the input for histograms and boxplots.
func PresentValues(c *TypedColumn) ([]float64, error) {
	if c.Kind != Numeric && c.Present() > 0 {
		return nil, &TypeMismatchError{Variable: c.Name, Kind: c.Kind, Operation: "plot"}
	}
	out := make([]float64, 0, c.Present())
	for i := range c.Values {
		if f, ok := c.Float(i); ok {
			out = append(out, f)
		}
	}
	return out, nil
}

// PairedValues returns the rows where both x and y are present, as two
// aligned slices. It is the input for scatter plots.
func PairedValues(x, y *TypedColumn) (xs, ys []float64, err error) {
	for _, c := range []*TypedColumn{x, y} {
		if c.Kind != Numeric && c.Present() > 0 {
			return nil, nil, &TypeMismatchError{Variable: c.Name, Kind: c.Kind, Operation: "plot"}
		}
	}
	n := x.Len()
	if y.Len() < n {
		n = y.Len()
	}
	for i := 0; i < n; i++ {
		a, okA := x.Float(i)
		b, okB := y.Float(i)
		if okA && okB {
			xs = append(xs, a)
			ys = append(ys, b)
		}
	}
	return xs, ys, nil
}
