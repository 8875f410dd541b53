package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table(t *testing.T, name string, names []string, cols ...[]Cell) *RawTable {
	t.Helper()
	tbl, err := NewRawTable(name, names, cols)
	require.NoError(t, err)
	return tbl
}

func TestCompareAgeDelta(t *testing.T) {
	a := table(t, "a.csv", []string{"age", "height", "city"},
		cells("20", "30", "40"), cells("150", "160", "170"), cells("x", "y", "z"))
	b := table(t, "b.csv", []string{"city", "age", "weight"},
		cells("x", "NA", "z"), cells("22", "32", "42"), cells("60", "70", "80"))

	rep, err := Compare(context.Background(), a, b, nil, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, rep.Shared, 2)
	age := rep.Shared[0]
	assert.Equal(t, "age", age.Variable)
	require.NotNil(t, age.Delta)
	assert.Equal(t, 30.0, age.A.Mean)
	assert.Equal(t, 32.0, age.B.Mean)
	assert.InDelta(t, 2.0, age.Delta.Mean, 1e-12)
	assert.InDelta(t, 0.0, age.Delta.Std, 1e-12)

	city := rep.Shared[1]
	assert.Equal(t, "city", city.Variable)
	assert.Nil(t, city.Delta)
	assert.Equal(t, 1, city.MissingDelta)

	assert.Equal(t, []string{"height"}, rep.OnlyA)
	assert.Equal(t, []string{"weight"}, rep.OnlyB)
	assert.Equal(t, []string{"age", "city", "height", "weight"}, rep.Variables())
}

func TestCompareKindMismatch(t *testing.T) {
	a := table(t, "a", []string{"v"}, cells("1", "2"))
	b := table(t, "b", []string{"v"}, cells("1", "two"))
	rep, err := Compare(context.Background(), a, b, nil, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, rep.Shared, 1)
	assert.Equal(t, Numeric, rep.Shared[0].KindA)
	assert.Equal(t, Categorical, rep.Shared[0].KindB)
	assert.Nil(t, rep.Shared[0].Delta)
}

func TestCompareSelectedVariables(t *testing.T) {
	a := table(t, "a", []string{"x", "y"}, cells("1", "2"), cells("3", "4"))
	b := table(t, "b", []string{"x", "z"}, cells("5", "6"), cells("7", "8"))

	rep, err := Compare(context.Background(), a, b, []string{"x", "y"}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, rep.Variables())
	assert.Equal(t, []string{"y"}, rep.OnlyA)
	assert.Empty(t, rep.OnlyB)

	_, err = Compare(context.Background(), a, b, []string{"nope"}, DefaultOptions())
	var se *SchemaError
	assert.ErrorAs(t, err, &se)
}

func TestPairedAndPresentValues(t *testing.T) {
	x := column("x", "1", "NA", "3", "4")
	y := column("y", "10", "20", "NA", "40")
	vals, err := PresentValues(x)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 4}, vals)

	xs, ys, err := PairedValues(x, y)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 4}, xs)
	assert.Equal(t, []float64{10, 40}, ys)

	_, err = PresentValues(column("c", "a"))
	var tm *TypeMismatchError
	assert.ErrorAs(t, err, &tm)
}

func TestSummarizeCategorical(t *testing.T) {
	s := SummarizeCategorical(column("c", "b", "a", "b", "NA", "c", "b", "a"))
	assert.Equal(t, 7, s.Total)
	assert.Equal(t, 1, s.Missing)
	assert.Equal(t, 3, s.Unique)
	assert.Equal(t, []CategoryCount{{"b", 3}, {"a", 2}, {"c", 1}}, s.Top)
}
