package analysis

import (
	"context"
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeOneToFive(t *testing.T) {
	s, err := Describe(column("x", "1", "2", "3", "4", "5"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 5, s.Count)
	assert.Equal(t, 3.0, s.Mean)
	assert.InDelta(t, math.Sqrt(2.5), s.Std, 1e-12)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 2.0, s.Q1)
	assert.Equal(t, 3.0, s.Median)
	assert.Equal(t, 4.0, s.Q3)
	assert.Equal(t, 5.0, s.Max)
}

func TestDescribeSkipsMissing(t *testing.T) {
	s, err := Describe(column("x", "10", "NA", "20", "NA", "30"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 2, s.Missing)
	assert.Equal(t, 20.0, s.Mean)
	assert.Equal(t, 20.0, s.Median)
}

func TestDescribeConstantColumn(t *testing.T) {
	s, err := Describe(column("x", "5", "5", "5", "5"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Std)
	assert.Equal(t, 5.0, s.Q1)
	assert.Equal(t, 5.0, s.Q3)
}

func TestDescribeSingleValue(t *testing.T) {
	s, err := Describe(column("x", "NA", "7"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 7.0, s.Mean)
	assert.Equal(t, 0.0, s.Std)
	assert.Equal(t, 7.0, s.Median)
}

func TestDescribeAllMissingIsUndefined(t *testing.T) {
	col := column("x", "NA", "NA")
	require.Equal(t, Categorical, col.Kind)
	s, err := Describe(col, DefaultOptions())
	require.NoError(t, err)
	assert.False(t, s.Defined())
	assert.Equal(t, 2, s.Missing)
	for _, v := range []float64{s.Mean, s.Std, s.Min, s.Q1, s.Median, s.Q3, s.Max} {
		assert.True(t, math.IsNaN(v))
	}
}

func TestDescribeCategoricalIsTypeMismatch(t *testing.T) {
	_, err := Describe(column("city", "Lima", "Quito"), DefaultOptions())
	var tm *TypeMismatchError
	require.ErrorAs(t, err, &tm)
	assert.Equal(t, "city", tm.Variable)
	assert.Equal(t, Categorical, tm.Kind)
	assert.Contains(t, err.Error(), "Categorical")
}

func TestDescribeRejectsUnknownQuantileMethod(t *testing.T) {
	opt := DefaultOptions()
	opt.Quantile = "nearest"
	_, err := Describe(column("x", "1", "2"), opt)
	var um *UnsupportedMethodError
	assert.ErrorAs(t, err, &um)
}

func TestQuantileInterpolation(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	assert.Equal(t, 1.75, Quantile(sorted, 0.25))
	assert.Equal(t, 2.5, Quantile(sorted, 0.5))
	assert.Equal(t, 3.25, Quantile(sorted, 0.75))
	assert.Equal(t, 1.0, Quantile(sorted, 0))
	assert.Equal(t, 4.0, Quantile(sorted, 1))
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
}

func TestDescribeAllReportsPerColumnFailures(t *testing.T) {
	cols := []*TypedColumn{
		column("a", "1", "2"),
		column("city", "x", "y"),
		column("b", "3", "NA"),
	}
	sums, err := DescribeAll(context.Background(), cols, DefaultOptions())
	require.Len(t, sums, 2)
	assert.Equal(t, "a", sums[0].Variable)
	assert.Equal(t, "b", sums[1].Variable)
	var tm *TypeMismatchError
	require.ErrorAs(t, err, &tm)
	assert.Equal(t, "city", tm.Variable)
}

func randomColumn(r *rand.Rand, n int) *TypedColumn {
	vals := make([]string, n)
	for i := range vals {
		if r.Intn(5) == 0 {
			vals[i] = "NA"
			continue
		}
		vals[i] = strconv.FormatFloat(r.NormFloat64()*100, 'g', -1, 64)
	}
	return column("r", vals...)
}

func TestDescribeOrderingAndIdempotence(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		col := randomColumn(r, 2+r.Intn(40))
		if col.Present() < 2 {
			continue
		}
		s1, err := Describe(col, DefaultOptions())
		require.NoError(t, err)
		s2, err := Describe(col, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, s1, s2)
		assert.LessOrEqual(t, s1.Min, s1.Q1)
		assert.LessOrEqual(t, s1.Q1, s1.Median)
		assert.LessOrEqual(t, s1.Median, s1.Q3)
		assert.LessOrEqual(t, s1.Q3, s1.Max)
		assert.GreaterOrEqual(t, s1.Std, 0.0)
	}
}
