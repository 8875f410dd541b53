package analysis

import (
	"context"
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DescriptiveSummary holds the univariate statistics of a numeric column.
// Count is the present count; statistics that cannot be computed are NaN.
type DescriptiveSummary struct {
	Variable string
	Count    int
	Missing  int
	Mean     float64
	Std      float64
	Min      float64
	Q1       float64
	Median   float64
	Q3       float64
	Max      float64
}

// Defined reports whether the summary has at least one observation.
func (s DescriptiveSummary) Defined() bool { return s.Count > 0 }

func undefinedSummary(name string, missing int) DescriptiveSummary {
	nan := math.NaN()
	return DescriptiveSummary{
		Variable: name, Missing: missing,
		Mean: nan, Std: nan, Min: nan, Q1: nan, Median: nan, Q3: nan, Max: nan,
	}
}

// Describe computes the summary of one column. A column without present
// values gives an undefined summary and no error, whatever its kind; a
// non-numeric column with values is a *TypeMismatchError.
func Describe(col *TypedColumn, opt Options) (DescriptiveSummary, error) {
	if col.Present() == 0 {
		return undefinedSummary(col.Name, col.Missing), nil
	}
	if col.Kind != Numeric {
		return DescriptiveSummary{}, &TypeMismatchError{Variable: col.Name, Kind: col.Kind, Operation: "summary"}
	}
	if err := opt.Validate(); err != nil {
		return DescriptiveSummary{}, err
	}
	vals, _ := PresentValues(col)

	s := DescriptiveSummary{Variable: col.Name, Count: len(vals), Missing: col.Missing}
	s.Mean, s.Std = meanStd(vals)

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Stable(sort.Float64Slice(sorted))
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Q1 = Quantile(sorted, 0.25)
	s.Median = Quantile(sorted, 0.5)
	s.Q3 = Quantile(sorted, 0.75)
	return s, nil
}

// meanStd returns the mean and the sample (N-1) standard deviation.
// A single observation has std 0.
func meanStd(vals []float64) (mean, std float64) {
	switch len(vals) {
	case 0:
		return math.NaN(), math.NaN()
	case 1:
		return vals[0], 0
	}
	mean, variance := stat.MeanVariance(vals, nil)
	return mean, math.Sqrt(math.Max(variance, 0))
}

// Quantile returns the p-quantile of an ascending slice by linear
// interpolation between the order statistics around rank p*(n-1).
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	a, b := sorted[lo], sorted[hi]
	q := a + (pos-float64(lo))*(b-a)
	// keep rounding from stepping outside [a, b]
	return math.Min(math.Max(q, a), b)
}

// DescribeAll summarizes every column concurrently. Columns that fail are left
// out of the result and reported together in the returned error, so one
// categorical column does not hide the other summaries.
func DescribeAll(ctx context.Context, cols []*TypedColumn, opt Options) ([]DescriptiveSummary, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	sums := make([]DescriptiveSummary, len(cols))
	errs := make([]error, len(cols))
	err := forEach(ctx, len(cols), opt.workers(), func(i int) {
		sums[i], errs[i] = Describe(cols[i], opt)
	})
	if err != nil {
		return nil, err
	}
	out := make([]DescriptiveSummary, 0, len(cols))
	for i := range cols {
		if errs[i] == nil {
			out = append(out, sums[i])
		}
	}
	return out, errors.Join(errs...)
}
