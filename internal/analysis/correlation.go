package analysis

import (
	"context"
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// CorrelationMatrix is a symmetric Pearson matrix. Values[i][j] is NaN when
// the pair is undefined; N[i][j] is the number of pairwise-complete rows.
type CorrelationMatrix struct {
	Columns []string
	Values  [][]float64
	N       [][]int
}

// PairCorr is one off-diagonal entry of a matrix.
type PairCorr struct {
	A, B string
	R    float64
	N    int
}

// At returns the correlation of two named columns; ok is false when either
// name is unknown or the value is undefined.
func (m *CorrelationMatrix) At(a, b string) (float64, bool) {
	i, j := indexOf(m.Columns, a), indexOf(m.Columns, b)
	if i < 0 || j < 0 || math.IsNaN(m.Values[i][j]) {
		return math.NaN(), false
	}
	return m.Values[i][j], true
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

// Above lists defined pairs with |r| >= min, strongest first. It reads the
// matrix and never alters it.
func (m *CorrelationMatrix) Above(min float64) []PairCorr {
	var pairs []PairCorr
	for i := range m.Columns {
		for j := i + 1; j < len(m.Columns); j++ {
			r := m.Values[i][j]
			if math.IsNaN(r) || math.Abs(r) < min {
				continue
			}
			pairs = append(pairs, PairCorr{A: m.Columns[i], B: m.Columns[j], R: r, N: m.N[i][j]})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		ai, aj := math.Abs(pairs[i].R), math.Abs(pairs[j].R)
		if ai == aj {
			return pairs[i].A+pairs[i].B < pairs[j].A+pairs[j].B
		}
		return ai > aj
	})
	return pairs
}

// Correlate computes the pairwise-complete Pearson matrix of the numeric
// columns in cols. Non-numeric columns are left out and reported in the
// returned error next to a usable matrix.
func Correlate(ctx context.Context, cols []*TypedColumn, opt Options) (*CorrelationMatrix, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	var skipped []error
	var nums []*TypedColumn
	for _, c := range cols {
		if c.Kind != Numeric {
			skipped = append(skipped, &TypeMismatchError{Variable: c.Name, Kind: c.Kind, Operation: "correlation"})
			continue
		}
		nums = append(nums, c)
	}

	n := len(nums)
	m := &CorrelationMatrix{
		Columns: make([]string, n),
		Values:  make([][]float64, n),
		N:       make([][]int, n),
	}
	for i, c := range nums {
		m.Columns[i] = c.Name
		m.Values[i] = make([]float64, n)
		m.N[i] = make([]int, n)
	}

	type pair struct{ i, j int }
	var pairs []pair
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			pairs = append(pairs, pair{i, j})
		}
	}
	err := forEach(ctx, len(pairs), opt.workers(), func(k int) {
		p := pairs[k]
		var r float64
		var cnt int
		if p.i == p.j {
			r, cnt = selfCorrelation(nums[p.i])
		} else {
			r, cnt = pearson(nums[p.i], nums[p.j])
		}
		// pairs are distinct, so each task owns both mirrored cells
		m.Values[p.i][p.j], m.Values[p.j][p.i] = r, r
		m.N[p.i][p.j], m.N[p.j][p.i] = cnt, cnt
	})
	if err != nil {
		return nil, err
	}
	return m, errors.Join(skipped...)
}

// pearson correlates the rows where both columns are present.
func pearson(x, y *TypedColumn) (float64, int) {
	xs, ys, _ := PairedValues(x, y)
	if len(xs) < 2 {
		return math.NaN(), len(xs)
	}
	_, vx := stat.MeanVariance(xs, nil)
	_, vy := stat.MeanVariance(ys, nil)
	if vx <= 0 || vy <= 0 {
		return math.NaN(), len(xs)
	}
	r := stat.Covariance(xs, ys, nil) / (math.Sqrt(vx) * math.Sqrt(vy))
	return math.Max(-1, math.Min(1, r)), len(xs)
}

// selfCorrelation is 1 for a column with nonzero variance, undefined otherwise.
func selfCorrelation(c *TypedColumn) (float64, int) {
	vals, _ := PresentValues(c)
	if len(vals) < 2 {
		return math.NaN(), len(vals)
	}
	if _, v := stat.MeanVariance(vals, nil); v <= 0 {
		return math.NaN(), len(vals)
	}
	return 1, len(vals)
}
