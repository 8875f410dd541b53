package analysis

import (
	"context"
	"fmt"
)

// SummaryDelta is B minus A for each statistic of two summaries.
type SummaryDelta struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// ColumnComparison pairs the results of one shared variable. A, B and Delta
// are nil unless the variable is numeric on both sides.
type ColumnComparison struct {
	Variable       string
	KindA, KindB   Kind
	A, B           *DescriptiveSummary
	Delta          *SummaryDelta
	MissingA       MissingReport
	MissingB       MissingReport
	MissingDelta   int
	PctMissingDiff float64
}

// ComparisonReport aligns two datasets by column name.
type ComparisonReport struct {
	NameA, NameB string
	RowsA, RowsB int
	Shared       []ColumnComparison
	OnlyA        []string
	OnlyB        []string
}

// Variables lists the report's columns: shared in A's order, then A-only,
// then B-only.
func (r *ComparisonReport) Variables() []string {
	out := make([]string, 0, len(r.Shared)+len(r.OnlyA)+len(r.OnlyB))
	for _, s := range r.Shared {
		out = append(out, s.Variable)
	}
	out = append(out, r.OnlyA...)
	return append(out, r.OnlyB...)
}

// Compare runs inference, summaries and missingness on a and b independently
// and reports per-column differences. When vars is non-empty only those
// columns are considered; a name found in neither table is a *SchemaError.
func Compare(ctx context.Context, a, b *RawTable, vars []string, opt Options) (*ComparisonReport, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	for _, v := range vars {
		if !a.Has(v) && !b.Has(v) {
			return nil, &SchemaError{Variable: v, Table: fmt.Sprintf("%s or %s", a.Name, b.Name), Available: a.Columns()}
		}
	}
	sideA, err := profile(ctx, a, vars, opt)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", a.Name, err)
	}
	sideB, err := profile(ctx, b, vars, opt)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", b.Name, err)
	}

	rep := &ComparisonReport{NameA: a.Name, NameB: b.Name, RowsA: a.Rows(), RowsB: b.Rows()}
	for _, ca := range sideA.cols {
		ib, ok := sideB.index[ca.Name]
		if !ok {
			rep.OnlyA = append(rep.OnlyA, ca.Name)
			continue
		}
		ia := sideA.index[ca.Name]
		cb := sideB.cols[ib]
		cc := ColumnComparison{
			Variable: ca.Name,
			KindA:    ca.Kind,
			KindB:    cb.Kind,
			MissingA: sideA.missing.Reports[ia],
			MissingB: sideB.missing.Reports[ib],
		}
		cc.MissingDelta = cc.MissingB.Missing - cc.MissingA.Missing
		cc.PctMissingDiff = cc.MissingB.PctMissing - cc.MissingA.PctMissing
		sa, sb := sideA.summaries[ia], sideB.summaries[ib]
		if sa != nil && sb != nil {
			cc.A, cc.B = sa, sb
			cc.Delta = &SummaryDelta{
				Count:  sb.Count - sa.Count,
				Mean:   sb.Mean - sa.Mean,
				Std:    sb.Std - sa.Std,
				Min:    sb.Min - sa.Min,
				Q1:     sb.Q1 - sa.Q1,
				Median: sb.Median - sa.Median,
				Q3:     sb.Q3 - sa.Q3,
				Max:    sb.Max - sa.Max,
			}
		}
		rep.Shared = append(rep.Shared, cc)
	}
	for _, cb := range sideB.cols {
		if _, ok := sideA.index[cb.Name]; !ok {
			rep.OnlyB = append(rep.OnlyB, cb.Name)
		}
	}
	return rep, nil
}

type profiled struct {
	cols      []*TypedColumn
	index     map[string]int
	summaries []*DescriptiveSummary
	missing   MissingSummary
}

func profile(ctx context.Context, t *RawTable, vars []string, opt Options) (*profiled, error) {
	if len(vars) > 0 {
		var keep []string
		for _, v := range vars {
			if t.Has(v) {
				keep = append(keep, v)
			}
		}
		var err error
		if len(keep) == 0 {
			t, err = NewRawTable(t.Name, nil, nil)
		} else {
			t, err = t.Select(keep)
		}
		if err != nil {
			return nil, err
		}
	}
	cols, err := InferTable(ctx, t, opt)
	if err != nil {
		return nil, err
	}
	p := &profiled{
		cols:      cols,
		index:     make(map[string]int, len(cols)),
		summaries: make([]*DescriptiveSummary, len(cols)),
		missing:   AnalyzeMissing(cols),
	}
	for i, c := range cols {
		p.index[c.Name] = i
	}
	err = forEach(ctx, len(cols), opt.workers(), func(i int) {
		if cols[i].Kind != Numeric {
			return
		}
		if s, err := Describe(cols[i], opt); err == nil {
			p.summaries[i] = &s
		}
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}
