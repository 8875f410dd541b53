package report

import (
	"fmt"
	"io"
	"math"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/statsctl/internal/analysis"
)

type envelope struct {
	RunID   string   `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Command string   `json:"command" yaml:"command"`
	Source  string   `json:"source,omitempty" yaml:"source,omitempty"`
	Notes   []string `json:"notes,omitempty" yaml:"notes,omitempty"`
	Result  any      `json:"result" yaml:"result"`
}

func (d *Document) envelope() envelope {
	return envelope{RunID: d.RunID, Command: d.Command, Source: d.Source, Notes: d.Notes, Result: d.Data}
}

func writeJSON(w io.Writer, v any) error {
	b, err := gojson.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	return enc.Close()
}

// opt maps NaN and infinities to nil; JSON has no encoding for them.
func opt(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// SummaryView is the exported form of a descriptive summary.
type SummaryView struct {
	Variable string   `json:"variable" yaml:"variable"`
	Count    int      `json:"count" yaml:"count"`
	Missing  int      `json:"missing" yaml:"missing"`
	Mean     *float64 `json:"mean" yaml:"mean"`
	Std      *float64 `json:"std" yaml:"std"`
	Min      *float64 `json:"min" yaml:"min"`
	Q1       *float64 `json:"q1" yaml:"q1"`
	Median   *float64 `json:"median" yaml:"median"`
	Q3       *float64 `json:"q3" yaml:"q3"`
	Max      *float64 `json:"max" yaml:"max"`
}

func summaryView(s analysis.DescriptiveSummary) SummaryView {
	return SummaryView{
		Variable: s.Variable, Count: s.Count, Missing: s.Missing,
		Mean: opt(s.Mean), Std: opt(s.Std), Min: opt(s.Min),
		Q1: opt(s.Q1), Median: opt(s.Median), Q3: opt(s.Q3), Max: opt(s.Max),
	}
}

// TopValue is one frequent level.
type TopValue struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// CategoricalView is the exported form of a categorical summary.
type CategoricalView struct {
	Variable string     `json:"variable" yaml:"variable"`
	Type     string     `json:"type" yaml:"type"`
	Total    int        `json:"total" yaml:"total"`
	Missing  int        `json:"missing" yaml:"missing"`
	Unique   int        `json:"unique" yaml:"unique"`
	Top      []TopValue `json:"top" yaml:"top"`
}

// SummaryData is the payload of the summary command.
type SummaryData struct {
	Numeric     []SummaryView     `json:"numeric" yaml:"numeric"`
	Categorical []CategoricalView `json:"categorical,omitempty" yaml:"categorical,omitempty"`
}

// NewSummaryData converts engine results for export.
func NewSummaryData(sums []analysis.DescriptiveSummary, cats []analysis.CategoricalSummary) SummaryData {
	d := SummaryData{Numeric: make([]SummaryView, len(sums))}
	for i, s := range sums {
		d.Numeric[i] = summaryView(s)
	}
	for _, c := range cats {
		v := CategoricalView{Variable: c.Variable, Type: c.Kind.String(), Total: c.Total, Missing: c.Missing, Unique: c.Unique}
		for _, t := range c.Top {
			v.Top = append(v.Top, TopValue{Value: t.Value, Count: t.Count})
		}
		d.Categorical = append(d.Categorical, v)
	}
	return d
}

// MissingVar is one column's missing count.
type MissingVar struct {
	Variable   string  `json:"variable" yaml:"variable"`
	Missing    int     `json:"missing" yaml:"missing"`
	PctMissing float64 `json:"pct_missing" yaml:"pct_missing"`
}

// PatternView is one missingness pattern.
type PatternView struct {
	Columns []string `json:"columns" yaml:"columns"`
	Count   int      `json:"count" yaml:"count"`
}

// MissingData is the payload of the missing command.
type MissingData struct {
	Variables             []MissingVar  `json:"variables" yaml:"variables"`
	TotalRows             int           `json:"total_rows" yaml:"total_rows"`
	RowsWithAnyMissing    int           `json:"rows_with_any_missing" yaml:"rows_with_any_missing"`
	PctRowsWithAnyMissing float64       `json:"pct_rows_with_any_missing" yaml:"pct_rows_with_any_missing"`
	Patterns              []PatternView `json:"patterns,omitempty" yaml:"patterns,omitempty"`
}

// NewMissingData converts engine results for export; patterns may be nil.
func NewMissingData(reports []analysis.MissingReport, sum analysis.MissingSummary, patterns []analysis.MissingPattern) MissingData {
	d := MissingData{
		Variables:             make([]MissingVar, len(reports)),
		TotalRows:             sum.TotalRows,
		RowsWithAnyMissing:    sum.RowsWithAnyMissing,
		PctRowsWithAnyMissing: sum.PctRowsWithAnyMissing,
	}
	for i, r := range reports {
		d.Variables[i] = MissingVar{Variable: r.Variable, Missing: r.Missing, PctMissing: r.PctMissing}
	}
	for _, p := range patterns {
		d.Patterns = append(d.Patterns, PatternView{Columns: p.Columns, Count: p.Count})
	}
	return d
}

// PairView is one correlated pair.
type PairView struct {
	A string  `json:"a" yaml:"a"`
	B string  `json:"b" yaml:"b"`
	R float64 `json:"r" yaml:"r"`
	N int     `json:"n" yaml:"n"`
}

// CorrelationData is the payload of the correlation command.
type CorrelationData struct {
	Method         string       `json:"method" yaml:"method"`
	Columns        []string     `json:"columns" yaml:"columns"`
	Matrix         [][]*float64 `json:"matrix" yaml:"matrix"`
	N              [][]int      `json:"n" yaml:"n"`
	MinCorrelation float64      `json:"min_correlation" yaml:"min_correlation"`
	High           []PairView   `json:"high" yaml:"high"`
}

// NewCorrelationData converts a matrix and its high-correlation view.
func NewCorrelationData(m *analysis.CorrelationMatrix, method string, threshold float64) CorrelationData {
	d := CorrelationData{
		Method:         method,
		Columns:        m.Columns,
		Matrix:         make([][]*float64, len(m.Values)),
		N:              m.N,
		MinCorrelation: threshold,
		High:           []PairView{},
	}
	for i, row := range m.Values {
		d.Matrix[i] = make([]*float64, len(row))
		for j, v := range row {
			d.Matrix[i][j] = opt(v)
		}
	}
	for _, p := range m.Above(threshold) {
		d.High = append(d.High, PairView{A: p.A, B: p.B, R: p.R, N: p.N})
	}
	return d
}

// TypeView is one column's inferred type.
type TypeView struct {
	Variable string   `json:"variable" yaml:"variable"`
	Type     string   `json:"type" yaml:"type"`
	Unique   int      `json:"unique" yaml:"unique"`
	Levels   []string `json:"levels,omitempty" yaml:"levels,omitempty"`
}

// NewTypesData converts inferred type information.
func NewTypesData(infos []analysis.ColumnTypeInfo, showLevels bool) []TypeView {
	out := make([]TypeView, len(infos))
	for i, in := range infos {
		out[i] = TypeView{Variable: in.Variable, Type: in.Kind.String(), Unique: in.Unique}
		if showLevels {
			out[i].Levels = in.Levels
		}
	}
	return out
}

// DeltaView is B minus A.
type DeltaView struct {
	Count  int      `json:"count" yaml:"count"`
	Mean   *float64 `json:"mean" yaml:"mean"`
	Std    *float64 `json:"std" yaml:"std"`
	Min    *float64 `json:"min" yaml:"min"`
	Q1     *float64 `json:"q1" yaml:"q1"`
	Median *float64 `json:"median" yaml:"median"`
	Q3     *float64 `json:"q3" yaml:"q3"`
	Max    *float64 `json:"max" yaml:"max"`
}

// SharedView compares one variable present in both datasets.
type SharedView struct {
	Variable       string       `json:"variable" yaml:"variable"`
	TypeA          string       `json:"type_a" yaml:"type_a"`
	TypeB          string       `json:"type_b" yaml:"type_b"`
	A              *SummaryView `json:"a,omitempty" yaml:"a,omitempty"`
	B              *SummaryView `json:"b,omitempty" yaml:"b,omitempty"`
	Delta          *DeltaView   `json:"delta,omitempty" yaml:"delta,omitempty"`
	MissingA       int          `json:"missing_a" yaml:"missing_a"`
	MissingB       int          `json:"missing_b" yaml:"missing_b"`
	MissingDelta   int          `json:"missing_delta" yaml:"missing_delta"`
	PctMissingDiff float64      `json:"pct_missing_diff" yaml:"pct_missing_diff"`
}

// ComparisonData is the payload of the compare command.
type ComparisonData struct {
	A      string       `json:"a" yaml:"a"`
	B      string       `json:"b" yaml:"b"`
	RowsA  int          `json:"rows_a" yaml:"rows_a"`
	RowsB  int          `json:"rows_b" yaml:"rows_b"`
	Shared []SharedView `json:"shared" yaml:"shared"`
	OnlyA  []string     `json:"only_a" yaml:"only_a"`
	OnlyB  []string     `json:"only_b" yaml:"only_b"`
}

// NewComparisonData converts a comparison report.
func NewComparisonData(rep *analysis.ComparisonReport) ComparisonData {
	d := ComparisonData{
		A: rep.NameA, B: rep.NameB, RowsA: rep.RowsA, RowsB: rep.RowsB,
		Shared: make([]SharedView, len(rep.Shared)),
		OnlyA:  append([]string{}, rep.OnlyA...),
		OnlyB:  append([]string{}, rep.OnlyB...),
	}
	for i, c := range rep.Shared {
		v := SharedView{
			Variable: c.Variable, TypeA: c.KindA.String(), TypeB: c.KindB.String(),
			MissingA: c.MissingA.Missing, MissingB: c.MissingB.Missing,
			MissingDelta: c.MissingDelta, PctMissingDiff: c.PctMissingDiff,
		}
		if c.A != nil && c.B != nil {
			a, b := summaryView(*c.A), summaryView(*c.B)
			v.A, v.B = &a, &b
		}
		if dl := c.Delta; dl != nil {
			v.Delta = &DeltaView{
				Count: dl.Count, Mean: opt(dl.Mean), Std: opt(dl.Std), Min: opt(dl.Min),
				Q1: opt(dl.Q1), Median: opt(dl.Median), Q3: opt(dl.Q3), Max: opt(dl.Max),
			}
		}
		d.Shared[i] = v
	}
	return d
}
