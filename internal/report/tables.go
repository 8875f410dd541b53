package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/statsctl/internal/analysis"
)

// SummaryTable lays out numeric summaries one variable per row.
func SummaryTable(sums []analysis.DescriptiveSummary) Table {
	t := Table{
		Title:  "Descriptive Statistics",
		Header: []string{"Variable", "Count", "Missing", "Mean", "Std", "Min", "Q1", "Median", "Q3", "Max"},
	}
	for _, s := range sums {
		t.Rows = append(t.Rows, []string{
			s.Variable, strconv.Itoa(s.Count), strconv.Itoa(s.Missing),
			Num(s.Mean), Num(s.Std), Num(s.Min), Num(s.Q1), Num(s.Median), Num(s.Q3), Num(s.Max),
		})
	}
	return t
}

// CategoricalTable lists non-numeric columns with their five most frequent values.
func CategoricalTable(cats []analysis.CategoricalSummary) Table {
	t := Table{
		Title:  "Categorical Variables",
		Header: []string{"Variable", "Type", "Total", "Missing", "Unique", "Top Values"},
	}
	for _, c := range cats {
		var top []string
		for i, kv := range c.Top {
			if i == 5 {
				break
			}
			top = append(top, fmt.Sprintf("%s (%d)", kv.Value, kv.Count))
		}
		t.Rows = append(t.Rows, []string{
			c.Variable, c.Kind.String(), strconv.Itoa(c.Total), strconv.Itoa(c.Missing),
			strconv.Itoa(c.Unique), strings.Join(top, ", "),
		})
	}
	return t
}

// MissingTable reports per-column missing counts.
func MissingTable(reports []analysis.MissingReport) Table {
	t := Table{Title: "Missing Data Report", Header: []string{"Variable", "Missing", "% Missing"}}
	for _, r := range reports {
		t.Rows = append(t.Rows, []string{r.Variable, strconv.Itoa(r.Missing), Pct(r.PctMissing)})
	}
	return t
}

// MissingOverview is the one-line row-level summary.
func MissingOverview(sum analysis.MissingSummary) string {
	if sum.RowsWithAnyMissing == 0 {
		return "No missing data found."
	}
	return fmt.Sprintf("%s of observations (%d/%d) have at least one missing value",
		Pct(sum.PctRowsWithAnyMissing), sum.RowsWithAnyMissing, sum.TotalRows)
}

// PatternsTable lists missingness patterns.
func PatternsTable(patterns []analysis.MissingPattern) Table {
	t := Table{Title: "Most common missing patterns", Header: []string{"Missing Columns", "Count"}}
	for _, p := range patterns {
		cols := strings.Join(p.Columns, ", ")
		if cols == "" {
			cols = "(none)"
		}
		t.Rows = append(t.Rows, []string{cols, strconv.Itoa(p.Count)})
	}
	return t
}

// CorrelationTable renders the full matrix with two decimals.
func CorrelationTable(m *analysis.CorrelationMatrix, method string) Table {
	t := Table{
		Title:  fmt.Sprintf("Correlation Matrix (%s)", titleCase(method)),
		Header: append([]string{""}, m.Columns...),
	}
	for i, name := range m.Columns {
		row := []string{name}
		for j := range m.Columns {
			v := m.Values[i][j]
			if math.IsNaN(v) {
				row = append(row, "N/A")
				continue
			}
			row = append(row, strconv.FormatFloat(v, 'f', 2, 64))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// HighCorrelationsTable lists pairs with |r| at or above threshold.
func HighCorrelationsTable(pairs []analysis.PairCorr, threshold float64) Table {
	t := Table{
		Title:  fmt.Sprintf("High correlations (|r| >= %.2f)", threshold),
		Header: []string{"Variable A", "Variable B", "r", "N"},
	}
	for _, p := range pairs {
		t.Rows = append(t.Rows, []string{p.A, p.B, strconv.FormatFloat(p.R, 'f', 2, 64), strconv.Itoa(p.N)})
	}
	return t
}

// TypesTable lists inferred kinds. With showLevels, low-cardinality columns
// list their levels and the rest show their distinct count.
func TypesTable(infos []analysis.ColumnTypeInfo, showLevels bool) Table {
	t := Table{Title: "Data Types", Header: []string{"Variable", "Type", "Unique"}}
	if showLevels {
		t.Header = append(t.Header, "Levels")
	}
	for _, in := range infos {
		row := []string{in.Variable, in.Kind.String(), strconv.Itoa(in.Unique)}
		if showLevels {
			levels := strings.Join(in.Levels, ", ")
			if in.Levels == nil {
				levels = fmt.Sprintf("(%d unique)", in.Unique)
			}
			row = append(row, levels)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// ComparisonTables renders the descriptive and missing-data comparison of
// two datasets, plus a table of unshared columns when there are any.
func ComparisonTables(rep *analysis.ComparisonReport, labelA, labelB string) []Table {
	desc := Table{
		Title: fmt.Sprintf("Comparison: %s vs %s", labelA, labelB),
		Header: []string{
			"Variable",
			labelA + " Count", labelB + " Count",
			labelA + " Mean", labelB + " Mean", "Diff Mean",
			labelA + " Std", labelB + " Std",
			labelA + " Median", labelB + " Median",
		},
	}
	miss := Table{
		Title:  "Missing Data Comparison",
		Header: []string{"Variable", labelA + " Missing", labelB + " Missing", "Diff", labelA + " %", labelB + " %"},
	}
	for _, c := range rep.Shared {
		miss.Rows = append(miss.Rows, []string{
			c.Variable, strconv.Itoa(c.MissingA.Missing), strconv.Itoa(c.MissingB.Missing),
			signedInt(c.MissingDelta), Pct(c.MissingA.PctMissing), Pct(c.MissingB.PctMissing),
		})
		if c.Delta == nil {
			continue
		}
		desc.Rows = append(desc.Rows, []string{
			c.Variable,
			strconv.Itoa(c.A.Count), strconv.Itoa(c.B.Count),
			Num(c.A.Mean), Num(c.B.Mean), Signed(c.Delta.Mean),
			Num(c.A.Std), Num(c.B.Std),
			Num(c.A.Median), Num(c.B.Median),
		})
	}
	out := []Table{desc, miss}
	if len(rep.OnlyA)+len(rep.OnlyB) > 0 {
		only := Table{Title: "Unshared Columns", Header: []string{"Variable", "Present In"}}
		for _, v := range rep.OnlyA {
			only.Rows = append(only.Rows, []string{v, labelA})
		}
		for _, v := range rep.OnlyB {
			only.Rows = append(only.Rows, []string{v, labelB})
		}
		out = append(out, only)
	}
	return out
}

func signedInt(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
