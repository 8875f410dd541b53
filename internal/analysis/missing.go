package analysis

import (
	"sort"
	"strings"
)

// MissingReport is the missingness of one column.
type MissingReport struct {
	Variable   string
	Missing    int
	PctMissing float64
}

// MissingSummary holds per-column reports and the joint row measure.
type MissingSummary struct {
	Reports               []MissingReport
	TotalRows             int
	RowsWithAnyMissing    int
	PctRowsWithAnyMissing float64
}

// MissingPattern is a distinct combination of absent columns and the number
// of rows showing it. An empty Columns slice is the complete-row pattern.
type MissingPattern struct {
	Columns []string
	Count   int
}

func pct(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func rowCount(cols []*TypedColumn) int {
	n := 0
	for _, c := range cols {
		if c.Len() > n {
			n = c.Len()
		}
	}
	return n
}

// AnalyzeMissing counts missing values per column and, in a separate joint
// pass, the rows with at least one missing value. Kind plays no role.
func AnalyzeMissing(cols []*TypedColumn) MissingSummary {
	total := rowCount(cols)
	sum := MissingSummary{Reports: make([]MissingReport, 0, len(cols)), TotalRows: total}
	for _, c := range cols {
		sum.Reports = append(sum.Reports, MissingReport{
			Variable:   c.Name,
			Missing:    c.Missing,
			PctMissing: pct(c.Missing, total),
		})
	}
	for i := 0; i < total; i++ {
		for _, c := range cols {
			if absent(c, i) {
				sum.RowsWithAnyMissing++
				break
			}
		}
	}
	sum.PctRowsWithAnyMissing = pct(sum.RowsWithAnyMissing, total)
	return sum
}

func absent(c *TypedColumn, row int) bool {
	return row >= c.Len() || c.Values[row] == nil
}

// OnlyMissing keeps the reports with at least one missing value.
func OnlyMissing(reports []MissingReport) []MissingReport {
	var out []MissingReport
	for _, r := range reports {
		if r.Missing > 0 {
			out = append(out, r)
		}
	}
	return out
}

// MissingPatterns groups rows by which columns are absent. Patterns are
// ordered by frequency, ties by the row where the pattern first appears.
func MissingPatterns(cols []*TypedColumn) []MissingPattern {
	total := rowCount(cols)
	type acc struct {
		mask  []bool
		count int
		first int
	}
	byKey := make(map[string]*acc)
	var order []*acc
	var key strings.Builder
	for i := 0; i < total; i++ {
		key.Reset()
		mask := make([]bool, len(cols))
		for j, c := range cols {
			mask[j] = absent(c, i)
			if mask[j] {
				key.WriteByte('1')
			} else {
				key.WriteByte('0')
			}
		}
		a, ok := byKey[key.String()]
		if !ok {
			a = &acc{mask: mask, first: len(order)}
			byKey[key.String()] = a
			order = append(order, a)
		}
		a.count++
	}
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].first < order[j].first
	})
	out := make([]MissingPattern, 0, len(order))
	for _, a := range order {
		p := MissingPattern{Count: a.count, Columns: []string{}}
		for j, m := range a.mask {
			if m {
				p.Columns = append(p.Columns, cols[j].Name)
			}
		}
		out = append(out, p)
	}
	return out
}

// IncompletePatterns drops the complete-row pattern and keeps at most limit
// patterns (all when limit <= 0).
func IncompletePatterns(patterns []MissingPattern, limit int) []MissingPattern {
	var out []MissingPattern
	for _, p := range patterns {
		if len(p.Columns) == 0 {
			continue
		}
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, p)
	}
	return out
}
