package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeMissingCounts(t *testing.T) {
	cols := []*TypedColumn{
		column("x", "10", "NA", "20", "NA", "30"),
		column("y", "a", "b", "NA", "NA", "e"),
	}
	sum := AnalyzeMissing(cols)
	require.Len(t, sum.Reports, 2)
	assert.Equal(t, MissingReport{Variable: "x", Missing: 2, PctMissing: 40}, sum.Reports[0])
	assert.Equal(t, 5, sum.TotalRows)
	// rows 1, 2 and 3 have at least one gap
	assert.Equal(t, 3, sum.RowsWithAnyMissing)
	assert.Equal(t, 60.0, sum.PctRowsWithAnyMissing)
	assert.LessOrEqual(t, sum.RowsWithAnyMissing, sum.TotalRows)
	for _, r := range sum.Reports {
		assert.LessOrEqual(t, r.Missing, sum.RowsWithAnyMissing)
	}
}

func TestAnalyzeMissingAllMissingColumn(t *testing.T) {
	sum := AnalyzeMissing([]*TypedColumn{column("m", "NA", "NA", "NA", "NA")})
	assert.Equal(t, 100.0, sum.Reports[0].PctMissing)
	assert.Equal(t, 4, sum.RowsWithAnyMissing)
}

func TestAnalyzeMissingZeroRows(t *testing.T) {
	sum := AnalyzeMissing([]*TypedColumn{Infer("e", nil, DefaultOptions())})
	assert.Equal(t, 0, sum.TotalRows)
	assert.Equal(t, 0.0, sum.Reports[0].PctMissing)
	assert.Equal(t, 0.0, sum.PctRowsWithAnyMissing)
}

func TestOnlyMissing(t *testing.T) {
	reports := []MissingReport{{Variable: "a"}, {Variable: "b", Missing: 1}}
	assert.Equal(t, []MissingReport{{Variable: "b", Missing: 1}}, OnlyMissing(reports))
}

func TestMissingPatternsOrder(t *testing.T) {
	cols := []*TypedColumn{
		column("a", "NA", "1", "NA", "1", "1", "1"),
		column("b", "1", "NA", "1", "NA", "1", "NA"),
	}
	patterns := MissingPatterns(cols)
	require.Len(t, patterns, 3)
	assert.Equal(t, MissingPattern{Columns: []string{"b"}, Count: 3}, patterns[0])
	assert.Equal(t, MissingPattern{Columns: []string{"a"}, Count: 2}, patterns[1])
	assert.Equal(t, MissingPattern{Columns: []string{}, Count: 1}, patterns[2])

	incomplete := IncompletePatterns(patterns, 1)
	assert.Equal(t, []MissingPattern{{Columns: []string{"b"}, Count: 3}}, incomplete)
}

func TestMissingPatternsTieBreakFirstSeen(t *testing.T) {
	cols := []*TypedColumn{
		column("a", "1", "NA", "1", "NA"),
		column("b", "NA", "1", "NA", "1"),
	}
	patterns := MissingPatterns(cols)
	require.Len(t, patterns, 2)
	assert.Equal(t, []string{"b"}, patterns[0].Columns)
	assert.Equal(t, []string{"a"}, patterns[1].Columns)
}
