package plot

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"hist": Histogram, "Histogram": Histogram, "box": Boxplot, "boxplot": Boxplot, "scatter": Scatter} {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseKind("pie"); err == nil {
		t.Error("expected error for pie")
	}
}

func TestSturgesBins(t *testing.T) {
	tests := []struct{ n, width, want int }{
		{0, 60, 1},
		{1, 60, 1},
		{4, 60, 5},      // floor of 5
		{100, 60, 8},    // ceil(log2 100)+1
		{100000, 60, 18},
		{100000, 20, 10}, // capped at width/2
	}
	for _, tt := range tests {
		if got := SturgesBins(tt.n, tt.width); got != tt.want {
			t.Errorf("SturgesBins(%d, %d) = %d, want %d", tt.n, tt.width, got, tt.want)
		}
	}
}

func TestHistogramCounts(t *testing.T) {
	vals := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 10}
	h := NewHistogram("v", vals, DefaultWidth)
	if len(h.Counts) != 5 {
		t.Fatalf("bins = %d, want 5", len(h.Counts))
	}
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	if total != len(vals) {
		t.Errorf("counts sum to %d, want %d", total, len(vals))
	}
	if h.BinWidth != 2 || h.Counts[4] != 2 {
		t.Errorf("bin width %v, last bin %d", h.BinWidth, h.Counts[4])
	}
	var buf bytes.Buffer
	if err := h.Render(&buf, 10); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "v: Distribution (n=10)") || !strings.Contains(out, "██") || !strings.Contains(out, "Mean: 4.60") {
		t.Errorf("unexpected histogram:\n%s", out)
	}
}

func TestHistogramConstantAndEmpty(t *testing.T) {
	h := NewHistogram("c", []float64{3, 3, 3}, DefaultWidth)
	if h.Counts[0] != 3 || h.Std != 0 {
		t.Errorf("constant column: %+v", h)
	}
	var buf bytes.Buffer
	_ = NewHistogram("e", nil, DefaultWidth).Render(&buf, 10)
	if !strings.Contains(buf.String(), "No valid numeric data") {
		t.Errorf("empty histogram output: %q", buf.String())
	}
}

func TestBoxplotOutliers(t *testing.T) {
	b := NewBoxplot("v", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100})
	// Q1 = 3.25, Q3 = 7.75, IQR = 4.5, upper fence 14.5
	if b.Q1 != 3.25 || b.Q3 != 7.75 {
		t.Fatalf("quartiles = %v, %v", b.Q1, b.Q3)
	}
	if b.UpperWhisker != 9 || b.LowerWhisker != 1 {
		t.Errorf("whiskers = %v, %v", b.LowerWhisker, b.UpperWhisker)
	}
	if len(b.Outliers) != 1 || b.Outliers[0] != 100 {
		t.Errorf("outliers = %v", b.Outliers)
	}
	var buf bytes.Buffer
	if err := b.Render(&buf, 40); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Boxplot (n=10)", "├", "┤", "│", "o", "Outliers: 1 values"} {
		if !strings.Contains(out, want) {
			t.Errorf("boxplot missing %q:\n%s", want, out)
		}
	}
}

func TestScatterDensity(t *testing.T) {
	xs := []float64{0, 0, 0, 0, 10}
	ys := []float64{0, 0, 0, 0, 10}
	s := NewScatter("x", "y", xs, ys, 20, 8)
	if len(s.Density) != 8 || len(s.Density[0]) != 20 {
		t.Fatalf("grid = %dx%d", len(s.Density), len(s.Density[0]))
	}
	if s.Density[7][0] != 4 || s.Density[0][19] != 1 {
		t.Errorf("corners = %d, %d", s.Density[7][0], s.Density[0][19])
	}
	var buf bytes.Buffer
	if err := s.Render(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "y vs x (n=5)") || !strings.Contains(out, "●") || !strings.Contains(out, "·") {
		t.Errorf("unexpected scatter:\n%s", out)
	}
}

func TestScatterNoPairs(t *testing.T) {
	var buf bytes.Buffer
	_ = NewScatter("x", "y", nil, nil, 0, 0).Render(&buf)
	if !strings.Contains(buf.String(), "No complete pairs") {
		t.Errorf("output = %q", buf.String())
	}
}
