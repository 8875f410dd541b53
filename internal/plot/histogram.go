package plot

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/montanaflynn/stats"
)

// HistogramData is a binned distribution.
type HistogramData struct {
	Variable string  `json:"variable" yaml:"variable"`
	N        int     `json:"n" yaml:"n"`
	Min      float64 `json:"min" yaml:"min"`
	Max      float64 `json:"max" yaml:"max"`
	BinWidth float64 `json:"bin_width" yaml:"bin_width"`
	Counts   []int   `json:"counts" yaml:"counts"`
	Mean     float64 `json:"mean" yaml:"mean"`
	Median   float64 `json:"median" yaml:"median"`
	Std      float64 `json:"std" yaml:"std"`
}

// SturgesBins is ceil(log2 n)+1, at least 5 and at most width/2.
func SturgesBins(n, width int) int {
	if n <= 1 {
		return 1
	}
	k := int(math.Ceil(math.Log2(float64(n)))) + 1
	if k < 5 {
		k = 5
	}
	if limit := width / 2; limit >= 1 && k > limit {
		k = limit
	}
	return k
}

// NewHistogram bins values over [min, max]. The maximum lands in the last bin.
func NewHistogram(variable string, values []float64, width int) HistogramData {
	h := HistogramData{Variable: variable, N: len(values)}
	if h.N == 0 {
		return h
	}
	s := sorted(values)
	h.Min, h.Max = s[0], s[len(s)-1]
	h.Mean, h.Std = meanStd(s)
	h.Median, _ = stats.Median(s)

	bins := SturgesBins(h.N, width)
	h.BinWidth = 1
	if r := h.Max - h.Min; r > 0 {
		h.BinWidth = r / float64(bins)
	}
	h.Counts = make([]int, bins)
	for _, v := range s {
		i := int(math.Floor((v - h.Min) / h.BinWidth))
		if i >= bins {
			i = bins - 1
		}
		h.Counts[i]++
	}
	return h
}

// Render draws vertical bars height rows tall.
func (h HistogramData) Render(w io.Writer, height int) error {
	var b strings.Builder
	if h.N == 0 {
		fmt.Fprintf(&b, "%s: No valid numeric data\n", h.Variable)
		_, err := io.WriteString(w, b.String())
		return err
	}
	height = clamp(height, 3, DefaultHeight)
	maxCount := 0
	for _, c := range h.Counts {
		if c > maxCount {
			maxCount = c
		}
	}
	half := float64(maxCount) / float64(height) / 2

	fmt.Fprintf(&b, "%s: Distribution (n=%d)\n\n", h.Variable, h.N)
	for row := height - 1; row >= 0; row-- {
		threshold := (float64(row) + 0.5) / float64(height) * float64(maxCount)
		label := "    "
		switch row {
		case height - 1:
			label = fmt.Sprintf("%4d", maxCount)
		case height / 2:
			label = fmt.Sprintf("%4d", maxCount/2)
		case 0:
			label = fmt.Sprintf("%4d", 0)
		}
		b.WriteString(label)
		b.WriteString("|")
		for _, c := range h.Counts {
			switch {
			case float64(c) >= threshold:
				b.WriteString("██")
			case float64(c) >= threshold-half:
				b.WriteString("▄▄")
			default:
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}
	b.WriteString("    └" + strings.Repeat("──", len(h.Counts)) + "\n")

	step := len(h.Counts) / 5
	if step < 1 {
		step = 1
	}
	var cols []int
	var labels []string
	for i := 0; i < len(h.Counts); i += step {
		cols = append(cols, 5+2*i)
		labels = append(labels, shortNumber(h.Min+float64(i)*h.BinWidth))
	}
	b.WriteString(placeLabels(cols, labels) + "\n\n")
	fmt.Fprintf(&b, "Mean: %.2f | Median: %.2f | Std: %.2f\n", h.Mean, h.Median, h.Std)
	_, err := io.WriteString(w, b.String())
	return err
}
