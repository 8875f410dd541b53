// Package plot draws terminal histograms, boxplots and scatter plots.
package plot

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
)

// Kind names a plot type.
type Kind string

const (
	Histogram Kind = "histogram"
	Boxplot   Kind = "boxplot"
	Scatter   Kind = "scatter"
)

// ParseKind accepts the plot names and their short aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "histogram", "hist":
		return Histogram, nil
	case "boxplot", "box":
		return Boxplot, nil
	case "scatter":
		return Scatter, nil
	}
	return "", fmt.Errorf("unknown plot type %q (use histogram, boxplot or scatter)", s)
}

const (
	DefaultWidth  = 60
	DefaultHeight = 15
)

func sorted(values []float64) []float64 {
	s := append([]float64(nil), values...)
	sort.Float64s(s)
	return s
}

// meanStd is the sample mean and standard deviation; a single value has std 0.
func meanStd(values []float64) (float64, float64) {
	mean, _ := stats.Mean(values)
	if len(values) < 2 {
		return mean, 0
	}
	std, _ := stats.StandardDeviationSample(values)
	return mean, std
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// shortNumber renders axis labels: 1.2M, 3.4k, 12 or 0.5.
func shortNumber(v float64) string {
	switch a := math.Abs(v); {
	case a >= 1e6:
		return strconv.FormatFloat(v/1e6, 'f', 1, 64) + "M"
	case a >= 1e3:
		return strconv.FormatFloat(v/1e3, 'f', 1, 64) + "k"
	case v == math.Trunc(v):
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// placeLabels writes each label at its column, dropping any that would overlap
// the previous one.
func placeLabels(cols []int, labels []string) string {
	var line []rune
	next := 0
	for i, c := range cols {
		if c < next {
			continue
		}
		for len(line) < c {
			line = append(line, ' ')
		}
		line = append(line, []rune(labels[i])...)
		next = len(line) + 1
	}
	return string(line)
}
