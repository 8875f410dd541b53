package plot

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// ScatterData is a density grid of complete (x, y) pairs. Row 0 is the top.
type ScatterData struct {
	X       string  `json:"x" yaml:"x"`
	Y       string  `json:"y" yaml:"y"`
	N       int     `json:"n" yaml:"n"`
	XMin    float64 `json:"x_min" yaml:"x_min"`
	XMax    float64 `json:"x_max" yaml:"x_max"`
	YMin    float64 `json:"y_min" yaml:"y_min"`
	YMax    float64 `json:"y_max" yaml:"y_max"`
	Density [][]int `json:"density" yaml:"density"`
}

// NewScatter counts points per cell of a width x height grid. xs and ys must
// be aligned; PairedValues produces them that way.
func NewScatter(xName, yName string, xs, ys []float64, width, height int) ScatterData {
	s := ScatterData{X: xName, Y: yName, N: len(xs)}
	if s.N == 0 {
		return s
	}
	pw, ph := clamp(width, 20, DefaultWidth), clamp(height, 8, 20)
	s.XMin, s.XMax = xs[0], xs[0]
	s.YMin, s.YMax = ys[0], ys[0]
	for i := range xs {
		s.XMin, s.XMax = math.Min(s.XMin, xs[i]), math.Max(s.XMax, xs[i])
		s.YMin, s.YMax = math.Min(s.YMin, ys[i]), math.Max(s.YMax, ys[i])
	}
	xr, yr := s.XMax-s.XMin, s.YMax-s.YMin
	if xr == 0 {
		xr = 1
	}
	if yr == 0 {
		yr = 1
	}
	s.Density = make([][]int, ph)
	for r := range s.Density {
		s.Density[r] = make([]int, pw)
	}
	for i := range xs {
		col := clamp(int(math.Round((xs[i]-s.XMin)/xr*float64(pw-1))), 0, pw-1)
		row := clamp(int(math.Round((s.YMax-ys[i])/yr*float64(ph-1))), 0, ph-1)
		s.Density[row][col]++
	}
	return s
}

func densityMark(n int) rune {
	switch {
	case n > 3:
		return '●'
	case n > 1:
		return '◦'
	case n == 1:
		return '·'
	}
	return ' '
}

// Render draws the grid with y labels on the left and the x range below.
func (s ScatterData) Render(w io.Writer) error {
	var b strings.Builder
	if s.N == 0 {
		fmt.Fprintf(&b, "%s vs %s: No complete pairs of data\n", s.X, s.Y)
		_, err := io.WriteString(w, b.String())
		return err
	}
	ph, pw := len(s.Density), len(s.Density[0])
	yr := s.YMax - s.YMin
	if yr == 0 {
		yr = 1
	}
	fmt.Fprintf(&b, "%s vs %s (n=%d)\n\n", s.Y, s.X, s.N)
	for i, row := range s.Density {
		if i == 0 || i == ph-1 || i == ph/2 {
			fmt.Fprintf(&b, "%8.1f│", s.YMax-float64(i)/float64(ph-1)*yr)
		} else {
			b.WriteString("        │")
		}
		line := make([]rune, len(row))
		for j, n := range row {
			line[j] = densityMark(n)
		}
		b.WriteString(strings.TrimRight(string(line), " ") + "\n")
	}
	b.WriteString("        └" + strings.Repeat("─", pw) + "\n")

	lo, hi := fmt.Sprintf("%.1f", s.XMin), fmt.Sprintf("%.1f", s.XMax)
	gap := pw - len(lo) - len(hi)
	if gap < 1 {
		gap = 1
	}
	b.WriteString("         " + lo + strings.Repeat(" ", gap) + hi + "\n")
	pad := (pw - len([]rune(s.X))) / 2
	if pad < 0 {
		pad = 0
	}
	b.WriteString("         " + strings.Repeat(" ", pad) + s.X + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}
