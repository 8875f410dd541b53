package plot

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/KaramelBytes/statsctl/internal/analysis"
)

// BoxplotData is a five-number summary with Tukey whiskers.
type BoxplotData struct {
	Variable     string    `json:"variable" yaml:"variable"`
	N            int       `json:"n" yaml:"n"`
	Min          float64   `json:"min" yaml:"min"`
	Q1           float64   `json:"q1" yaml:"q1"`
	Median       float64   `json:"median" yaml:"median"`
	Q3           float64   `json:"q3" yaml:"q3"`
	Max          float64   `json:"max" yaml:"max"`
	LowerWhisker float64   `json:"lower_whisker" yaml:"lower_whisker"`
	UpperWhisker float64   `json:"upper_whisker" yaml:"upper_whisker"`
	Outliers     []float64 `json:"outliers" yaml:"outliers"`
}

// NewBoxplot places the whiskers at the most extreme values within 1.5 IQR
// of the quartiles; anything beyond is an outlier.
func NewBoxplot(variable string, values []float64) BoxplotData {
	b := BoxplotData{Variable: variable, N: len(values), Outliers: []float64{}}
	if b.N == 0 {
		return b
	}
	s := sorted(values)
	b.Min, b.Max = s[0], s[len(s)-1]
	b.Q1 = analysis.Quantile(s, 0.25)
	b.Median = analysis.Quantile(s, 0.5)
	b.Q3 = analysis.Quantile(s, 0.75)

	iqr := b.Q3 - b.Q1
	lo, hi := b.Q1-1.5*iqr, b.Q3+1.5*iqr
	b.LowerWhisker, b.UpperWhisker = b.Min, b.Max
	for _, v := range s {
		if v >= lo {
			b.LowerWhisker = v
			break
		}
	}
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] <= hi {
			b.UpperWhisker = s[i]
			break
		}
	}
	for _, v := range s {
		if v < b.LowerWhisker || v > b.UpperWhisker {
			b.Outliers = append(b.Outliers, v)
		}
	}
	return b
}

// Render draws the box on a scale from min to max, width columns wide.
func (b BoxplotData) Render(w io.Writer, width int) error {
	var out strings.Builder
	if b.N == 0 {
		fmt.Fprintf(&out, "%s: No valid numeric data\n", b.Variable)
		_, err := io.WriteString(w, out.String())
		return err
	}
	pw := clamp(width, 20, DefaultWidth)
	span := b.Max - b.Min
	pos := func(v float64) int {
		if span == 0 {
			return pw / 2
		}
		return clamp(int(math.Round((v-b.Min)/span*float64(pw-1))), 0, pw-1)
	}

	fmt.Fprintf(&out, "%s: Boxplot (n=%d)\n\n", b.Variable, b.N)

	marks := []rune(strings.Repeat(" ", pw))
	for _, o := range b.Outliers {
		marks[pos(o)] = 'o'
	}
	out.WriteString("  " + strings.TrimRight(string(marks), " ") + "\n")

	line := []rune(strings.Repeat(" ", pw))
	lw, q1, med, q3, uw := pos(b.LowerWhisker), pos(b.Q1), pos(b.Median), pos(b.Q3), pos(b.UpperWhisker)
	for i := lw; i <= uw; i++ {
		line[i] = '─'
	}
	for i := q1; i <= q3; i++ {
		line[i] = '█'
	}
	line[med] = '│'
	line[lw] = '├'
	line[uw] = '┤'
	out.WriteString("  " + strings.TrimRight(string(line), " ") + "\n")
	out.WriteString("  " + strings.Repeat("─", pw) + "\n")

	lo, hi := shortNumber(b.Min), shortNumber(b.Max)
	gap := pw - len(lo) - len(hi)
	if gap < 1 {
		gap = 1
	}
	out.WriteString("  " + lo + strings.Repeat(" ", gap) + hi + "\n\n")
	fmt.Fprintf(&out, "Min: %.2f | Q1: %.2f | Median: %.2f | Q3: %.2f | Max: %.2f\n",
		b.Min, b.Q1, b.Median, b.Q3, b.Max)
	if len(b.Outliers) > 0 {
		fmt.Fprintf(&out, "Outliers: %d values\n", len(b.Outliers))
	}
	_, err := io.WriteString(w, out.String())
	return err
}
