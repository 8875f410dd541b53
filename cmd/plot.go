package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/statsctl/internal/analysis"
	"github.com/KaramelBytes/statsctl/internal/plot"
	"github.com/KaramelBytes/statsctl/internal/report"
)

var (
	plotVars   []string
	plotVar    string
	plotType   string
	plotWidth  int
	plotHeight int
	plotOutput string
)

var plotCmd = &cobra.Command{
	Use:   "plot <file>",
	Short: "Draw histograms, boxplots or scatter plots in the terminal",
	Long: `Draw a histogram or boxplot of each selected numeric column (all numeric
columns when --vars is omitted), or a scatter plot of exactly two columns.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := plot.ParseKind(plotType)
		if err != nil {
			return err
		}
		vars := plotVars
		if plotVar != "" {
			vars = append([]string{plotVar}, vars...)
		}
		if kind == plot.Scatter && len(vars) != 2 {
			return fmt.Errorf("scatter plot needs exactly 2 variables via --vars, got %d", len(vars))
		}
		res, cols, err := inferColumns(cmd, args[0], vars)
		if err != nil {
			return err
		}
		if kind == plot.Scatter && len(cols) != 2 {
			return fmt.Errorf("scatter plot needs 2 distinct variables, got %s", strings.Join(vars, ", "))
		}
		if len(vars) == 0 {
			cols = analysis.NumericColumns(cols)
			if len(cols) == 0 {
				return fmt.Errorf("no numeric variables to plot in %s", res.Table.Name)
			}
		}
		format, err := outputFormat(plotOutput)
		if err != nil {
			return err
		}

		doc := &report.Document{Command: "plot", Source: res.Table.Name, Notes: loadNotes(res)}
		var body strings.Builder
		switch kind {
		case plot.Scatter:
			xs, ys, err := analysis.PairedValues(cols[0], cols[1])
			if err != nil {
				return err
			}
			s := plot.NewScatter(cols[0].Name, cols[1].Name, xs, ys, plotWidth, plotHeight)
			if err := s.Render(&body); err != nil {
				return err
			}
			doc.Data = s
			if format == report.CSV {
				doc.Tables = append(doc.Tables, pairsTable(cols[0].Name, cols[1].Name, xs, ys))
			}
		case plot.Histogram:
			var hists []plot.HistogramData
			for i, c := range cols {
				vals, err := analysis.PresentValues(c)
				if err != nil {
					return err
				}
				h := plot.NewHistogram(c.Name, vals, plotWidth)
				if i > 0 {
					body.WriteString("\n")
				}
				if err := h.Render(&body, plotHeight); err != nil {
					return err
				}
				hists = append(hists, h)
				if format == report.CSV {
					doc.Tables = append(doc.Tables, binsTable(h))
				}
			}
			doc.Data = hists
		case plot.Boxplot:
			var boxes []plot.BoxplotData
			for i, c := range cols {
				vals, err := analysis.PresentValues(c)
				if err != nil {
					return err
				}
				b := plot.NewBoxplot(c.Name, vals)
				if i > 0 {
					body.WriteString("\n")
				}
				if err := b.Render(&body, plotWidth); err != nil {
					return err
				}
				boxes = append(boxes, b)
			}
			doc.Data = boxes
			if format == report.CSV {
				doc.Tables = append(doc.Tables, boxTable(boxes))
			}
		}
		logger.Debug("plot drawn", zap.String("type", string(kind)), zap.Int("variables", len(cols)))
		doc.Body = body.String()
		return emit(cmd, doc, plotOutput)
	},
}

func binsTable(h plot.HistogramData) report.Table {
	t := report.Table{Title: h.Variable, Header: []string{"Bin Start", "Bin End", "Count"}}
	for i, c := range h.Counts {
		lo := h.Min + float64(i)*h.BinWidth
		t.Rows = append(t.Rows, []string{report.Num(lo), report.Num(lo + h.BinWidth), strconv.Itoa(c)})
	}
	return t
}

func boxTable(boxes []plot.BoxplotData) report.Table {
	t := report.Table{
		Title:  "Boxplot",
		Header: []string{"Variable", "N", "Min", "Lower Whisker", "Q1", "Median", "Q3", "Upper Whisker", "Max", "Outliers"},
	}
	for _, b := range boxes {
		t.Rows = append(t.Rows, []string{
			b.Variable, strconv.Itoa(b.N), report.Num(b.Min), report.Num(b.LowerWhisker), report.Num(b.Q1),
			report.Num(b.Median), report.Num(b.Q3), report.Num(b.UpperWhisker), report.Num(b.Max),
			strconv.Itoa(len(b.Outliers)),
		})
	}
	return t
}

func pairsTable(x, y string, xs, ys []float64) report.Table {
	t := report.Table{Title: y + " vs " + x, Header: []string{x, y}}
	for i := range xs {
		t.Rows = append(t.Rows, []string{
			strconv.FormatFloat(xs[i], 'g', -1, 64),
			strconv.FormatFloat(ys[i], 'g', -1, 64),
		})
	}
	return t
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.Flags().StringSliceVar(&plotVars, "vars", nil, "columns to plot (comma separated; scatter takes x,y)")
	plotCmd.Flags().StringVar(&plotVar, "var", "", "single column to plot (combined with --vars)")
	plotCmd.Flags().StringVarP(&plotType, "type", "t", "histogram", "plot type: histogram|hist, boxplot|box, scatter")
	plotCmd.Flags().IntVar(&plotWidth, "width", plot.DefaultWidth, "plot width in characters")
	plotCmd.Flags().IntVar(&plotHeight, "height", plot.DefaultHeight, "plot height in lines")
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "", "write the plot to a file (.md, .html, .json, .yaml, .csv or text)")
}
