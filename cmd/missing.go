package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/statsctl/internal/analysis"
	"github.com/KaramelBytes/statsctl/internal/report"
)

const maxPatterns = 10

var (
	missOnly     bool
	missPatterns bool
	missVars     []string
	missOutput   string
)

var missingCmd = &cobra.Command{
	Use:   "missing <file>",
	Short: "Missing value counts per column and per row",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, cols, err := inferColumns(cmd, args[0], missVars)
		if err != nil {
			return err
		}
		sum := analysis.AnalyzeMissing(cols)
		logger.Debug("missingness analyzed",
			zap.Int("rows", sum.TotalRows),
			zap.Int("rows_with_missing", sum.RowsWithAnyMissing))

		reports := sum.Reports
		if missOnly {
			reports = analysis.OnlyMissing(reports)
		}
		doc := &report.Document{
			Command: "missing",
			Source:  res.Table.Name,
			Body:    report.MissingOverview(sum) + "\n",
			Notes:   loadNotes(res),
		}
		if len(reports) > 0 {
			doc.Tables = append(doc.Tables, report.MissingTable(reports))
		}
		var patterns []analysis.MissingPattern
		if missPatterns {
			patterns = analysis.IncompletePatterns(analysis.MissingPatterns(cols), maxPatterns)
			if len(patterns) > 0 {
				doc.Tables = append(doc.Tables, report.PatternsTable(patterns))
			}
		}
		doc.Data = report.NewMissingData(reports, sum, patterns)
		return emit(cmd, doc, missOutput)
	},
}

func init() {
	rootCmd.AddCommand(missingCmd)
	missingCmd.Flags().BoolVar(&missOnly, "only-missing", false, "list only columns with at least one missing value")
	missingCmd.Flags().BoolVar(&missPatterns, "patterns", false, "show the most common combinations of missing columns")
	missingCmd.Flags().StringSliceVar(&missVars, "vars", nil, "only analyze these columns (comma separated)")
	missingCmd.Flags().StringVarP(&missOutput, "output", "o", "", "write the report to a file (.md, .html, .json, .yaml, .csv or text)")
}
