package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/statsctl/internal/analysis"
	"github.com/KaramelBytes/statsctl/internal/report"
)

var (
	sumVars   []string
	sumAll    bool
	sumStdin  bool
	sumOutput string
)

var summaryCmd = &cobra.Command{
	Use:   "summary [file]",
	Short: "Descriptive statistics for numeric columns",
	Long: `Summarize every numeric column: count, missing, mean, standard deviation,
minimum, quartiles and maximum. Use --all to add frequency summaries for
boolean and categorical columns.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if sumStdin {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "-"
		if !sumStdin {
			path = args[0]
		}
		res, cols, err := inferColumns(cmd, path, sumVars)
		if err != nil {
			return err
		}
		opt := analysisOptions()
		sums, descErr := analysis.DescribeAll(cmd.Context(), cols, opt)

		doc := &report.Document{Command: "summary", Source: res.Table.Name, Notes: loadNotes(res)}
		var cats []analysis.CategoricalSummary
		if sumAll {
			for _, c := range cols {
				if c.Kind != analysis.Numeric && c.Present() > 0 {
					cats = append(cats, analysis.SummarizeCategorical(c))
				}
			}
		}
		notes, err := partialNotes(descErr)
		if err != nil {
			return err
		}
		// with --all the skipped columns are the categorical ones listed below
		if !sumAll {
			doc.Notes = append(doc.Notes, notes...)
		}
		logger.Debug("summaries computed", zap.Int("numeric", len(sums)), zap.Int("categorical", len(cats)))

		if len(sums) == 0 && len(cats) == 0 {
			doc.Notes = append([]string{"No numeric variables found"}, doc.Notes...)
		}
		if len(sums) > 0 {
			doc.Tables = append(doc.Tables, report.SummaryTable(sums))
		}
		if len(cats) > 0 {
			doc.Tables = append(doc.Tables, report.CategoricalTable(cats))
		}
		doc.Data = report.NewSummaryData(sums, cats)
		return emit(cmd, doc, sumOutput)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringSliceVar(&sumVars, "vars", nil, "only summarize these columns (comma separated)")
	summaryCmd.Flags().BoolVar(&sumAll, "all", false, "include boolean and categorical columns")
	summaryCmd.Flags().BoolVar(&sumStdin, "stdin", false, "read the table from standard input")
	summaryCmd.Flags().StringVarP(&sumOutput, "output", "o", "", "write the report to a file (.md, .html, .json, .yaml, .csv or text)")
}
