package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/statsctl/internal/analysis"
	"github.com/KaramelBytes/statsctl/internal/report"
)

var (
	cmpVars   []string
	cmpOutput string
)

var compareCmd = &cobra.Command{
	Use:   "compare <file1> <file2>",
	Short: "Compare two datasets column by column",
	Long: `Profile two datasets independently and compare shared columns: summary
statistics of numeric columns and missing counts of all columns. Columns
present in only one dataset are listed separately.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		resA, err := loadTable(cmd, args[0])
		if err != nil {
			return err
		}
		resB, err := loadTable(cmd, args[1])
		if err != nil {
			return err
		}
		rep, err := analysis.Compare(cmd.Context(), resA.Table, resB.Table, cmpVars, analysisOptions())
		if err != nil {
			return err
		}
		logger.Debug("datasets compared",
			zap.Int("shared", len(rep.Shared)),
			zap.Int("only_a", len(rep.OnlyA)),
			zap.Int("only_b", len(rep.OnlyB)))

		labelA, labelB := rep.NameA, rep.NameB
		if labelA == labelB {
			labelA, labelB = labelA+" (1)", labelB+" (2)"
		}
		doc := &report.Document{
			Command: "compare",
			Source:  fmt.Sprintf("%s vs %s", labelA, labelB),
			Body:    fmt.Sprintf("Rows: %s %d, %s %d\n", labelA, rep.RowsA, labelB, rep.RowsB),
			Tables:  report.ComparisonTables(rep, labelA, labelB),
			Notes:   append(loadNotes(resA), loadNotes(resB)...),
			Data:    report.NewComparisonData(rep),
		}
		for _, c := range rep.Shared {
			if c.KindA != c.KindB {
				doc.Notes = append(doc.Notes, fmt.Sprintf("%s is %s in %s but %s in %s", c.Variable, c.KindA, labelA, c.KindB, labelB))
			}
		}
		return emit(cmd, doc, cmpOutput)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringSliceVar(&cmpVars, "vars", nil, "only compare these columns (comma separated)")
	compareCmd.Flags().StringVarP(&cmpOutput, "output", "o", "", "write the report to a file (.md, .html, .json, .yaml, .csv or text)")
}
