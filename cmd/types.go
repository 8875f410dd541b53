package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/statsctl/internal/analysis"
	"github.com/KaramelBytes/statsctl/internal/report"
)

var (
	typesShowLevels bool
	typesOutput     string
)

var typesCmd = &cobra.Command{
	Use:   "types <file>",
	Short: "Show the inferred type of every column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, cols, err := inferColumns(cmd, args[0], nil)
		if err != nil {
			return err
		}
		infos := analysis.DescribeTypes(cols)
		doc := &report.Document{
			Command: "types",
			Source:  res.Table.Name,
			Tables:  []report.Table{report.TypesTable(infos, typesShowLevels)},
			Notes:   loadNotes(res),
			Data:    report.NewTypesData(infos, typesShowLevels),
		}
		return emit(cmd, doc, typesOutput)
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
	typesCmd.Flags().BoolVar(&typesShowLevels, "show-levels", false, "list the levels of low-cardinality columns")
	typesCmd.Flags().StringVarP(&typesOutput, "output", "o", "", "write the report to a file (.md, .html, .json, .yaml, .csv or text)")
}
