package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/statsctl/internal/analysis"
	"github.com/KaramelBytes/statsctl/internal/report"
)

var (
	corrVars   []string
	corrMin    float64
	corrOutput string
)

var correlationCmd = &cobra.Command{
	Use:     "correlation <file>",
	Aliases: []string{"corr"},
	Short:   "Pairwise Pearson correlation matrix of numeric columns",
	Long: `Compute the Pearson correlation of every pair of numeric columns using the
rows where both values are present. Pairs with |r| at or above --min are
listed separately. Non-numeric columns are skipped with a note.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		threshold := cfg.MinCorrelation
		if cmd.Flags().Changed("min") {
			threshold = corrMin
		}
		if threshold < 0 || threshold > 1 {
			return fmt.Errorf("--min must be within [0, 1], got %v", threshold)
		}
		res, cols, err := inferColumns(cmd, args[0], corrVars)
		if err != nil {
			return err
		}
		opt := analysisOptions()
		m, corrErr := analysis.Correlate(cmd.Context(), cols, opt)
		notes, err := partialNotes(corrErr)
		if err != nil {
			return err
		}
		if len(m.Columns) < 2 {
			return fmt.Errorf("need at least 2 numeric variables for correlation, found %d", len(m.Columns))
		}
		method := string(opt.Method)
		if method == "" {
			method = string(analysis.Pearson)
		}
		high := m.Above(threshold)
		logger.Debug("correlation computed", zap.Int("columns", len(m.Columns)), zap.Int("high_pairs", len(high)))

		doc := &report.Document{
			Command: "correlation",
			Source:  res.Table.Name,
			Tables:  []report.Table{report.CorrelationTable(m, method)},
			Notes:   append(loadNotes(res), notes...),
			Data:    report.NewCorrelationData(m, method, threshold),
		}
		if len(high) > 0 {
			doc.Tables = append(doc.Tables, report.HighCorrelationsTable(high, threshold))
		} else {
			doc.Notes = append(doc.Notes, fmt.Sprintf("No pairs with |r| >= %.2f", threshold))
		}
		return emit(cmd, doc, corrOutput)
	},
}

func init() {
	rootCmd.AddCommand(correlationCmd)
	correlationCmd.Flags().StringSliceVar(&corrVars, "vars", nil, "only correlate these columns (comma separated)")
	correlationCmd.Flags().Float64Var(&corrMin, "min", 0.5, "list pairs with |r| at or above this value (default from config)")
	correlationCmd.Flags().StringVarP(&corrOutput, "output", "o", "", "write the report to a file (.md, .html, .json, .yaml, .csv or text)")
}
