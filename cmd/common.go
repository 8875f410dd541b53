package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/statsctl/internal/analysis"
	cfgpkg "github.com/KaramelBytes/statsctl/internal/config"
	"github.com/KaramelBytes/statsctl/internal/loader"
	"github.com/KaramelBytes/statsctl/internal/report"
	"github.com/KaramelBytes/statsctl/internal/utils"
)

// analysisOptions maps the loaded config onto engine options.
func analysisOptions() analysis.Options {
	return analysis.Options{
		BoolTrue:       cfg.BoolTrue,
		BoolFalse:      cfg.BoolFalse,
		Quantile:       analysis.QuantileMethod(cfg.QuantileMethod),
		Method:         analysis.CorrelationMethod(cfg.CorrelationMethod),
		MinCorrelation: cfg.MinCorrelation,
		Workers:        cfg.Workers,
	}
}

func loaderOptions() loader.Options {
	delim, _ := cfgpkg.ParseDelimiter(cfg.Delimiter)
	tokens := cfg.MissingTokens
	if tokens == nil {
		tokens = loader.DefaultMissingTokens()
	}
	return loader.Options{
		Delimiter:     delim,
		MaxRows:       cfg.MaxRows,
		MissingTokens: tokens,
		Strict:        flagStrict,
		SheetName:     flagSheetName,
		SheetIndex:    flagSheetIndex,
	}
}

// loadTable reads path (or stdin when path is "-") and logs what was loaded.
func loadTable(cmd *cobra.Command, path string) (*loader.Result, error) {
	start := time.Now()
	var (
		res *loader.Result
		err error
	)
	if path == "-" {
		res, err = loader.LoadReader("stdin", cmd.InOrStdin(), loaderOptions())
	} else {
		if _, statErr := os.Stat(path); statErr != nil {
			return nil, fmt.Errorf("input file: %w", statErr)
		}
		res, err = loader.Load(path, loaderOptions())
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("table loaded",
		zap.String("source", res.Table.Name),
		zap.Int("rows", res.Table.Rows()),
		zap.Int("columns", len(res.Table.Columns())),
		zap.Bool("truncated", res.Truncated()),
		zap.Duration("elapsed", time.Since(start)))
	for _, w := range res.Warnings {
		logger.Warn("load warning", zap.String("source", res.Table.Name), zap.String("detail", w))
	}
	return res, nil
}

// inferColumns loads path, optionally restricts it to vars and infers types.
func inferColumns(cmd *cobra.Command, path string, vars []string) (*loader.Result, []*analysis.TypedColumn, error) {
	res, err := loadTable(cmd, path)
	if err != nil {
		return nil, nil, err
	}
	t := res.Table
	if len(vars) > 0 {
		if t, err = t.Select(vars); err != nil {
			return nil, nil, err
		}
	}
	start := time.Now()
	cols, err := analysis.InferTable(cmd.Context(), t, analysisOptions())
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("types inferred", zap.Int("columns", len(cols)), zap.Duration("elapsed", time.Since(start)))
	return res, cols, nil
}

// splitErrors flattens an errors.Join result.
func splitErrors(err error) []error {
	if err == nil {
		return nil
	}
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, splitErrors(e)...)
		}
		return out
	}
	return []error{err}
}

// partialNotes turns per-column failures into report notes. Anything other
// than a type mismatch is returned as a hard error.
func partialNotes(err error) ([]string, error) {
	var notes []string
	for _, e := range splitErrors(err) {
		var tm *analysis.TypeMismatchError
		if !errors.As(e, &tm) {
			return nil, e
		}
		logger.Debug("column skipped", zap.String("variable", tm.Variable), zap.String("kind", tm.Kind.String()))
		notes = append(notes, fmt.Sprintf("Skipped %s: %s column", tm.Variable, tm.Kind))
	}
	return notes, nil
}

// loadNotes carries loader warnings into the report.
func loadNotes(res *loader.Result) []string {
	notes := make([]string, 0, len(res.Warnings))
	for _, w := range res.Warnings {
		notes = append(notes, "Note: "+w)
	}
	return notes
}

// emit renders doc to stdout in the configured format, or to outPath with
// the format taken from its extension.
func emit(cmd *cobra.Command, doc *report.Document, outPath string) error {
	doc.RunID = runID
	f, err := outputFormat(outPath)
	if err != nil {
		return err
	}
	if outPath == "" {
		return doc.Render(cmd.OutOrStdout(), f)
	}
	var buf bytes.Buffer
	if err := doc.Render(&buf, f); err != nil {
		return err
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := utils.SafeWriteFile(outPath, buf.Bytes()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s report to %s\n", doc.Command, outPath)
	return nil
}

func outputFormat(outPath string) (report.Format, error) {
	if outPath != "" {
		return report.FormatForPath(outPath), nil
	}
	return report.ParseFormat(cfg.OutputFormat)
}
