// Package loader turns CSV, TSV, XLSX and Avro input, optionally compressed,
// into analysis.RawTable values.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/statsctl/internal/analysis"
)

// Options controls how input is read.
type Options struct {
	// Delimiter for CSV. If 0, detected from the extension and header line.
	Delimiter rune
	// MaxRows limits data rows kept; 0 means unlimited.
	MaxRows int
	// MissingTokens are cell texts read as missing after trimming.
	MissingTokens []string
	// Strict rejects rows with more fields than the header instead of truncating.
	Strict bool
	// SheetName selects an XLSX sheet by name.
	SheetName string
	// SheetIndex selects an XLSX sheet, 1-based. Ignored when SheetName is set.
	SheetIndex int
}

// DefaultMissingTokens is the built-in missing value vocabulary.
func DefaultMissingTokens() []string {
	return []string{"", "NA", "na", "N/A", "n/a", "null", "NULL", ".", "NaN", "nan", "-", "None", "none"}
}

// DefaultOptions returns reasonable defaults for loading.
func DefaultOptions() Options {
	return Options{MissingTokens: DefaultMissingTokens()}
}

// Result is a loaded table plus what the loader had to adjust on the way.
type Result struct {
	Table *analysis.RawTable
	// Rows is the number of data rows seen in the input; Table may hold fewer.
	Rows     int
	Warnings []string
}

// Truncated reports whether MaxRows cut the input short.
func (r *Result) Truncated() bool { return r.Table.Rows() < r.Rows }

// ErrEmptyInput is returned when the input has no header line.
var ErrEmptyInput = errors.New("input is empty")

// Load reads path, choosing the format by extension. A trailing .gz, .zst
// or .lz4 is decompressed first and the extension before it decides the format.
func Load(path string, opt Options) (*Result, error) {
	inner, comp := splitCompression(path)
	ext := strings.ToLower(filepath.Ext(inner))
	switch ext {
	case ".xlsx", ".xlsm":
		if comp != NoCompression {
			return nil, fmt.Errorf("%s: compressed workbooks are not supported", path)
		}
		return loadXLSX(path, opt)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	r, err := decompress(comp, f)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer r.Close()

	var res *Result
	if ext == ".avro" {
		res, err = readAvro(filepath.Base(path), r, opt)
	} else {
		if opt.Delimiter == 0 && ext == ".tsv" {
			opt.Delimiter = '\t'
		}
		res, err = readDelimited(filepath.Base(path), r, opt)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return res, nil
}

// LoadReader reads delimited text from r, e.g. standard input.
func LoadReader(name string, r io.Reader, opt Options) (*Result, error) {
	res, err := readDelimited(name, r, opt)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return res, nil
}

// missingSet builds the predicate handed to analysis.FromRows.
func missingSet(tokens []string) func(string) bool {
	if tokens == nil {
		tokens = DefaultMissingTokens()
	}
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[strings.TrimSpace(t)] = struct{}{}
	}
	return func(s string) bool {
		_, ok := set[s]
		return ok
	}
}

// normalizeHeader trims names, fills blanks and makes duplicates unique.
func normalizeHeader(raw []string) ([]string, []string) {
	var warnings []string
	out := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, h := range raw {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
			warnings = append(warnings, fmt.Sprintf("column %d has no name; using %q", i+1, name))
		}
		if n, dup := seen[name]; dup {
			renamed := fmt.Sprintf("%s_%d", name, n+1)
			for seen[renamed] > 0 {
				n++
				renamed = fmt.Sprintf("%s_%d", name, n+1)
			}
			warnings = append(warnings, fmt.Sprintf("duplicate column %q renamed to %q", name, renamed))
			seen[name] = n + 1
			name = renamed
		}
		seen[name]++
		out[i] = name
	}
	return out, warnings
}

// shape pads, truncates and trims rows to the header width and applies MaxRows.
func shape(name string, header []string, rows [][]string, opt Options) (*Result, error) {
	names, warnings := normalizeHeader(header)
	res := &Result{Rows: len(rows), Warnings: warnings}
	if opt.MaxRows > 0 && len(rows) > opt.MaxRows {
		rows = rows[:opt.MaxRows]
		res.Warnings = append(res.Warnings, fmt.Sprintf("processed first %d of %d rows", opt.MaxRows, res.Rows))
	}
	long := 0
	for i, rec := range rows {
		if len(rec) > len(names) {
			if opt.Strict {
				return nil, fmt.Errorf("row %d has %d fields, header has %d", i+1, len(rec), len(names))
			}
			long++
			rec = rec[:len(names)]
		}
		for j := range rec {
			rec[j] = strings.TrimSpace(rec[j])
		}
		rows[i] = rec
	}
	if long > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%d rows had extra fields and were truncated", long))
	}
	tbl, err := analysis.FromRows(name, names, rows, missingSet(opt.MissingTokens))
	if err != nil {
		return nil, err
	}
	res.Table = tbl
	return res, nil
}
