// Package report renders analysis results as text, markdown, HTML, CSV, JSON
// or YAML.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Format is an output encoding.
type Format string

const (
	Text     Format = "text"
	Markdown Format = "markdown"
	JSON     Format = "json"
	YAML     Format = "yaml"
	CSV      Format = "csv"
	HTML     Format = "html"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case Text, Markdown, JSON, YAML, CSV, HTML:
		return f, nil
	case "md":
		return Markdown, nil
	case "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// FormatForPath picks the format from an output file extension. Unknown
// extensions get plain text.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return Markdown
	case ".json":
		return JSON
	case ".yaml", ".yml":
		return YAML
	case ".csv":
		return CSV
	case ".html", ".htm":
		return HTML
	}
	return Text
}

// Table is one titled grid of already formatted cells.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

// Document is everything a command prints. Body, Tables and Notes feed the
// text, markdown and HTML renderers, CSV gets only the Tables, and Data is the
// structured payload for JSON and YAML.
type Document struct {
	Command string
	Source  string
	RunID   string
	Body    string
	Tables  []Table
	Notes   []string
	Data    any
}

// Render writes d to w in format f.
func (d *Document) Render(w io.Writer, f Format) error {
	switch f {
	case Text, "":
		return d.writeText(w)
	case Markdown:
		return d.writeMarkdown(w)
	case CSV:
		return d.writeCSV(w)
	case HTML:
		return d.writeHTML(w)
	case JSON:
		return writeJSON(w, d.envelope())
	case YAML:
		return writeYAML(w, d.envelope())
	}
	return fmt.Errorf("unknown output format %q", f)
}

func (d *Document) writeText(w io.Writer) error {
	if d.Body != "" {
		if _, err := io.WriteString(w, d.Body); err != nil {
			return err
		}
	}
	for i, t := range d.Tables {
		if i > 0 || d.Body != "" {
			fmt.Fprintln(w)
		}
		if t.Title != "" {
			fmt.Fprintf(w, "%s:\n", t.Title)
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(t.Header, "\t"))
		rule := make([]string, len(t.Header))
		for j, h := range t.Header {
			rule[j] = strings.Repeat("-", len([]rune(h)))
		}
		fmt.Fprintln(tw, strings.Join(rule, "\t"))
		for _, r := range t.Rows {
			fmt.Fprintln(tw, strings.Join(r, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return d.writeNotes(w, "")
}

func (d *Document) writeMarkdown(w io.Writer) error {
	if d.Command != "" {
		fmt.Fprintf(w, "# %s", d.Command)
		if d.Source != "" {
			fmt.Fprintf(w, ": %s", d.Source)
		}
		fmt.Fprint(w, "\n\n")
	}
	if d.Body != "" {
		fmt.Fprintf(w, "```\n%s```\n\n", d.Body)
	}
	for _, t := range d.Tables {
		if t.Title != "" {
			fmt.Fprintf(w, "## %s\n\n", t.Title)
		}
		fmt.Fprintf(w, "| %s |\n", strings.Join(escapeCells(t.Header), " | "))
		sep := make([]string, len(t.Header))
		for i := range sep {
			sep[i] = "---"
		}
		fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | "))
		for _, r := range t.Rows {
			fmt.Fprintf(w, "| %s |\n", strings.Join(escapeCells(r), " | "))
		}
		fmt.Fprintln(w)
	}
	return d.writeNotes(w, "- ")
}

func (d *Document) writeNotes(w io.Writer, bullet string) error {
	if len(d.Notes) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	for _, n := range d.Notes {
		if _, err := fmt.Fprintf(w, "%s%s\n", bullet, n); err != nil {
			return err
		}
	}
	return nil
}

// writeCSV emits each table with its header; tables are separated by a blank record.
func (d *Document) writeCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	for i, t := range d.Tables {
		if i > 0 {
			if err := cw.Write([]string{}); err != nil {
				return err
			}
		}
		if err := cw.Write(t.Header); err != nil {
			return err
		}
		if err := cw.WriteAll(t.Rows); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	return out
}

// Num formats a statistic. Undefined values print as N/A.
func Num(v float64) string {
	switch {
	case math.IsNaN(v):
		return "N/A"
	case math.IsInf(v, 1):
		return "Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	case v == 0 || math.Abs(v) >= 1:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// Signed is Num with an explicit plus sign on positive deltas.
func Signed(v float64) string {
	s := Num(v)
	if v > 0 && !math.IsInf(v, 1) {
		return "+" + s
	}
	return s
}

// Pct formats a percentage with two decimals.
func Pct(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}
