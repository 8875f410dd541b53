package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

func readDelimited(name string, r io.Reader, opt Options) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(firstLine(data))
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, rec)
	}
	return shape(name, header, rows, opt)
}

// firstLine returns the first non-blank line of data, whatever its length.
func firstLine(data []byte) string {
	for len(data) > 0 {
		line := data
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			data = nil
		}
		if len(bytes.TrimSpace(line)) > 0 {
			return string(bytes.TrimSuffix(line, []byte("\r")))
		}
	}
	return ""
}

// sniffDelimiter picks the most frequent of tab, comma and semicolon in the
// header line. Ties go to comma.
func sniffDelimiter(line string) rune {
	best, bestCount := ',', strings.Count(line, ",")
	for _, d := range []rune{'\t', ';'} {
		if c := strings.Count(line, string(d)); c > bestCount {
			best, bestCount = d, c
		}
	}
	return best
}
