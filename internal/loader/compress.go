package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression names a whole-file compression wrapper recognized by extension.
type Compression string

const (
	NoCompression Compression = ""
	Gzip          Compression = "gzip"
	Zstd          Compression = "zstd"
	LZ4           Compression = "lz4"
)

// splitCompression strips a compression suffix from path, so data.tsv.gz
// yields data.tsv and Gzip.
func splitCompression(path string) (string, Compression) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gz", ".gzip":
		return strings.TrimSuffix(path, filepath.Ext(path)), Gzip
	case ".zst", ".zstd":
		return strings.TrimSuffix(path, filepath.Ext(path)), Zstd
	case ".lz4":
		return strings.TrimSuffix(path, filepath.Ext(path)), LZ4
	}
	return path, NoCompression
}

// decompress wraps r in the reader for c. The caller closes the result;
// closing it does not close r.
func decompress(c Compression, r io.Reader) (io.ReadCloser, error) {
	switch c {
	case NoCompression:
		return io.NopCloser(r), nil
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return zr, nil
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return dec.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	}
	return nil, fmt.Errorf("unsupported compression %q", c)
}
