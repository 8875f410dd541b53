package loader

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/linkedin/goavro/v2"
	"github.com/pierrec/lz4/v4"
)

const tsvBody = "x\ty\n1\t2\n3\tNA\n"

func compressed(t *testing.T, name string, wrap func(io.Writer) (io.WriteCloser, error)) string {
	t.Helper()
	var buf bytes.Buffer
	w, err := wrap(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(w, tsvBody); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadCompressed(t *testing.T) {
	cases := map[string]func(io.Writer) (io.WriteCloser, error){
		"data.tsv.gz": func(w io.Writer) (io.WriteCloser, error) { return gzip.NewWriter(w), nil },
		"data.tsv.zst": func(w io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(w)
		},
		"data.tsv.lz4": func(w io.Writer) (io.WriteCloser, error) { return lz4.NewWriter(w), nil },
	}
	for name, wrap := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := Load(compressed(t, name, wrap), DefaultOptions())
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if got := strings.Join(res.Table.Columns(), "|"); got != "x|y" {
				t.Fatalf("columns = %s", got)
			}
			y, _ := res.Table.Column("y")
			if res.Table.Rows() != 2 || !y[0].Present || y[1].Present {
				t.Errorf("rows = %d, y = %+v", res.Table.Rows(), y)
			}
			if res.Table.Name != name {
				t.Errorf("name = %q", res.Table.Name)
			}
		})
	}
}

func TestSplitCompression(t *testing.T) {
	tests := []struct {
		path, inner string
		comp        Compression
	}{
		{"a.csv", "a.csv", NoCompression},
		{"a.csv.GZ", "a.csv", Gzip},
		{"dir/a.avro.zst", "dir/a.avro", Zstd},
		{"a.tsv.lz4", "a.tsv", LZ4},
	}
	for _, tt := range tests {
		inner, comp := splitCompression(tt.path)
		if inner != tt.inner || comp != tt.comp {
			t.Errorf("splitCompression(%q) = %q, %q", tt.path, inner, comp)
		}
	}
	if _, err := Load(writeFile(t, "book.xlsx.gz", "x"), DefaultOptions()); err == nil {
		t.Error("expected error for compressed workbook")
	}
}

func TestLoadAvro(t *testing.T) {
	schema := `{"type":"record","name":"obs","fields":[
		{"name":"id","type":"long"},
		{"name":"score","type":["null","double"]},
		{"name":"label","type":"string"}]}`
	p := filepath.Join(t.TempDir(), "obs.avro")
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	w, err := goavro.NewOCFWriter(goavro.OCFConfig{W: f, Schema: schema})
	if err != nil {
		t.Fatal(err)
	}
	err = w.Append([]any{
		map[string]any{"id": int64(1), "score": goavro.Union("double", 2.5), "label": "a"},
		map[string]any{"id": int64(2), "score": nil, "label": "b"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	// without "" in the vocabulary, null must still be missing
	res, err := Load(p, Options{MissingTokens: []string{"NA"}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := strings.Join(res.Table.Columns(), "|"); got != "id|score|label" {
		t.Fatalf("columns = %s", got)
	}
	score, _ := res.Table.Column("score")
	if !score[0].Present || score[0].Text != "2.5" || score[1].Present {
		t.Errorf("score = %+v", score)
	}
	id, _ := res.Table.Column("id")
	if id[1].Text != "2" {
		t.Errorf("id = %+v", id)
	}
}

func TestAvroText(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{int32(7), "7"},
		{float32(0.5), "0.5"},
		{true, "true"},
		{[]byte("raw"), "raw"},
		{map[string]any{"string": "u"}, "u"},
	}
	for _, tt := range tests {
		if got := avroText(tt.in); got != tt.want {
			t.Errorf("avroText(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
