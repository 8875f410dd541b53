package loader

import (
	"fmt"
	"io"
	"strconv"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/linkedin/goavro/v2"
)

type avroSchema struct {
	Type   string `json:"type"`
	Fields []struct {
		Name string `json:"name"`
	} `json:"fields"`
}

// readAvro reads an Avro object container file of records. Columns follow
// the schema's field order and null is always missing.
func readAvro(name string, r io.Reader, opt Options) (*Result, error) {
	ocf, err := goavro.NewOCFReader(r)
	if err != nil {
		return nil, fmt.Errorf("open avro: %w", err)
	}
	var schema avroSchema
	if err := gojson.Unmarshal([]byte(ocf.Codec().Schema()), &schema); err != nil {
		return nil, fmt.Errorf("avro schema: %w", err)
	}
	if schema.Type != "record" || len(schema.Fields) == 0 {
		return nil, fmt.Errorf("avro schema must be a record with fields, got %q", schema.Type)
	}
	header := make([]string, len(schema.Fields))
	for i, f := range schema.Fields {
		header[i] = f.Name
	}

	var rows [][]string
	for ocf.Scan() {
		datum, err := ocf.Read()
		if err != nil {
			return nil, fmt.Errorf("avro record %d: %w", len(rows)+1, err)
		}
		rec, ok := datum.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("avro record %d: not a record", len(rows)+1)
		}
		row := make([]string, len(header))
		for i, h := range header {
			row[i] = avroText(rec[h])
		}
		rows = append(rows, row)
	}
	if err := ocf.Err(); err != nil {
		return nil, fmt.Errorf("avro: %w", err)
	}
	// null decodes to "", which must read as missing whatever the vocabulary
	tokens := make([]string, 0, len(opt.MissingTokens)+1)
	opt.MissingTokens = append(append(tokens, opt.MissingTokens...), "")
	return shape(name, header, rows, opt)
}

// avroText renders a decoded Avro value as cell text.
func avroText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case map[string]any:
		// a non-null union branch: {"type": value}
		if len(x) == 1 {
			for _, inner := range x {
				return avroText(inner)
			}
		}
	}
	return fmt.Sprint(v)
}
