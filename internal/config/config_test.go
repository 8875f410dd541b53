package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsFromEmptyFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.MinCorrelation != 0.5 || c.QuantileMethod != "linear" || c.CorrelationMethod != "pearson" {
		t.Errorf("unexpected defaults: %+v", c)
	}
	if len(c.BoolTrue) != 3 || c.BoolTrue[0] != "true" {
		t.Errorf("bool_true = %v", c.BoolTrue)
	}
	if len(c.MissingTokens) != 13 || c.MissingTokens[0] != "" {
		t.Errorf("missing_tokens = %q", c.MissingTokens)
	}
}

func TestFileAndEnvPrecedence(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	data := "min_correlation: 0.8\nworkers: 2\nbool_true: [\"si\"]\n"
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STATSCTL_WORKERS", "6")
	c, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.MinCorrelation != 0.8 {
		t.Errorf("min_correlation = %v, want 0.8 from file", c.MinCorrelation)
	}
	if c.Workers != 6 {
		t.Errorf("workers = %d, want 6 from env", c.Workers)
	}
	if len(c.BoolTrue) != 1 || c.BoolTrue[0] != "si" {
		t.Errorf("bool_true = %v", c.BoolTrue)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte("min_correlation: 1.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(p); err == nil {
		t.Fatal("expected out-of-range min_correlation to fail")
	}
}

func TestSetSaveLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range map[string]string{
		"min_correlation": "0.7",
		"delimiter":       "tab",
		"missing_tokens":  ",NA,?",
		"output_format":   "json",
	} {
		if err := c.Set(k, v); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}
	if err := Save(c, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	back, err := Load(p)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if back.MinCorrelation != 0.7 || back.Delimiter != "tab" || back.OutputFormat != "json" {
		t.Errorf("reloaded = %+v", back)
	}
	if got, _ := back.Get("missing_tokens"); got != `"", "NA", "?"` {
		t.Errorf("missing_tokens = %s", got)
	}
}

func TestSetRejects(t *testing.T) {
	c := &Global{}
	for k, v := range map[string]string{
		"min_correlation": "2",
		"workers":         "-1",
		"delimiter":       "ab",
		"log_level":       "loud",
		"output_format":   "pdf",
		"nope":            "x",
	} {
		if err := c.Set(k, v); err == nil {
			t.Errorf("set %s=%s: expected error", k, v)
		}
	}
}

func TestParseDelimiter(t *testing.T) {
	tests := map[string]rune{"": 0, "tab": '\t', `\t`: '\t', ";": ';', "comma": ',', "|": '|'}
	for in, want := range tests {
		got, err := ParseDelimiter(in)
		if err != nil || got != want {
			t.Errorf("ParseDelimiter(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
}
