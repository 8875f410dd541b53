package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(Config{Level: "warn"}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	log.Info("hidden")
	log.Warn("shown", zap.Int("columns", 3))
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message leaked at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "WARN") {
		t.Errorf("missing warn line: %q", out)
	}
}

func TestJSONRunID(t *testing.T) {
	var buf bytes.Buffer
	base, err := NewWithWriter(Config{Level: "debug", Encoding: "json"}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	ctx := WithRunID(context.Background(), "abc-123")
	FromContext(ctx, base).Debug("loaded")
	if !strings.Contains(buf.String(), `"run_id":"abc-123"`) {
		t.Errorf("run id not attached: %q", buf.String())
	}
}

func TestInvalidConfig(t *testing.T) {
	if _, err := New(Config{Level: "loud"}); err == nil {
		t.Error("expected invalid level error")
	}
	if _, err := New(Config{Encoding: "xml"}); err == nil {
		t.Error("expected invalid encoding error")
	}
}

func TestFromContextNilBase(t *testing.T) {
	if FromContext(context.Background(), nil) == nil {
		t.Fatal("expected a no-op logger")
	}
}
