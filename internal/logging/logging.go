// Package logging builds the structured logger used by statsctl commands.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey string

// RunIDKey is the context key for the invocation's run ID.
const RunIDKey contextKey = "run_id"

// Config represents logger configuration
type Config struct {
	Level    string // debug, info, warn, error
	Encoding string // console or json
}

// New builds a logger writing to stderr.
func New(cfg Config) (*zap.Logger, error) {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter builds a logger writing to w.
func NewWithWriter(cfg Config, w io.Writer) (*zap.Logger, error) {
	lvl := cfg.Level
	if lvl == "" {
		lvl = "warn"
	}
	level, err := zapcore.ParseLevel(lvl)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      zapcore.OmitKey,
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	var enc zapcore.Encoder
	switch cfg.Encoding {
	case "", "console":
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encoderConfig)
	case "json":
		enc = zapcore.NewJSONEncoder(encoderConfig)
	default:
		return nil, fmt.Errorf("invalid log encoding %q (use console or json)", cfg.Encoding)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), zap.NewAtomicLevelAt(level))
	return zap.New(core), nil
}

// WithRunID stores the run ID on ctx.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RunIDKey, id)
}

// FromContext returns base annotated with the run ID carried by ctx, if any.
func FromContext(ctx context.Context, base *zap.Logger) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	if id, ok := ctx.Value(RunIDKey).(string); ok {
		return base.With(zap.String("run_id", id))
	}
	return base
}
