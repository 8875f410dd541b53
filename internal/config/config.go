package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Type inference
	BoolTrue      []string `mapstructure:"bool_true" yaml:"bool_true"`
	BoolFalse     []string `mapstructure:"bool_false" yaml:"bool_false"`
	MissingTokens []string `mapstructure:"missing_tokens" yaml:"missing_tokens"`

	// Statistics
	MinCorrelation    float64 `mapstructure:"min_correlation" yaml:"min_correlation"`
	QuantileMethod    string  `mapstructure:"quantile_method" yaml:"quantile_method"`
	CorrelationMethod string  `mapstructure:"correlation_method" yaml:"correlation_method"`
	Workers           int     `mapstructure:"workers" yaml:"workers"`

	// Input
	MaxRows   int    `mapstructure:"max_rows" yaml:"max_rows"`
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`

	// Output and logging
	LogLevel     string `mapstructure:"log_level" yaml:"log_level"`
	LogEncoding  string `mapstructure:"log_encoding" yaml:"log_encoding"`
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
}

// Keys lists the settable keys in display order.
var Keys = []string{
	"bool_true", "bool_false", "missing_tokens",
	"min_correlation", "quantile_method", "correlation_method", "workers",
	"max_rows", "delimiter",
	"log_level", "log_encoding", "output_format",
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".statsctl"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.statsctl/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bool_true", []string{"true", "yes", "1"})
	v.SetDefault("bool_false", []string{"false", "no", "0"})
	v.SetDefault("missing_tokens", []string{"", "NA", "na", "N/A", "n/a", "null", "NULL", ".", "NaN", "nan", "-", "None", "none"})
	v.SetDefault("min_correlation", 0.5)
	v.SetDefault("quantile_method", "linear")
	v.SetDefault("correlation_method", "pearson")
	v.SetDefault("workers", 0)
	v.SetDefault("max_rows", 0)
	v.SetDefault("delimiter", "")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_encoding", "console")
	v.SetDefault("output_format", "text")
}

// Default returns the built-in configuration without reading files or env.
func Default() *Global {
	v := viper.New()
	setDefaults(v)
	var c Global
	_ = v.Unmarshal(&c)
	return &c
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("STATSCTL")
	v.AutomaticEnv()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks ranges and enumerations.
func (c *Global) Validate() error {
	if c.MinCorrelation < 0 || c.MinCorrelation > 1 {
		return fmt.Errorf("min_correlation must be within [0, 1], got %v", c.MinCorrelation)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.MaxRows < 0 {
		return fmt.Errorf("max_rows must be >= 0, got %d", c.MaxRows)
	}
	if _, err := ParseDelimiter(c.Delimiter); err != nil {
		return err
	}
	switch c.OutputFormat {
	case "text", "markdown", "html", "json", "yaml", "csv":
	default:
		return fmt.Errorf("invalid output_format: %s (use text, markdown, html, json, yaml or csv)", c.OutputFormat)
	}
	return nil
}

// ParseDelimiter accepts a single character or one of the names tab, comma and semicolon.
// An empty string means auto-detect and yields 0.
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	case "comma":
		return ',', nil
	case "semicolon":
		return ';', nil
	}
	r := []rune(s)
	if len(r) != 1 || r[0] == '"' || r[0] == '\n' || r[0] == '\r' {
		return 0, fmt.Errorf("invalid delimiter: %q", s)
	}
	return r[0], nil
}

// Set assigns one key from its string form.
func (c *Global) Set(key, val string) error {
	switch key {
	case "bool_true":
		c.BoolTrue = splitList(val, false)
	case "bool_false":
		c.BoolFalse = splitList(val, false)
	case "missing_tokens":
		c.MissingTokens = splitList(val, true)
	case "min_correlation":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f < 0 || f > 1 {
			return fmt.Errorf("invalid float for min_correlation: %v", val)
		}
		c.MinCorrelation = f
	case "quantile_method":
		c.QuantileMethod = val
	case "correlation_method":
		c.CorrelationMethod = val
	case "workers":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for workers: %v", val)
		}
		c.Workers = i
	case "max_rows":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for max_rows: %v", val)
		}
		c.MaxRows = i
	case "delimiter":
		if _, err := ParseDelimiter(val); err != nil {
			return err
		}
		c.Delimiter = val
	case "log_level":
		switch val {
		case "debug", "info", "warn", "error":
			c.LogLevel = val
		default:
			return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
		}
	case "log_encoding":
		switch val {
		case "console", "json":
			c.LogEncoding = val
		default:
			return fmt.Errorf("invalid log_encoding: %s (use console or json)", val)
		}
	case "output_format":
		switch val {
		case "text", "markdown", "html", "json", "yaml", "csv":
			c.OutputFormat = val
		default:
			return fmt.Errorf("invalid output_format: %s (use text, markdown, html, json, yaml or csv)", val)
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// Get renders one key for display.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "bool_true":
		return strings.Join(c.BoolTrue, ","), nil
	case "bool_false":
		return strings.Join(c.BoolFalse, ","), nil
	case "missing_tokens":
		return quoteList(c.MissingTokens), nil
	case "min_correlation":
		return strconv.FormatFloat(c.MinCorrelation, 'g', -1, 64), nil
	case "quantile_method":
		return c.QuantileMethod, nil
	case "correlation_method":
		return c.CorrelationMethod, nil
	case "workers":
		return strconv.Itoa(c.Workers), nil
	case "max_rows":
		return strconv.Itoa(c.MaxRows), nil
	case "delimiter":
		return strconv.Quote(c.Delimiter), nil
	case "log_level":
		return c.LogLevel, nil
	case "log_encoding":
		return c.LogEncoding, nil
	case "output_format":
		return c.OutputFormat, nil
	}
	return "", fmt.Errorf("unknown key: %s", key)
}

// splitList splits a comma separated value. Empty items are kept only when
// keepEmpty is set, so "" can be listed as a missing token.
func splitList(s string, keepEmpty bool) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" || keepEmpty {
			out = append(out, p)
		}
	}
	return out
}

func quoteList(vals []string) string {
	q := make([]string, len(vals))
	for i, v := range vals {
		q[i] = strconv.Quote(v)
	}
	return strings.Join(q, ", ")
}
