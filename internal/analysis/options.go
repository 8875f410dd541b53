package analysis

import (
	"runtime"
	"strings"
)

// QuantileMethod names a quantile interpolation convention.
type QuantileMethod string

// CorrelationMethod names a correlation coefficient.
type CorrelationMethod string

const (
	// QuantileLinear interpolates between order statistics at rank p*(n-1).
	QuantileLinear QuantileMethod = "linear"

	Pearson CorrelationMethod = "pearson"
)

// Options is the immutable configuration threaded through engine calls.
type Options struct {
	// BoolTrue and BoolFalse form the boolean vocabulary, compared lower-cased.
	BoolTrue  []string
	BoolFalse []string
	Quantile  QuantileMethod
	Method    CorrelationMethod
	// MinCorrelation is the |r| threshold used by report views; it never
	// changes matrix values.
	MinCorrelation float64
	// Workers caps concurrent per-column and per-pair tasks; 0 means GOMAXPROCS.
	Workers int
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		BoolTrue:       []string{"true", "yes", "1"},
		BoolFalse:      []string{"false", "no", "0"},
		Quantile:       QuantileLinear,
		Method:         Pearson,
		MinCorrelation: 0.5,
	}
}

// Validate checks the method settings.
func (o Options) Validate() error {
	if o.Quantile != "" && o.Quantile != QuantileLinear {
		return &UnsupportedMethodError{Setting: "quantile method", Value: string(o.Quantile)}
	}
	if o.Method != "" && o.Method != Pearson {
		return &UnsupportedMethodError{Setting: "correlation method", Value: string(o.Method)}
	}
	return nil
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// boolVocabulary maps lower-cased tokens to their truth value.
func (o Options) boolVocabulary() map[string]bool {
	t, f := o.BoolTrue, o.BoolFalse
	if t == nil && f == nil {
		d := DefaultOptions()
		t, f = d.BoolTrue, d.BoolFalse
	}
	vocab := make(map[string]bool, len(t)+len(f))
	for _, s := range t {
		vocab[strings.ToLower(strings.TrimSpace(s))] = true
	}
	for _, s := range f {
		vocab[strings.ToLower(strings.TrimSpace(s))] = false
	}
	return vocab
}
