package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

const (
	// DefaultWarnPerSecond throttles row-degradation warnings to one per
	// second unless configured otherwise.
	DefaultWarnPerSecond = 1.0

	// DefaultDeriveSampleRows caps how many rows schema derivation reads.
	DefaultDeriveSampleRows = 1024

	// DefaultDeriveMinShare is the occurrence share a top-level key needs
	// across the sampled rows before derivation flattens it.
	DefaultDeriveMinShare = 0.8
)

var (
	ErrWarnRate   = errors.New("warn_per_second cannot be negative")
	ErrSampleRows = errors.New("derive_sample_rows must be positive")
	ErrMinShare   = errors.New("derive_min_share must be within (0, 1]")
)

// Options carries the evaluation toggles threaded through prepare. They
// are per-scope values rather than process-wide switches, so batches
// stay deterministic and testable in isolation.
type Options struct {
	// ReuseParse enables the per-scope parse cache for text documents.
	ReuseParse bool `yaml:"reuse_parse"`

	// LazyDynamicFlattening routes a query naming a key outside a
	// flattened schema to the remainder column instead of failing the
	// batch.
	LazyDynamicFlattening bool `yaml:"lazy_dynamic_flattening"`

	// WarnPerSecond bounds how often degraded rows are logged. Zero
	// logs every degradation.
	WarnPerSecond float64 `yaml:"warn_per_second"`

	// DeriveSampleRows caps how many rows schema derivation samples.
	DeriveSampleRows int `yaml:"derive_sample_rows"`

	// DeriveMinShare is the minimum share of sampled rows a key must
	// appear in to be flattened.
	DeriveMinShare float64 `yaml:"derive_min_share"`
}

// Default returns the options used when no configuration is supplied.
func Default() Options {
	return Options{
		ReuseParse:            true,
		LazyDynamicFlattening: true,
		WarnPerSecond:         DefaultWarnPerSecond,
		DeriveSampleRows:      DefaultDeriveSampleRows,
		DeriveMinShare:        DefaultDeriveMinShare,
	}
}

// Load reads YAML options from path on top of the defaults.
func Load(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read options file: %w", err)
	}

	opts, err := Parse(data)
	if err != nil {
		return Options{}, fmt.Errorf("options file %s: %w", path, err)
	}
	return opts, nil
}

// Parse decodes YAML options on top of the defaults, so a file only
// needs to name the toggles it changes.
func Parse(data []byte) (Options, error) {
	opts := Default()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("decode options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Validate rejects option values evaluation cannot honor.
func (o Options) Validate() error {
	if o.WarnPerSecond < 0 {
		return fmt.Errorf("%w, got %v", ErrWarnRate, o.WarnPerSecond)
	}
	if o.DeriveSampleRows <= 0 {
		return fmt.Errorf("%w, got %d", ErrSampleRows, o.DeriveSampleRows)
	}
	if o.DeriveMinShare <= 0 || o.DeriveMinShare > 1 {
		return fmt.Errorf("%w, got %v", ErrMinShare, o.DeriveMinShare)
	}
	return nil
}
