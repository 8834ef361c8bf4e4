package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/philipparndt/surfseg/pkg/adjacency"
	"github.com/philipparndt/surfseg/pkg/output"
	"github.com/philipparndt/surfseg/pkg/pipeline"
	"github.com/philipparndt/surfseg/pkg/proximity"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of a segment run
type Config struct {
	// Segmentation
	Radius    float64 `yaml:"radius"`
	QueryMode string  `yaml:"query_mode"`
	Workers   int     `yaml:"workers"`

	// Output
	Output      string `yaml:"output"`
	Preview     string `yaml:"preview"`
	PreviewSize int    `yaml:"preview_size"`
}

// Flags carries command line overrides. Zero values leave the config as is.
type Flags struct {
	Radius      float64
	QueryMode   string
	Workers     int
	Output      string
	Preview     string
	PreviewSize int
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Radius:      adjacency.DefaultRadius,
		QueryMode:   proximity.QueryOwnVertex.String(),
		Workers:     1,
		PreviewSize: 800,
	}
}

// Load reads a YAML config file on top of the defaults
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies non-zero flags and fills derived defaults. input is the
// mesh path the output names are derived from.
func (c *Config) Resolve(flags Flags, input string) {
	if flags.Radius > 0 {
		c.Radius = flags.Radius
	}
	if flags.QueryMode != "" {
		c.QueryMode = flags.QueryMode
	}
	if flags.Workers != 0 {
		c.Workers = flags.Workers
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Preview != "" {
		c.Preview = flags.Preview
	}
	if flags.PreviewSize > 0 {
		c.PreviewSize = flags.PreviewSize
	}

	// A workers value of -1 means one per CPU
	if c.Workers < 0 {
		c.Workers = runtime.NumCPU()
	}

	if c.Output == "" && input != "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		c.Output = base + "_segments.ply"
	}
}

// Validate checks the resolved settings
func (c Config) Validate() error {
	var errs []error
	if c.Radius < 0 || math.IsNaN(c.Radius) || math.IsInf(c.Radius, 0) {
		errs = append(errs, fmt.Errorf("radius must be a finite non-negative number, got %v", c.Radius))
	}
	if _, err := proximity.ParseQueryMode(c.QueryMode); err != nil {
		errs = append(errs, err)
	}
	if c.Workers == 0 {
		errs = append(errs, errors.New("workers must be at least 1"))
	}
	if c.Output != "" {
		if _, err := output.FormatFromPath(c.Output); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Preview != "" && c.PreviewSize <= 0 {
		errs = append(errs, fmt.Errorf("preview size must be positive, got %d", c.PreviewSize))
	}
	return errors.Join(errs...)
}

// PipelineOptions converts the config to pipeline options
func (c Config) PipelineOptions() (pipeline.Options, error) {
	mode, err := proximity.ParseQueryMode(c.QueryMode)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Radius:  c.Radius,
		Mode:    mode,
		Workers: c.Workers,
	}, nil
}
