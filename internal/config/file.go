// Package config loads the procgen configuration file and holds
// process-wide runtime settings.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the top level of a procgen YAML file.
type Config struct {
	Workers  int          `yaml:"workers"`
	LogLevel string       `yaml:"log_level"`
	Noise    NoiseConfig  `yaml:"noise"`
	Mesh     MeshConfig   `yaml:"mesh"`
	Output   OutputConfig `yaml:"output"`
}

// NoiseConfig selects the Voronoi variant, fractal settings and the sample
// points the noise is evaluated on.
type NoiseConfig struct {
	Seed        int32   `yaml:"seed"`
	Frequency   int32   `yaml:"frequency"`
	Octaves     int     `yaml:"octaves"`
	Lacunarity  int32   `yaml:"lacunarity"`
	Persistence float32 `yaml:"persistence"`

	Dimensions int    `yaml:"dimensions"`
	Metric     string `yaml:"metric"`
	Function   string `yaml:"function"`
	Tiling     bool   `yaml:"tiling"`

	Resolution int          `yaml:"resolution"`
	Shape      string       `yaml:"shape"`
	Domain     DomainConfig `yaml:"domain"`
}

// DomainConfig transforms sample points before the noise is evaluated.
type DomainConfig struct {
	Translate [3]float32 `yaml:"translate"`
	RotateY   float32    `yaml:"rotate_y"` // degrees
	Scale     [3]float32 `yaml:"scale"`
}

type MeshConfig struct {
	Shape      string `yaml:"shape"`
	Resolution int    `yaml:"resolution"`
	Layout     string `yaml:"layout"`
}

type OutputConfig struct {
	Dir      string `yaml:"dir"`
	Compress bool   `yaml:"compress"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Workers:  0,
		LogLevel: "info",
		Noise: NoiseConfig{
			Seed:        0,
			Frequency:   4,
			Octaves:     1,
			Lacunarity:  2,
			Persistence: 0.5,
			Dimensions:  2,
			Metric:      "euclidean",
			Function:    "f1",
			Resolution:  256,
			Shape:       "plane",
			Domain: DomainConfig{
				Scale: [3]float32{1, 1, 1},
			},
		},
		Mesh: MeshConfig{
			Shape:      "square",
			Resolution: 16,
			Layout:     "interleaved",
		},
		Output: OutputConfig{
			Dir: ".",
		},
	}
}

// Load reads path on top of the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks numeric ranges. Names such as metric or shape are checked
// by the packages that own them.
func (c Config) Validate() error {
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be in [0, %d], got %d", ErrInvalid, MaxWorkers, c.Workers)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalid, c.LogLevel)
	}
	n := c.Noise
	if n.Frequency <= 0 {
		return fmt.Errorf("%w: noise.frequency must be positive, got %d", ErrInvalid, n.Frequency)
	}
	if n.Octaves < 1 {
		return fmt.Errorf("%w: noise.octaves must be at least 1, got %d", ErrInvalid, n.Octaves)
	}
	if n.Lacunarity < 1 {
		return fmt.Errorf("%w: noise.lacunarity must be at least 1, got %d", ErrInvalid, n.Lacunarity)
	}
	if n.Octaves > MaxOctaves {
		return fmt.Errorf("%w: noise.octaves must be at most %d, got %d", ErrInvalid, MaxOctaves, n.Octaves)
	}
	if f, ok := FinestFrequency(n.Frequency, n.Lacunarity, n.Octaves); !ok {
		return fmt.Errorf("%w: last octave frequency %d exceeds %d", ErrInvalid, f, MaxFrequency)
	}
	if !(n.Persistence > 0) || math.IsInf(float64(n.Persistence), 0) {
		return fmt.Errorf("%w: noise.persistence must be positive and finite, got %v", ErrInvalid, n.Persistence)
	}
	if n.Dimensions < 1 || n.Dimensions > 3 {
		return fmt.Errorf("%w: noise.dimensions must be 1, 2 or 3, got %d", ErrInvalid, n.Dimensions)
	}
	if n.Resolution <= 0 {
		return fmt.Errorf("%w: noise.resolution must be positive, got %d", ErrInvalid, n.Resolution)
	}
	if c.Mesh.Resolution <= 0 {
		return fmt.Errorf("%w: mesh.resolution must be positive, got %d", ErrInvalid, c.Mesh.Resolution)
	}
	return nil
}

const (
	// MaxOctaves bounds the number of fractal octaves.
	MaxOctaves = 16
	// MaxFrequency bounds the cell frequency of the finest octave, keeping
	// scaled coordinates well inside int32.
	MaxFrequency = 1 << 20
)

// FinestFrequency returns the frequency of the last of octaves octaves. ok is
// false once it passes MaxFrequency; the returned value is then the first
// frequency found above the limit.
func FinestFrequency(frequency, lacunarity int32, octaves int) (f int64, ok bool) {
	f = int64(frequency)
	if f > MaxFrequency {
		return f, false
	}
	for o := 1; o < octaves; o++ {
		f *= int64(lacunarity)
		if f > MaxFrequency {
			return f, false
		}
	}
	return f, true
}
