package main

import (
	"flag"
	"io"

	"procgen/internal/config"
)

// cli parses one subcommand. Flags only override the config file when they
// are given explicitly.
type cli struct {
	fs         *flag.FlagSet
	configPath string
	out        string
	apply      map[string]func(*config.Config)
}

func newCLI(name string, stderr io.Writer) *cli {
	c := &cli{
		fs:    flag.NewFlagSet(name, flag.ContinueOnError),
		apply: make(map[string]func(*config.Config)),
	}
	c.fs.SetOutput(stderr)
	c.fs.StringVar(&c.configPath, "config", "", "YAML config file")
	c.intFlag("workers", "worker goroutines, 0 for GOMAXPROCS", func(cfg *config.Config, v int) { cfg.Workers = v })
	c.stringFlag("log-level", "debug, info, warn or error", func(cfg *config.Config, v string) { cfg.LogLevel = v })
	c.boolFlag("compress", "zstd-compress output files", func(cfg *config.Config, v bool) { cfg.Output.Compress = v })
	return c
}

func (c *cli) intFlag(name, usage string, set func(*config.Config, int)) {
	v := c.fs.Int(name, 0, usage)
	c.apply[name] = func(cfg *config.Config) { set(cfg, *v) }
}

func (c *cli) stringFlag(name, usage string, set func(*config.Config, string)) {
	v := c.fs.String(name, "", usage)
	c.apply[name] = func(cfg *config.Config) { set(cfg, *v) }
}

func (c *cli) boolFlag(name, usage string, set func(*config.Config, bool)) {
	v := c.fs.Bool(name, false, usage)
	c.apply[name] = func(cfg *config.Config) { set(cfg, *v) }
}

func (c *cli) floatFlag(name, usage string, set func(*config.Config, float64)) {
	v := c.fs.Float64(name, 0, usage)
	c.apply[name] = func(cfg *config.Config) { set(cfg, *v) }
}

func (c *cli) noiseFlags() {
	c.intFlag("seed", "noise seed", func(cfg *config.Config, v int) { cfg.Noise.Seed = int32(v) })
	c.intFlag("frequency", "cells per unit", func(cfg *config.Config, v int) { cfg.Noise.Frequency = int32(v) })
	c.intFlag("octaves", "fractal octaves", func(cfg *config.Config, v int) { cfg.Noise.Octaves = v })
	c.intFlag("lacunarity", "frequency multiplier per octave", func(cfg *config.Config, v int) { cfg.Noise.Lacunarity = int32(v) })
	c.floatFlag("persistence", "amplitude multiplier per octave", func(cfg *config.Config, v float64) { cfg.Noise.Persistence = float32(v) })
	c.intFlag("dimensions", "1, 2 or 3", func(cfg *config.Config, v int) { cfg.Noise.Dimensions = v })
	c.stringFlag("metric", "euclidean, squared, manhattan or chebyshev", func(cfg *config.Config, v string) { cfg.Noise.Metric = v })
	c.stringFlag("function", "f1, f2 or f2-f1", func(cfg *config.Config, v string) { cfg.Noise.Function = v })
	c.boolFlag("tiling", "wrap cells so the texture tiles", func(cfg *config.Config, v bool) { cfg.Noise.Tiling = v })
	c.intFlag("noise-resolution", "texture width and height", func(cfg *config.Config, v int) { cfg.Noise.Resolution = v })
	c.stringFlag("surface", "sample surface: plane, sphere or torus", func(cfg *config.Config, v string) { cfg.Noise.Shape = v })
}

func (c *cli) meshFlags() {
	c.stringFlag("shape", "mesh shape", func(cfg *config.Config, v string) { cfg.Mesh.Shape = v })
	c.intFlag("resolution", "mesh resolution", func(cfg *config.Config, v int) { cfg.Mesh.Resolution = v })
	c.stringFlag("layout", "interleaved or separated", func(cfg *config.Config, v string) { cfg.Mesh.Layout = v })
}

// parse reads args, loads the config file and applies explicit flags.
func (c *cli) parse(args []string) (config.Config, error) {
	c.fs.StringVar(&c.out, "out", "", "output path")
	if err := c.fs.Parse(args); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	c.fs.Visit(func(f *flag.Flag) {
		if apply, ok := c.apply[f.Name]; ok {
			apply(&cfg)
		}
	})
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
