package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"

	"procgen/internal/config"
	"procgen/internal/export"
	"procgen/internal/jobs"
	"procgen/internal/lane"
	"procgen/internal/mesh"
	"procgen/internal/noise"
	"procgen/internal/points"
	"procgen/internal/profiling"
)

func runNoise(pool *jobs.WorkerPool, cfg config.Config, out string) error {
	if out == "" {
		out = filepath.Join(cfg.Output.Dir, "noise.bmp")
	}
	return writeNoise(pool, cfg, out)
}

func runMesh(pool *jobs.WorkerPool, cfg config.Config, out string) error {
	shape, err := mesh.ParseShape(cfg.Mesh.Shape)
	if err != nil {
		return err
	}
	if out == "" {
		out = filepath.Join(cfg.Output.Dir, shape.String()+".obj")
	}
	return writeMesh(pool, cfg, shape, cfg.Mesh.Resolution, out)
}

// runAll writes the noise texture and every mesh shape into one directory.
// Shapes whose vertex count would overflow 16-bit indices at the configured
// resolution are clamped to their largest resolution.
func runAll(pool *jobs.WorkerPool, cfg config.Config, out string) error {
	if out == "" {
		out = cfg.Output.Dir
	}
	var g errgroup.Group
	g.Go(func() error {
		return writeNoise(pool, cfg, filepath.Join(out, "noise.bmp"))
	})
	for _, shape := range mesh.Shapes() {
		shape := shape
		resolution := cfg.Mesh.Resolution
		if limit := mesh.MaxResolution(shape); resolution > limit {
			slog.Warn("resolution clamped", "shape", shape, "requested", resolution, "max", limit)
			resolution = limit
		}
		g.Go(func() error {
			return writeMesh(pool, cfg, shape, resolution, filepath.Join(out, shape.String()+".obj"))
		})
	}
	return g.Wait()
}

func writeMesh(pool *jobs.WorkerPool, cfg config.Config, shape mesh.Shape, resolution int, out string) error {
	layout, err := mesh.ParseLayout(cfg.Mesh.Layout)
	if err != nil {
		return err
	}

	stop := profiling.Track("mesh." + shape.String())
	m, err := mesh.Generate(pool, shape, resolution, layout)
	stop()
	if err != nil {
		return fmt.Errorf("%v at resolution %d: %w", shape, resolution, err)
	}

	defer profiling.Track("export.obj")()
	path, err := writeOutput(out, cfg.Output.Compress, func(w io.Writer) error {
		return export.WriteOBJ(w, m, shape.String())
	})
	if err != nil {
		return err
	}
	slog.Info("mesh written", "path", path, "shape", shape, "resolution", resolution,
		"layout", layout, "vertices", m.VertexCount(), "triangles", m.IndexCount()/3)
	return nil
}

func writeNoise(pool *jobs.WorkerPool, cfg config.Config, out string) error {
	n := cfg.Noise
	metric, err := noise.ParseMetric(n.Metric)
	if err != nil {
		return err
	}
	function, err := noise.ParseFunction(n.Function)
	if err != nil {
		return err
	}
	surface, err := points.ParseShape(n.Shape)
	if err != nil {
		return err
	}
	ev, err := noise.NewEvaluator(noise.Config{
		Dimensions: n.Dimensions,
		Metric:     metric,
		Function:   function,
		Tiling:     n.Tiling,
	})
	if err != nil {
		return err
	}

	stop := profiling.Track("points." + surface.String())
	positions, h, err := points.Generate(pool, surface, n.Resolution)
	if err != nil {
		return err
	}
	h.Wait()
	stop()

	stop = profiling.Track("noise.sample")
	values := make([]lane.Float4, len(positions))
	settings := noise.Settings{
		Seed:        n.Seed,
		Frequency:   n.Frequency,
		Octaves:     n.Octaves,
		Lacunarity:  n.Lacunarity,
		Persistence: n.Persistence,
	}
	domain := noise.Domain(mgl32.Vec3(n.Domain.Translate), n.Domain.RotateY, mgl32.Vec3(n.Domain.Scale))
	h, err = ev.Sample(pool, positions, values, settings, domain)
	if err != nil {
		return err
	}
	h.Wait()
	stop()

	img, err := export.NoiseImage(lane.Unpack(values, points.Count(n.Resolution)), n.Resolution, n.Resolution)
	if err != nil {
		return err
	}
	defer profiling.Track("export.bmp")()
	path, err := writeOutput(out, cfg.Output.Compress, func(w io.Writer) error {
		return export.WriteBMP(w, img)
	})
	if err != nil {
		return err
	}
	slog.Info("noise written", "path", path, "resolution", n.Resolution, "surface", surface,
		"dimensions", n.Dimensions, "metric", metric, "function", function, "tiling", n.Tiling)
	return nil
}

func writeOutput(path string, compress bool, write func(w io.Writer) error) (string, error) {
	done := trackPartial(export.Path(path, compress))
	defer done()
	return export.WriteFile(path, compress, write)
}
