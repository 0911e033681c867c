// Package points lays out sample positions for noise evaluation on simple
// surfaces, packed into 4-wide batches.
package points

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chewxy/math32"

	"procgen/internal/jobs"
	"procgen/internal/lane"
)

var ErrInvalidResolution = errors.New("points: resolution must be positive")

// Shape is a surface parameterised over the unit square.
type Shape int

const (
	Plane Shape = iota
	Sphere
	Torus
	numShapes
)

var shapeNames = [numShapes]string{"plane", "sphere", "torus"}

func (s Shape) String() string {
	if s < 0 || s >= numShapes {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeNames[s]
}

func ParseShape(s string) (Shape, error) {
	for i, name := range shapeNames {
		if strings.EqualFold(s, name) {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("points: unknown shape %q", s)
}

// Count returns the number of points on a resolution x resolution grid.
func Count(resolution int) int {
	return resolution * resolution
}

// Batches returns how many 4-wide batches hold Count(resolution) points.
func Batches(resolution int) int {
	return (Count(resolution) + lane.Width - 1) / lane.Width
}

// Generate schedules the grid for shape on pool. Point i sits at column
// i % resolution and row i / resolution; lanes past the last point repeat it.
// The slice is filled once the handle completes.
func Generate(pool *jobs.WorkerPool, shape Shape, resolution int) ([]lane.Float4x3, *jobs.Handle, error) {
	if resolution <= 0 {
		return nil, nil, fmt.Errorf("%w, got %d", ErrInvalidResolution, resolution)
	}
	if shape < 0 || shape >= numShapes {
		return nil, nil, fmt.Errorf("points: unknown shape %v", shape)
	}
	out := make([]lane.Float4x3, Batches(resolution))
	last := Count(resolution) - 1
	inv := 1 / float32(resolution)
	h := pool.ScheduleParallel(len(out), resolution, func(i int) {
		var p lane.Float4x3
		for l := 0; l < lane.Width; l++ {
			idx := min(i*lane.Width+l, last)
			u := (float32(idx%resolution) + 0.5) * inv
			v := (float32(idx/resolution) + 0.5) * inv
			x, y, z := surface(shape, u, v)
			p.SetPoint(l, x, y, z)
		}
		out[i] = p
	})
	return out, h, nil
}

func surface(shape Shape, u, v float32) (x, y, z float32) {
	switch shape {
	case Sphere:
		return octahedronSphere(u, v)
	case Torus:
		return torus(u, v)
	default:
		return u - 0.5, 0, v - 0.5
	}
}

// octahedronSphere folds the unit square onto an octahedron and normalises
// it to a sphere of radius 0.5.
func octahedronSphere(u, v float32) (x, y, z float32) {
	x = u*2 - 1
	z = v*2 - 1
	y = 1 - math32.Abs(x) - math32.Abs(z)
	offset := max(-y, 0)
	if x < 0 {
		x += offset
	} else {
		x -= offset
	}
	if z < 0 {
		z += offset
	} else {
		z -= offset
	}
	scale := 0.5 / math32.Sqrt(x*x+y*y+z*z)
	return x * scale, y * scale, z * scale
}

// torus has a major radius of 0.375 and a minor radius of 0.125.
func torus(u, v float32) (x, y, z float32) {
	const r1, r2 = 0.375, 0.125
	s := r1 + r2*math32.Cos(2*math32.Pi*v)
	return s * math32.Sin(2*math32.Pi*u), r2 * math32.Sin(2*math32.Pi*v), s * math32.Cos(2*math32.Pi*u)
}
