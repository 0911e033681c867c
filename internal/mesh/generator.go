// Package mesh builds procedural meshes in parallel. A Generator splits its
// mesh into independent jobs; each job writes a disjoint block of vertices
// and triangles into a Streams implementation chosen by the caller.
package mesh

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidResolution = errors.New("mesh: resolution must be positive")
	ErrUnknownShape      = errors.New("mesh: unknown shape")
)

// Generator describes one mesh shape at a fixed resolution.
type Generator interface {
	Resolution() int
	VertexCount() int
	IndexCount() int
	JobCount() int
	Bounds() Bounds
	// Ranges returns the vertex and triangle slots written by job.
	Ranges(job int) (vertices, triangles Range)
	// Execute writes the geometry for job.
	Execute(job int, s Streams)
}

// Shape identifies a generator.
type Shape int

const (
	SquareGrid Shape = iota
	QuadGrid
	TriangleGrid
	PointyHexagonGrid
	FlatHexagonGrid
	CubeSphere
	UVSphere
	numShapes
)

var shapeNames = [numShapes]string{
	"square", "quad", "triangle", "pointy-hex", "flat-hex", "cube-sphere", "uv-sphere",
}

// Shapes lists every generator shape.
func Shapes() []Shape {
	out := make([]Shape, numShapes)
	for i := range out {
		out[i] = Shape(i)
	}
	return out
}

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
	return 0, fmt.Errorf("%w %q", ErrUnknownShape, s)
}

// NewGenerator returns the generator for shape at resolution. Resolutions
// above MaxResolution(shape) fail with ErrIndexOverflow, so sizes computed
// by the generator never wrap.
func NewGenerator(shape Shape, resolution int) (Generator, error) {
	if resolution <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidResolution, resolution)
	}
	if shape < 0 || shape >= numShapes {
		return nil, fmt.Errorf("%w %v", ErrUnknownShape, shape)
	}
	if limit := maxResolutions[shape]; resolution > limit {
		return nil, fmt.Errorf("%w: %v resolution %d above %d", ErrIndexOverflow, shape, resolution, limit)
	}
	return newGenerator(shape, resolution), nil
}

// newGenerator skips the resolution checks. Counts are only safe from
// overflow for resolutions up to MaxResolution.
func newGenerator(shape Shape, resolution int) Generator {
	switch shape {
	case SquareGrid:
		return squareGrid{resolution}
	case QuadGrid:
		return quadGrid{resolution}
	case TriangleGrid:
		return triangleGrid{resolution}
	case PointyHexagonGrid:
		return pointyHexagonGrid{resolution}
	case FlatHexagonGrid:
		return flatHexagonGrid{resolution}
	case CubeSphere:
		return cubeSphere{resolution}
	default:
		return uvSphere{resolution}
	}
}

// Size returns the exact vertex and index counts for shape at resolution.
func Size(shape Shape, resolution int) (vertices, indices int, err error) {
	g, err := NewGenerator(shape, resolution)
	if err != nil {
		return 0, 0, err
	}
	return g.VertexCount(), g.IndexCount(), nil
}

var maxResolutions = func() (m [numShapes]int) {
	for shape := range m {
		r := 0
		for newGenerator(Shape(shape), r+1).VertexCount() <= MaxVertexCount {
			r++
		}
		m[shape] = r
	}
	return m
}()

// MaxResolution returns the largest resolution of shape whose vertex count
// still fits 16-bit indices.
func MaxResolution(shape Shape) int {
	if shape < 0 || shape >= numShapes {
		return 0
	}
	return maxResolutions[shape]
}
