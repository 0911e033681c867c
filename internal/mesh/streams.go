package mesh

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxVertexCount is the largest vertex count addressable by 16-bit indices.
const MaxVertexCount = math.MaxUint16

var (
	ErrIndexOverflow = errors.New("mesh: vertex count exceeds 16-bit index range")
	ErrInvalidCount  = errors.New("mesh: invalid buffer size")
)

// Streams receives generated geometry. Setup is called exactly once before
// any write; after that SetVertex and SetTriangle may be called concurrently
// for distinct indices.
type Streams interface {
	Setup(bounds Bounds, vertexCount, indexCount int) error
	SetVertex(index int, v Vertex)
	SetTriangle(index int, t Triangle)
}

// Mesh reads generated geometry back, independent of the physical layout.
type Mesh interface {
	Bounds() Bounds
	VertexCount() int
	IndexCount() int
	Vertex(index int) Vertex
	Triangle(index int) Triangle
}

func checkCounts(vertexCount, indexCount int) error {
	if vertexCount < 0 || indexCount < 0 || indexCount%3 != 0 {
		return fmt.Errorf("%w: %d vertices, %d indices", ErrInvalidCount, vertexCount, indexCount)
	}
	if vertexCount > MaxVertexCount {
		return fmt.Errorf("%w: %d > %d", ErrIndexOverflow, vertexCount, MaxVertexCount)
	}
	return nil
}

// reuse returns buf resliced to n when it is large enough, otherwise a new slice.
func reuse[T any](buf []T, n int) []T {
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]T, n)
}

// VertexStride is number of float32 per interleaved vertex
// (position.xyz, normal.xyz, tangent.xyzw, uv)
const VertexStride = 12

// Interleaved stores all attributes of a vertex next to each other.
// Preset Vertices and Indices to have Setup write into caller-owned storage.
type Interleaved struct {
	Vertices []float32
	Indices  []uint16
	bounds   Bounds
}

func (s *Interleaved) Setup(bounds Bounds, vertexCount, indexCount int) error {
	if err := checkCounts(vertexCount, indexCount); err != nil {
		return err
	}
	s.bounds = bounds
	s.Vertices = reuse(s.Vertices, vertexCount*VertexStride)
	s.Indices = reuse(s.Indices, indexCount)
	return nil
}

func (s *Interleaved) SetVertex(index int, v Vertex) {
	d := s.Vertices[index*VertexStride : (index+1)*VertexStride : (index+1)*VertexStride]
	d[0], d[1], d[2] = v.Position[0], v.Position[1], v.Position[2]
	d[3], d[4], d[5] = v.Normal[0], v.Normal[1], v.Normal[2]
	d[6], d[7], d[8], d[9] = v.Tangent[0], v.Tangent[1], v.Tangent[2], v.Tangent[3]
	d[10], d[11] = v.TexCoord0[0], v.TexCoord0[1]
}

func (s *Interleaved) SetTriangle(index int, t Triangle) {
	setTriangle(s.Indices, index, t)
}

func (s *Interleaved) Bounds() Bounds   { return s.bounds }
func (s *Interleaved) VertexCount() int { return len(s.Vertices) / VertexStride }
func (s *Interleaved) IndexCount() int  { return len(s.Indices) }

func (s *Interleaved) Vertex(index int) Vertex {
	d := s.Vertices[index*VertexStride : (index+1)*VertexStride]
	return Vertex{
		Position:  mgl32.Vec3{d[0], d[1], d[2]},
		Normal:    mgl32.Vec3{d[3], d[4], d[5]},
		Tangent:   mgl32.Vec4{d[6], d[7], d[8], d[9]},
		TexCoord0: mgl32.Vec2{d[10], d[11]},
	}
}

func (s *Interleaved) Triangle(index int) Triangle {
	return triangle(s.Indices, index)
}

// Separated stores each attribute in its own array.
// Preset the slices to have Setup write into caller-owned storage.
type Separated struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Tangents  []mgl32.Vec4
	TexCoords []mgl32.Vec2
	Indices   []uint16
	bounds    Bounds
}

func (s *Separated) Setup(bounds Bounds, vertexCount, indexCount int) error {
	if err := checkCounts(vertexCount, indexCount); err != nil {
		return err
	}
	s.bounds = bounds
	s.Positions = reuse(s.Positions, vertexCount)
	s.Normals = reuse(s.Normals, vertexCount)
	s.Tangents = reuse(s.Tangents, vertexCount)
	s.TexCoords = reuse(s.TexCoords, vertexCount)
	s.Indices = reuse(s.Indices, indexCount)
	return nil
}

func (s *Separated) SetVertex(index int, v Vertex) {
	s.Positions[index] = v.Position
	s.Normals[index] = v.Normal
	s.Tangents[index] = v.Tangent
	s.TexCoords[index] = v.TexCoord0
}

func (s *Separated) SetTriangle(index int, t Triangle) {
	setTriangle(s.Indices, index, t)
}

func (s *Separated) Bounds() Bounds   { return s.bounds }
func (s *Separated) VertexCount() int { return len(s.Positions) }
func (s *Separated) IndexCount() int  { return len(s.Indices) }

func (s *Separated) Vertex(index int) Vertex {
	return Vertex{
		Position:  s.Positions[index],
		Normal:    s.Normals[index],
		Tangent:   s.Tangents[index],
		TexCoord0: s.TexCoords[index],
	}
}

func (s *Separated) Triangle(index int) Triangle {
	return triangle(s.Indices, index)
}

// setTriangle narrows to uint16. Setup has already bounded the vertex count,
// so valid generator output always fits.
func setTriangle(indices []uint16, index int, t Triangle) {
	d := indices[3*index : 3*index+3 : 3*index+3]
	d[0], d[1], d[2] = uint16(t[0]), uint16(t[1]), uint16(t[2])
}

func triangle(indices []uint16, index int) Triangle {
	d := indices[3*index : 3*index+3]
	return Triangle{int32(d[0]), int32(d[1]), int32(d[2])}
}

// Layout selects a physical vertex buffer arrangement.
type Layout int

const (
	LayoutInterleaved Layout = iota
	LayoutSeparated
)

func (l Layout) String() string {
	switch l {
	case LayoutInterleaved:
		return "interleaved"
	case LayoutSeparated:
		return "separated"
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(s) {
	case "interleaved", "single":
		return LayoutInterleaved, nil
	case "separated", "multi":
		return LayoutSeparated, nil
	}
	return 0, fmt.Errorf("mesh: unknown layout %q", s)
}

// MeshStreams is both writable and readable.
type MeshStreams interface {
	Streams
	Mesh
}

// NewStreams returns empty streams for layout.
func NewStreams(layout Layout) (MeshStreams, error) {
	switch layout {
	case LayoutInterleaved:
		return &Interleaved{}, nil
	case LayoutSeparated:
		return &Separated{}, nil
	}
	return nil, fmt.Errorf("mesh: unknown layout %v", layout)
}
