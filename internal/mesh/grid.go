package mesh

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// flatVertex is the shared base of every grid vertex: facing up, tangent
// along +X.
func flatVertex() Vertex {
	return Vertex{
		Normal:  mgl32.Vec3{0, 1, 0},
		Tangent: mgl32.Vec4{1, 0, 0, -1},
	}
}

// squareGrid is a unit square in the XZ plane with shared vertices,
// (r+1)^2 of them. Each job writes one row of vertices and the quads
// connecting it to the previous row.
type squareGrid struct{ resolution int }

func (g squareGrid) Resolution() int  { return g.resolution }
func (g squareGrid) VertexCount() int { return (g.resolution + 1) * (g.resolution + 1) }
func (g squareGrid) IndexCount() int  { return 6 * g.resolution * g.resolution }
func (g squareGrid) JobCount() int    { return g.resolution + 1 }

func (g squareGrid) Bounds() Bounds {
	return Bounds{Size: mgl32.Vec3{1, 0, 1}}
}

func (g squareGrid) Ranges(z int) (vertices, triangles Range) {
	return sharedRowRanges(g.resolution, z)
}

// sharedRowRanges serves grids whose jobs own one row of r+1 shared vertices.
// Row 0 emits no triangles.
func sharedRowRanges(r, z int) (vertices, triangles Range) {
	vertices = Range{(r + 1) * z, (r + 1) * (z + 1)}
	if z > 0 {
		triangles = Range{2 * r * (z - 1), 2 * r * z}
	}
	return vertices, triangles
}

func (g squareGrid) Execute(z int, s Streams) {
	r := g.resolution
	vr, tr := g.Ranges(z)
	vi, ti := vr.Start, tr.Start
	inv := 1 / float32(r)

	v := flatVertex()
	v.Position[0] = -0.5
	v.Position[2] = float32(z)*inv - 0.5
	v.TexCoord0[1] = float32(z) * inv
	s.SetVertex(vi, v)
	vi++

	for x := 1; x <= r; x, vi = x+1, vi+1 {
		v.Position[0] = float32(x)*inv - 0.5
		v.TexCoord0[0] = float32(x) * inv
		s.SetVertex(vi, v)

		if z > 0 {
			s.SetTriangle(ti, Triangle{int32(-r - 2), -1, int32(-r - 1)}.offset(vi))
			s.SetTriangle(ti+1, Triangle{int32(-r - 1), -1, 0}.offset(vi))
			ti += 2
		}
	}
}

// quadGrid is a unit square in the XZ plane where every quad owns its four
// vertices, so each cell maps the full texture.
type quadGrid struct{ resolution int }

func (g quadGrid) Resolution() int  { return g.resolution }
func (g quadGrid) VertexCount() int { return 4 * g.resolution * g.resolution }
func (g quadGrid) IndexCount() int  { return 6 * g.resolution * g.resolution }
func (g quadGrid) JobCount() int    { return g.resolution }

func (g quadGrid) Bounds() Bounds {
	return Bounds{Size: mgl32.Vec3{1, 0, 1}}
}

func (g quadGrid) Ranges(z int) (vertices, triangles Range) {
	r := g.resolution
	return Range{4 * r * z, 4 * r * (z + 1)}, Range{2 * r * z, 2 * r * (z + 1)}
}

func (g quadGrid) Execute(z int, s Streams) {
	r := g.resolution
	vr, tr := g.Ranges(z)
	vi, ti := vr.Start, tr.Start
	inv := 1 / float32(r)
	z0, z1 := float32(z)*inv-0.5, float32(z+1)*inv-0.5

	for x := 0; x < r; x, vi, ti = x+1, vi+4, ti+2 {
		x0, x1 := float32(x)*inv-0.5, float32(x+1)*inv-0.5
		quad(s, vi, ti,
			mgl32.Vec3{x0, 0, z0}, mgl32.Vec3{x1, 0, z0},
			mgl32.Vec3{x0, 0, z1}, mgl32.Vec3{x1, 0, z1})
	}
}

// quad writes a flat quad a, b, c, d (row-major, a bottom left) at vi and
// its two triangles at ti.
func quad(s Streams, vi, ti int, a, b, c, d mgl32.Vec3) {
	v := flatVertex()
	v.Position = a
	s.SetVertex(vi, v)
	v.Position, v.TexCoord0 = b, mgl32.Vec2{1, 0}
	s.SetVertex(vi+1, v)
	v.Position, v.TexCoord0 = c, mgl32.Vec2{0, 1}
	s.SetVertex(vi+2, v)
	v.Position, v.TexCoord0 = d, mgl32.Vec2{1, 1}
	s.SetVertex(vi+3, v)

	s.SetTriangle(ti, Triangle{0, 2, 1}.offset(vi))
	s.SetTriangle(ti+1, Triangle{1, 2, 3}.offset(vi))
}

// triangleGrid is a grid of equilateral triangles with shared vertices.
// Odd rows are shifted right by a quarter cell, even rows left.
type triangleGrid struct{ resolution int }

func (g triangleGrid) Resolution() int  { return g.resolution }
func (g triangleGrid) VertexCount() int { return (g.resolution + 1) * (g.resolution + 1) }
func (g triangleGrid) IndexCount() int  { return 6 * g.resolution * g.resolution }
func (g triangleGrid) JobCount() int    { return g.resolution + 1 }

func (g triangleGrid) Bounds() Bounds {
	return Bounds{Size: mgl32.Vec3{1 + 0.5/float32(g.resolution), 0, math32.Sqrt(3) / 2}}
}

func (g triangleGrid) Ranges(z int) (vertices, triangles Range) {
	return sharedRowRanges(g.resolution, z)
}

func (g triangleGrid) Execute(z int, s Streams) {
	r := g.resolution
	vr, tr := g.Ranges(z)
	vi, ti := vr.Start, tr.Start
	inv := 1 / float32(r)

	// offsets of the quad corners relative to the current vertex
	iA, iB, iC, iD := int32(-r-2), int32(-r-1), int32(-1), int32(0)
	xOffset, uOffset := float32(-0.25), float32(0)
	tA, tB := Triangle{iA, iC, iD}, Triangle{iA, iD, iB}
	if z&1 == 1 {
		xOffset, uOffset = 0.25, 0.5/(float32(r)+0.5)
		tA, tB = Triangle{iA, iC, iB}, Triangle{iB, iC, iD}
	}
	xOffset = xOffset*inv - 0.5

	v := flatVertex()
	v.Position[0] = xOffset
	v.Position[2] = (float32(z)*inv - 0.5) * math32.Sqrt(3) / 2
	v.TexCoord0 = mgl32.Vec2{uOffset, v.Position[2]/(1+0.5*inv) + 0.5}
	s.SetVertex(vi, v)
	vi++

	for x := 1; x <= r; x, vi = x+1, vi+1 {
		v.Position[0] = float32(x)*inv + xOffset
		v.TexCoord0[0] = float32(x)/(float32(r)+0.5) + uOffset
		s.SetVertex(vi, v)

		if z > 0 {
			s.SetTriangle(ti, tA.offset(vi))
			s.SetTriangle(ti+1, tB.offset(vi))
			ti += 2
		}
	}
}
