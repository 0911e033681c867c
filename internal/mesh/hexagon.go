package mesh

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// hexagon fans, centre first, then the six corners clockwise
var hexagonTriangles = [6]Triangle{
	{0, 1, 2}, {0, 2, 3}, {0, 3, 4}, {0, 4, 5}, {0, 5, 6}, {0, 6, 1},
}

// hexagon writes a seven vertex fan at vi and its six triangles at ti.
func hexagon(s Streams, vi, ti int, corners [7]mgl32.Vec3, uvs [7]mgl32.Vec2) {
	v := flatVertex()
	for i := range corners {
		v.Position, v.TexCoord0 = corners[i], uvs[i]
		s.SetVertex(vi+i, v)
	}
	for i, t := range hexagonTriangles {
		s.SetTriangle(ti+i, t.offset(vi))
	}
}

// hexagonRanges serves both orientations: a job owns r hexagons.
func hexagonRanges(r, job int) (vertices, triangles Range) {
	return Range{7 * r * job, 7 * r * (job + 1)}, Range{6 * r * job, 6 * r * (job + 1)}
}

// hexagonStagger returns the offsets centring row (or column) job of an
// r x r layout; h is half a hexagon's width. Odd jobs shift by one h.
func hexagonStagger(r, job int, h float32) (along, across float32) {
	if r == 1 {
		return 0, 0
	}
	along = 0.5
	if job&1 == 1 {
		along = 1.5
	}
	return (along - float32(r)) * h, -0.375 * float32(r-1)
}

// pointyHexagonGrid tiles hexagons with a corner pointing along Z.
// Each job writes one row.
type pointyHexagonGrid struct{ resolution int }

func (g pointyHexagonGrid) Resolution() int  { return g.resolution }
func (g pointyHexagonGrid) VertexCount() int { return 7 * g.resolution * g.resolution }
func (g pointyHexagonGrid) IndexCount() int  { return 18 * g.resolution * g.resolution }
func (g pointyHexagonGrid) JobCount() int    { return g.resolution }

func (g pointyHexagonGrid) Bounds() Bounds {
	inv := 1 / float32(g.resolution)
	return Bounds{Size: mgl32.Vec3{hexagonSpan(g.resolution), 0, 0.75 + 0.25*inv}}
}

// hexagonSpan is the extent across the staggered axis.
func hexagonSpan(r int) float32 {
	w := float32(0.5)
	if r > 1 {
		w += 0.25 / float32(r)
	}
	return w * math32.Sqrt(3)
}

func (g pointyHexagonGrid) Ranges(z int) (vertices, triangles Range) {
	return hexagonRanges(g.resolution, z)
}

func (g pointyHexagonGrid) Execute(z int, s Streams) {
	r := g.resolution
	vr, tr := g.Ranges(z)
	vi, ti := vr.Start, tr.Start
	inv := 1 / float32(r)
	h := math32.Sqrt(3) / 4
	offX, offZ := hexagonStagger(r, z, h)

	uvs := [7]mgl32.Vec2{
		{0.5, 0.5}, {0.5, 0}, {0.5 - h, 0.25}, {0.5 - h, 0.75},
		{0.5, 1}, {0.5 + h, 0.75}, {0.5 + h, 0.25},
	}
	for x := 0; x < r; x, vi, ti = x+1, vi+7, ti+6 {
		cx := (2*h*float32(x) + offX) * inv
		cz := (0.75*float32(z) + offZ) * inv
		x0, x1 := cx-h*inv, cx+h*inv
		z0, z1, z2, z3 := cz-0.5*inv, cz-0.25*inv, cz+0.25*inv, cz+0.5*inv
		hexagon(s, vi, ti, [7]mgl32.Vec3{
			{cx, 0, cz}, {cx, 0, z0}, {x0, 0, z1}, {x0, 0, z2},
			{cx, 0, z3}, {x1, 0, z2}, {x1, 0, z1},
		}, uvs)
	}
}

// flatHexagonGrid tiles hexagons with a corner pointing along X.
// Each job writes one column.
type flatHexagonGrid struct{ resolution int }

func (g flatHexagonGrid) Resolution() int  { return g.resolution }
func (g flatHexagonGrid) VertexCount() int { return 7 * g.resolution * g.resolution }
func (g flatHexagonGrid) IndexCount() int  { return 18 * g.resolution * g.resolution }
func (g flatHexagonGrid) JobCount() int    { return g.resolution }

func (g flatHexagonGrid) Bounds() Bounds {
	inv := 1 / float32(g.resolution)
	return Bounds{Size: mgl32.Vec3{0.75 + 0.25*inv, 0, hexagonSpan(g.resolution)}}
}

func (g flatHexagonGrid) Ranges(x int) (vertices, triangles Range) {
	return hexagonRanges(g.resolution, x)
}

func (g flatHexagonGrid) Execute(x int, s Streams) {
	r := g.resolution
	vr, tr := g.Ranges(x)
	vi, ti := vr.Start, tr.Start
	inv := 1 / float32(r)
	h := math32.Sqrt(3) / 4
	offZ, offX := hexagonStagger(r, x, h)

	uvs := [7]mgl32.Vec2{
		{0.5, 0.5}, {0, 0.5}, {0.25, 0.5 + h}, {0.75, 0.5 + h},
		{1, 0.5}, {0.75, 0.5 - h}, {0.25, 0.5 - h},
	}
	for z := 0; z < r; z, vi, ti = z+1, vi+7, ti+6 {
		cx := (0.75*float32(x) + offX) * inv
		cz := (2*h*float32(z) + offZ) * inv
		x0, x1, x2, x3 := cx-0.5*inv, cx-0.25*inv, cx+0.25*inv, cx+0.5*inv
		z0, z1 := cz+h*inv, cz-h*inv
		hexagon(s, vi, ti, [7]mgl32.Vec3{
			{cx, 0, cz}, {x0, 0, cz}, {x1, 0, z0}, {x2, 0, z0},
			{x3, 0, cz}, {x2, 0, z1}, {x1, 0, z1},
		}, uvs)
	}
}
