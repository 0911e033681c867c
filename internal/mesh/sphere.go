package mesh

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// cubeSide is one face of the cube projected by cubeSphere.
type cubeSide struct {
	origin, u, v mgl32.Vec3
}

var cubeSides = [6]cubeSide{
	{mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{2, 0, 0}, mgl32.Vec3{0, 2, 0}},
	{mgl32.Vec3{1, -1, -1}, mgl32.Vec3{0, 0, 2}, mgl32.Vec3{0, 2, 0}},
	{mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{0, 0, 2}, mgl32.Vec3{2, 0, 0}},
	{mgl32.Vec3{-1, -1, 1}, mgl32.Vec3{0, 2, 0}, mgl32.Vec3{2, 0, 0}},
	{mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{0, 2, 0}, mgl32.Vec3{0, 0, 2}},
	{mgl32.Vec3{-1, 1, -1}, mgl32.Vec3{2, 0, 0}, mgl32.Vec3{0, 0, 2}},
}

// cubeToSphere maps a point on the [-1,1] cube onto the unit sphere with
// less area distortion than plain normalisation.
func cubeToSphere(p mgl32.Vec3) mgl32.Vec3 {
	x2, y2, z2 := p[0]*p[0], p[1]*p[1], p[2]*p[2]
	return mgl32.Vec3{
		p[0] * math32.Sqrt(1-(y2+z2)/2+y2*z2/3),
		p[1] * math32.Sqrt(1-(x2+z2)/2+x2*z2/3),
		p[2] * math32.Sqrt(1-(x2+y2)/2+x2*y2/3),
	}
}

// cubeSphere is a unit sphere made of six subdivided cube faces, every quad
// owning its four vertices. Job i writes column i/6 of face i%6.
type cubeSphere struct{ resolution int }

func (g cubeSphere) Resolution() int  { return g.resolution }
func (g cubeSphere) VertexCount() int { return 24 * g.resolution * g.resolution }
func (g cubeSphere) IndexCount() int  { return 36 * g.resolution * g.resolution }
func (g cubeSphere) JobCount() int    { return 6 * g.resolution }

func (g cubeSphere) Bounds() Bounds {
	return Bounds{Size: mgl32.Vec3{2, 2, 2}}
}

func (g cubeSphere) Ranges(job int) (vertices, triangles Range) {
	r := g.resolution
	column := r*(job%6) + job/6
	return Range{4 * r * column, 4 * r * (column + 1)}, Range{2 * r * column, 2 * r * (column + 1)}
}

func (g cubeSphere) Execute(job int, s Streams) {
	r := g.resolution
	u, side := job/6, cubeSides[job%6]
	vr, tr := g.Ranges(job)
	vi, ti := vr.Start, tr.Start
	inv := 1 / float32(r)

	uA := side.origin.Add(side.u.Mul(float32(u) * inv))
	uB := side.origin.Add(side.u.Mul(float32(u+1) * inv))
	pA, pB := cubeToSphere(uA), cubeToSphere(uB)
	tangent := pB.Sub(pA).Normalize().Vec4(-1)

	for v := 1; v <= r; v, vi, ti = v+1, vi+4, ti+2 {
		step := side.v.Mul(float32(v) * inv)
		pC, pD := cubeToSphere(uA.Add(step)), cubeToSphere(uB.Add(step))

		s.SetVertex(vi, Vertex{Position: pA, Normal: pA, Tangent: tangent})
		s.SetVertex(vi+1, Vertex{Position: pB, Normal: pB, Tangent: tangent, TexCoord0: mgl32.Vec2{1, 0}})

		tangent = pD.Sub(pC).Normalize().Vec4(-1)
		s.SetVertex(vi+2, Vertex{Position: pC, Normal: pC, Tangent: tangent, TexCoord0: mgl32.Vec2{0, 1}})
		s.SetVertex(vi+3, Vertex{Position: pD, Normal: pD, Tangent: tangent, TexCoord0: mgl32.Vec2{1, 1}})

		s.SetTriangle(ti, Triangle{0, 2, 1}.offset(vi))
		s.SetTriangle(ti+1, Triangle{1, 2, 3}.offset(vi))
		pA, pB = pC, pD
	}
}

// uvSphere is a unit sphere of 4r meridian columns and 2r latitude rows.
// Job 0 writes the seam column without poles; job u > 0 writes column u
// with its own pole vertices and the triangles joining it to column u-1.
type uvSphere struct{ resolution int }

func (g uvSphere) columns() int { return 4 * g.resolution }
func (g uvSphere) rows() int    { return 2 * g.resolution }

func (g uvSphere) Resolution() int { return g.resolution }

func (g uvSphere) VertexCount() int {
	return (g.columns()+1)*(g.rows()+1) - 2
}

func (g uvSphere) IndexCount() int { return 6 * g.columns() * (g.rows() - 1) }
func (g uvSphere) JobCount() int   { return g.columns() + 1 }

func (g uvSphere) Bounds() Bounds {
	return Bounds{Size: mgl32.Vec3{2, 2, 2}}
}

func (g uvSphere) Ranges(u int) (vertices, triangles Range) {
	rows := g.rows()
	if u == 0 {
		return Range{0, rows - 1}, Range{}
	}
	return Range{(rows+1)*u - 2, (rows+1)*(u+1) - 2}, Range{2 * (rows - 1) * (u - 1), 2 * (rows - 1) * u}
}

func (g uvSphere) Execute(u int, s Streams) {
	if u == 0 {
		g.seam(s)
		return
	}
	columns, rows := float32(g.columns()), g.rows()
	vr, tr := g.Ranges(u)
	vi, ti := vr.Start, tr.Start

	// poles sit half a column back so their texture wedge is centred
	angle := 2 * math32.Pi * (float32(u) - 0.5) / columns
	pole := Vertex{
		Position:  mgl32.Vec3{0, -1, 0},
		Normal:    mgl32.Vec3{0, -1, 0},
		Tangent:   mgl32.Vec4{math32.Cos(angle), 0, math32.Sin(angle), -1},
		TexCoord0: mgl32.Vec2{(float32(u) - 0.5) / columns, 0},
	}
	s.SetVertex(vi, pole)
	pole.Position[1], pole.Normal[1], pole.TexCoord0[1] = 1, 1, 1
	s.SetVertex(vi+rows, pole)
	vi++

	angle = 2 * math32.Pi * float32(u) / columns
	sinU, cosU := math32.Sin(angle), math32.Cos(angle)
	v := Vertex{
		Tangent:   mgl32.Vec4{cosU, 0, sinU, -1},
		TexCoord0: mgl32.Vec2{float32(u) / columns, 0},
	}

	// distance back to the same row in the previous column
	shift := int32(-rows - 1)
	if u == 1 {
		shift = int32(-rows)
	}
	s.SetTriangle(ti, Triangle{-1, shift, 0}.offset(vi))
	ti++

	for row := 1; row < rows; row, vi = row+1, vi+1 {
		radius, y := ringAt(row, rows)
		v.Position = mgl32.Vec3{sinU * radius, y, -cosU * radius}
		v.Normal = v.Position
		v.TexCoord0[1] = float32(row) / float32(rows)
		s.SetVertex(vi, v)

		if row > 1 {
			s.SetTriangle(ti, Triangle{shift - 1, shift, -1}.offset(vi))
			s.SetTriangle(ti+1, Triangle{-1, shift, 0}.offset(vi))
			ti += 2
		}
	}
	s.SetTriangle(ti, Triangle{shift - 1, 0, -1}.offset(vi))
}

// seam writes the u = 0 column. Its vertices duplicate column 4r apart from
// the texture coordinate, which starts at 0 instead of 1.
func (g uvSphere) seam(s Streams) {
	rows := g.rows()
	v := Vertex{Tangent: mgl32.Vec4{1, 0, 0, -1}}
	for row := 1; row < rows; row++ {
		radius, y := ringAt(row, rows)
		v.Position = mgl32.Vec3{0, y, -radius}
		v.Normal = v.Position
		v.TexCoord0[1] = float32(row) / float32(rows)
		s.SetVertex(row-1, v)
	}
}

// ringAt returns the ring radius and height of latitude row, counted from
// the south pole.
func ringAt(row, rows int) (radius, y float32) {
	phi := math32.Pi * float32(row) / float32(rows)
	return math32.Sin(phi), -math32.Cos(phi)
}
