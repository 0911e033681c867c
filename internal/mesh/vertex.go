package mesh

import "github.com/go-gl/mathgl/mgl32"

// Vertex is the full attribute set written for every mesh vertex.
// Tangent.W holds the bitangent sign.
type Vertex struct {
	Position  mgl32.Vec3
	Normal    mgl32.Vec3
	Tangent   mgl32.Vec4
	TexCoord0 mgl32.Vec2
}

// Triangle holds three vertex indices, wound clockwise when seen from the
// front in a left-handed, Y-up frame.
type Triangle [3]int32

// offset returns t shifted by vi.
func (t Triangle) offset(vi int) Triangle {
	o := int32(vi)
	return Triangle{t[0] + o, t[1] + o, t[2] + o}
}

// Bounds is an axis-aligned box given by its centre and full size.
type Bounds struct {
	Center mgl32.Vec3
	Size   mgl32.Vec3
}

// Contains reports whether p lies inside b, with a small tolerance.
func (b Bounds) Contains(p mgl32.Vec3) bool {
	const eps = 1e-4
	for i := 0; i < 3; i++ {
		half := b.Size[i] / 2
		if p[i] < b.Center[i]-half-eps || p[i] > b.Center[i]+half+eps {
			return false
		}
	}
	return true
}

// Range is a half-open span [Start, End) of vertex or triangle slots.
type Range struct {
	Start, End int
}

func (r Range) Len() int { return r.End - r.Start }

// Overlaps reports whether r and o share at least one slot.
func (r Range) Overlaps(o Range) bool {
	return r.Len() > 0 && o.Len() > 0 && r.Start < o.End && o.Start < r.End
}
