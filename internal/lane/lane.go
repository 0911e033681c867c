// Package lane holds the 4-wide batch types used by the noise engine.
// Every operation applies the same scalar rule to each lane independently,
// so results never depend on the batch width.
package lane

import "github.com/chewxy/math32"

// Width is the number of lanes processed together.
const Width = 4

type (
	Float4 [Width]float32
	Int4   [Width]int32
	Uint4  [Width]uint32
)

// Float4x3 is a batch of 4 points stored column-wise: [0]=x, [1]=y, [2]=z.
type Float4x3 [3]Float4

// Splat returns a Float4 with every lane set to v.
func Splat(v float32) Float4 {
	return Float4{v, v, v, v}
}

// SplatInt returns an Int4 with every lane set to v.
func SplatInt(v int32) Int4 {
	return Int4{v, v, v, v}
}

func (a Float4) Add(b Float4) Float4 {
	return Float4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func (a Float4) Sub(b Float4) Float4 {
	return Float4{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

func (a Float4) Mul(b Float4) Float4 {
	return Float4{a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3]}
}

// Scale multiplies every lane by s.
func (a Float4) Scale(s float32) Float4 {
	return Float4{a[0] * s, a[1] * s, a[2] * s, a[3] * s}
}

// AddScalar adds s to every lane.
func (a Float4) AddScalar(s float32) Float4 {
	return Float4{a[0] + s, a[1] + s, a[2] + s, a[3] + s}
}

func (a Float4) Abs() Float4 {
	return Float4{math32.Abs(a[0]), math32.Abs(a[1]), math32.Abs(a[2]), math32.Abs(a[3])}
}

func (a Float4) Floor() Float4 {
	return Float4{math32.Floor(a[0]), math32.Floor(a[1]), math32.Floor(a[2]), math32.Floor(a[3])}
}

func (a Float4) Sqrt() Float4 {
	return Float4{math32.Sqrt(a[0]), math32.Sqrt(a[1]), math32.Sqrt(a[2]), math32.Sqrt(a[3])}
}

// Min and Max use the min/max builtins, which compile to branch-free
// instructions on the common targets.
func Min(a, b Float4) Float4 {
	return Float4{min(a[0], b[0]), min(a[1], b[1]), min(a[2], b[2]), min(a[3], b[3])}
}

func Max(a, b Float4) Float4 {
	return Float4{max(a[0], b[0]), max(a[1], b[1]), max(a[2], b[2]), max(a[3], b[3])}
}

// Int truncates every lane toward zero.
func (a Float4) Int() Int4 {
	return Int4{int32(a[0]), int32(a[1]), int32(a[2]), int32(a[3])}
}

func (a Int4) Add(b Int4) Int4 {
	return Int4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

// AddScalar adds s to every lane.
func (a Int4) AddScalar(s int32) Int4 {
	return Int4{a[0] + s, a[1] + s, a[2] + s, a[3] + s}
}

func (a Int4) Float() Float4 {
	return Float4{float32(a[0]), float32(a[1]), float32(a[2]), float32(a[3])}
}

func (a Uint4) Float() Float4 {
	return Float4{float32(a[0]), float32(a[1]), float32(a[2]), float32(a[3])}
}

// Shr shifts every lane right by n bits.
func (a Uint4) Shr(n uint) Uint4 {
	return Uint4{a[0] >> n, a[1] >> n, a[2] >> n, a[3] >> n}
}

// And masks every lane with m.
func (a Uint4) And(m uint32) Uint4 {
	return Uint4{a[0] & m, a[1] & m, a[2] & m, a[3] & m}
}

// Point returns lane i of the batch as an (x, y, z) triple.
func (p Float4x3) Point(i int) (x, y, z float32) {
	return p[0][i], p[1][i], p[2][i]
}

// SetPoint stores (x, y, z) into lane i.
func (p *Float4x3) SetPoint(i int, x, y, z float32) {
	p[0][i], p[1][i], p[2][i] = x, y, z
}

// Pack groups points into batches of Width. The last batch repeats the final
// point in unused lanes so every lane holds a valid position.
func Pack(xs, ys, zs []float32) []Float4x3 {
	n := min(len(xs), len(ys), len(zs))
	if n == 0 {
		return nil
	}
	out := make([]Float4x3, (n+Width-1)/Width)
	for i := range out {
		for l := 0; l < Width; l++ {
			j := min(i*Width+l, n-1)
			out[i].SetPoint(l, xs[j], ys[j], zs[j])
		}
	}
	return out
}

// Unpack flattens batched values into a slice of length n, dropping padding lanes.
func Unpack(values []Float4, n int) []float32 {
	n = min(n, len(values)*Width)
	out := make([]float32, n)
	for i := range out {
		out[i] = values[i/Width][i%Width]
	}
	return out
}
