package noise

import (
	"github.com/chewxy/math32"

	"procgen/internal/lane"
)

// Minima4 tracks the two smallest distances seen per lane. C0 <= C1 always holds.
type Minima4 struct {
	C0, C1 lane.Float4
}

// NewMinima4 returns a tracker that has not seen any distance yet.
func NewMinima4() Minima4 {
	return Minima4{C0: lane.Splat(math32.MaxFloat32), C1: lane.Splat(math32.MaxFloat32)}
}

// Update folds new distances into the tracker without branching per lane.
// A distance below C0 shifts C0 into C1; one between C0 and C1 replaces C1.
func (m Minima4) Update(distances lane.Float4) Minima4 {
	m.C1 = lane.Min(lane.Max(m.C0, distances), m.C1)
	m.C0 = lane.Min(m.C0, distances)
	return m
}

// Distance measures candidate offsets. Distances only need to order
// correctly during the search; Finalize converts the two minima to the
// metric's real units once at the end.
type Distance interface {
	Distance1(x lane.Float4) lane.Float4
	Distance2(x, y lane.Float4) lane.Float4
	Distance3(x, y, z lane.Float4) lane.Float4
	Finalize(m Minima4) Minima4
}

// Euclidean searches on squared lengths and takes a single square root per
// result.
type Euclidean struct{}

func (Euclidean) Distance1(x lane.Float4) lane.Float4 { return x.Mul(x) }

func (Euclidean) Distance2(x, y lane.Float4) lane.Float4 {
	return x.Mul(x).Add(y.Mul(y))
}

func (Euclidean) Distance3(x, y, z lane.Float4) lane.Float4 {
	return x.Mul(x).Add(y.Mul(y)).Add(z.Mul(z))
}

func (Euclidean) Finalize(m Minima4) Minima4 {
	return Minima4{C0: m.C0.Sqrt(), C1: m.C1.Sqrt()}
}

// SquaredEuclidean keeps squared lengths. Same ordering as Euclidean, no sqrt.
type SquaredEuclidean struct{}

func (SquaredEuclidean) Distance1(x lane.Float4) lane.Float4 { return x.Mul(x) }

func (SquaredEuclidean) Distance2(x, y lane.Float4) lane.Float4 {
	return x.Mul(x).Add(y.Mul(y))
}

func (SquaredEuclidean) Distance3(x, y, z lane.Float4) lane.Float4 {
	return x.Mul(x).Add(y.Mul(y)).Add(z.Mul(z))
}

func (SquaredEuclidean) Finalize(m Minima4) Minima4 { return m }

// Manhattan sums absolute components.
type Manhattan struct{}

func (Manhattan) Distance1(x lane.Float4) lane.Float4 { return x.Abs() }

func (Manhattan) Distance2(x, y lane.Float4) lane.Float4 {
	return x.Abs().Add(y.Abs())
}

func (Manhattan) Distance3(x, y, z lane.Float4) lane.Float4 {
	return x.Abs().Add(y.Abs()).Add(z.Abs())
}

func (Manhattan) Finalize(m Minima4) Minima4 { return m }

// Chebyshev takes the largest absolute component.
type Chebyshev struct{}

func (Chebyshev) Distance1(x lane.Float4) lane.Float4 { return x.Abs() }

func (Chebyshev) Distance2(x, y lane.Float4) lane.Float4 {
	return lane.Max(x.Abs(), y.Abs())
}

func (Chebyshev) Distance3(x, y, z lane.Float4) lane.Float4 {
	return lane.Max(lane.Max(x.Abs(), y.Abs()), z.Abs())
}

func (Chebyshev) Finalize(m Minima4) Minima4 { return m }
