package noise

import (
	"procgen/internal/hash"
	"procgen/internal/lane"
)

// Noise evaluates a scalar field for a batch of four positions.
// frequency is the number of lattice cells per unit and must be positive.
type Noise interface {
	Noise4(positions lane.Float4x3, h hash.Hash4, frequency int32) lane.Float4
}

func checkFrequency(frequency int32) {
	if frequency <= 0 {
		panic("noise: frequency must be positive")
	}
}

// Voronoi1D is cellular noise along X with one candidate point per cell.
type Voronoi1D[L Lattice, D Distance, F Function] struct{}

func (Voronoi1D[L, D, F]) Noise4(positions lane.Float4x3, h hash.Hash4, frequency int32) lane.Float4 {
	checkFrequency(frequency)
	var (
		l L
		d D
		f F
	)
	x := l.Span4(positions[0], frequency)

	minima := NewMinima4()
	for u := int32(-1); u <= 1; u++ {
		hx := h.Eat(l.ValidateSingleStep(x.P0.AddScalar(u), frequency))
		xOffset := lane.Splat(float32(u)).Sub(x.G0)
		minima = minima.Update(d.Distance1(hx.Floats01A().Add(xOffset)))
	}
	return f.Evaluate(d.Finalize(minima))
}

// Voronoi2D is cellular noise on the horizontal XZ plane with two candidate
// points per cell.
type Voronoi2D[L Lattice, D Distance, F Function] struct{}

func (Voronoi2D[L, D, F]) Noise4(positions lane.Float4x3, h hash.Hash4, frequency int32) lane.Float4 {
	checkFrequency(frequency)
	var (
		l L
		d D
		f F
	)
	x := l.Span4(positions[0], frequency)
	z := l.Span4(positions[2], frequency)

	minima := NewMinima4()
	for u := int32(-1); u <= 1; u++ {
		hx := h.Eat(l.ValidateSingleStep(x.P0.AddScalar(u), frequency))
		xOffset := lane.Splat(float32(u)).Sub(x.G0)
		for v := int32(-1); v <= 1; v++ {
			hz := hx.Eat(l.ValidateSingleStep(z.P0.AddScalar(v), frequency))
			zOffset := lane.Splat(float32(v)).Sub(z.G0)
			cell := hz.Value()
			minima = minima.Update(d.Distance2(
				cell.Floats01A().Add(xOffset),
				cell.Floats01B().Add(zOffset),
			))
			minima = minima.Update(d.Distance2(
				cell.Floats01C().Add(xOffset),
				cell.Floats01D().Add(zOffset),
			))
		}
	}
	return f.Evaluate(d.Finalize(minima))
}

// Voronoi3D is cellular noise in XYZ with two candidate points per cell,
// each taken from 15 bits of the cell hash.
type Voronoi3D[L Lattice, D Distance, F Function] struct{}

func (Voronoi3D[L, D, F]) Noise4(positions lane.Float4x3, h hash.Hash4, frequency int32) lane.Float4 {
	checkFrequency(frequency)
	var (
		l L
		d D
		f F
	)
	x := l.Span4(positions[0], frequency)
	y := l.Span4(positions[1], frequency)
	z := l.Span4(positions[2], frequency)

	minima := NewMinima4()
	for u := int32(-1); u <= 1; u++ {
		hx := h.Eat(l.ValidateSingleStep(x.P0.AddScalar(u), frequency))
		xOffset := lane.Splat(float32(u)).Sub(x.G0)
		for v := int32(-1); v <= 1; v++ {
			hy := hx.Eat(l.ValidateSingleStep(y.P0.AddScalar(v), frequency))
			yOffset := lane.Splat(float32(v)).Sub(y.G0)
			for w := int32(-1); w <= 1; w++ {
				hz := hy.Eat(l.ValidateSingleStep(z.P0.AddScalar(w), frequency))
				zOffset := lane.Splat(float32(w)).Sub(z.G0)
				cell := hz.Value()
				minima = minima.Update(d.Distance3(
					cell.BitsAsFloats01(5, 0).Add(xOffset),
					cell.BitsAsFloats01(5, 5).Add(yOffset),
					cell.BitsAsFloats01(5, 10).Add(zOffset),
				))
				minima = minima.Update(d.Distance3(
					cell.BitsAsFloats01(5, 15).Add(xOffset),
					cell.BitsAsFloats01(5, 20).Add(yOffset),
					cell.BitsAsFloats01(5, 25).Add(zOffset),
				))
			}
		}
	}
	return f.Evaluate(d.Finalize(minima))
}
