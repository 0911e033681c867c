package noise

import "procgen/internal/lane"

// Span4 locates four coordinates on the lattice: the integer cell each one
// falls in and the fractional offset inside that cell, in [0, 1).
type Span4 struct {
	P0 lane.Int4
	G0 lane.Float4
}

// Lattice maps continuous coordinates to cells and decides how neighbour cell
// indices are addressed.
type Lattice interface {
	Span4(coordinates lane.Float4, frequency int32) Span4
	// ValidateSingleStep adjusts a cell index that is at most one step away
	// from a Span4 cell.
	ValidateSingleStep(points lane.Int4, frequency int32) lane.Int4
}

// Normal is the plain lattice: cell indices pass through unchanged and the
// noise never repeats.
type Normal struct{}

func (Normal) Span4(coordinates lane.Float4, frequency int32) Span4 {
	return span(coordinates, frequency)
}

func span(coordinates lane.Float4, frequency int32) Span4 {
	coordinates = coordinates.Scale(float32(frequency))
	points := coordinates.Floor()
	s := Span4{P0: points.Int(), G0: coordinates.Sub(points)}
	for i, g := range s.G0 {
		// tiny negative coordinates round up to a full cell
		if g >= 1 {
			s.P0[i]++
			s.G0[i] = 0
		}
	}
	return s
}

func (Normal) ValidateSingleStep(points lane.Int4, frequency int32) lane.Int4 {
	return points
}

// Tiling wraps cell indices modulo the frequency, so the noise repeats every
// unit of input space without a seam.
type Tiling struct{}

func (Tiling) Span4(coordinates lane.Float4, frequency int32) Span4 {
	s := span(coordinates, frequency)
	for i, p := range s.P0 {
		p %= frequency
		if p < 0 {
			p += frequency
		}
		s.P0[i] = p
	}
	return s
}

func (Tiling) ValidateSingleStep(points lane.Int4, frequency int32) lane.Int4 {
	for i, p := range points {
		switch {
		case p == -1:
			points[i] = frequency - 1
		case p == frequency:
			points[i] = 0
		}
	}
	return points
}
