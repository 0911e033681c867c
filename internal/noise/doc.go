// Package noise evaluates cellular (Voronoi) noise on batches of four points.
//
// A Voronoi type is composed from three strategies chosen by type parameters:
// a Lattice (Normal or Tiling), a Distance metric and an output Function.
// Every cell in the ring of immediate neighbours around the query cell is
// hashed and contributes one (1D) or two (2D, 3D) jittered candidate points;
// the two smallest distances are tracked and handed to the Function.
//
// Output upper bounds, in cell units, before any remapping. In 2D and 3D
// every cell holds two candidates, so both F1 and F2 are bounded by the
// farthest point of the query's own cell (n is 2 or 3):
//
//	Euclidean         F1, F2, F2-F1  [0, sqrt(n)]
//	SquaredEuclidean  F1, F2, F2-F1  [0, n]
//	Manhattan         F1, F2, F2-F1  [0, n]
//	Chebyshev         F1, F2, F2-F1  [0, 1]
//
// In 1D a cell holds one candidate; every metric reduces to |dx| (squared:
// dx*dx), F1 is at most 1 and F2 at most 2 (squared: 1 and 4).
//
// With candidates spread over whole cells the typical Euclidean F1 stays
// below about 1.1 in 2D and 3D. Because only adjacent cells are searched, a
// candidate two cells away is never found; the result is then an upper bound
// of the true distance.
//
// Fractal sums octaves; its output stays within the range of a single octave.
package noise
