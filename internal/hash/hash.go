// Package hash implements a small 4-lane xxHash variant for lattice noise.
//
// A Hash4 is seeded once and then fed integer coordinates with Eat. Eating is
// order sensitive: Eat(a).Eat(b) and Eat(b).Eat(a) generally differ, so callers
// must always feed axes in the same order. Random values are read from the
// avalanched state with Bits and the Floats01 helpers; disjoint bit ranges of one
// state act as independent samples.
package hash

import (
	"math/bits"

	"procgen/internal/lane"
)

const (
	primeB uint32 = 0b10000101111010111100101001110111
	primeC uint32 = 0b11000010101100101010111000111101
	primeD uint32 = 0b00100111110101001110101100101111
	primeE uint32 = 0b00010110010101100110011110110001
)

// Hash4 holds four independent accumulators, one per lane.
type Hash4 struct {
	acc lane.Uint4
}

// Seed initialises all four lanes from the same seed.
func Seed(seed int32) Hash4 {
	s := uint32(seed) + primeE
	return Hash4{acc: lane.Uint4{s, s, s, s}}
}

// Eat folds one integer coordinate per lane into the accumulators.
func (h Hash4) Eat(data lane.Int4) Hash4 {
	for i := range h.acc {
		h.acc[i] = bits.RotateLeft32(h.acc[i]+uint32(data[i])*primeC, 17) * primeD
	}
	return h
}

// Add offsets every accumulator by v. Used to derive per-octave hashes.
func (h Hash4) Add(v int32) Hash4 {
	for i := range h.acc {
		h.acc[i] += uint32(v)
	}
	return h
}

// Avalanche mixes the accumulators into their final hash values.
func (h Hash4) Avalanche() lane.Uint4 {
	var out lane.Uint4
	for i, a := range h.acc {
		a ^= a >> 15
		a *= primeB
		a ^= a >> 13
		a *= primeC
		a ^= a >> 16
		out[i] = a
	}
	return out
}

// Value avalanches the state once so several bit ranges can be read
// without repeating the final mix.
func (h Hash4) Value() Value4 {
	return Value4{bits: h.Avalanche()}
}

// Value4 is an avalanched Hash4.
type Value4 struct {
	bits lane.Uint4
}

// Bits returns count bits starting at shift from each lane.
// count must be below 32.
func (v Value4) Bits(count, shift uint) lane.Uint4 {
	return v.bits.Shr(shift).And(uint32(1)<<count - 1)
}

// BitsAsFloats01 maps count bits starting at shift to [0, 1).
func (v Value4) BitsAsFloats01(count, shift uint) lane.Float4 {
	return v.Bits(count, shift).Float().Scale(1 / float32(uint32(1)<<count))
}

// Floats01A returns the lowest byte of each lane as a value in [0, 1).
func (v Value4) Floats01A() lane.Float4 { return v.BitsAsFloats01(8, 0) }

// Floats01B returns the second byte of each lane as a value in [0, 1).
func (v Value4) Floats01B() lane.Float4 { return v.BitsAsFloats01(8, 8) }

// Floats01C returns the third byte of each lane as a value in [0, 1).
func (v Value4) Floats01C() lane.Float4 { return v.BitsAsFloats01(8, 16) }

// Floats01D returns the highest byte of each lane as a value in [0, 1).
func (v Value4) Floats01D() lane.Float4 { return v.BitsAsFloats01(8, 24) }

// BitsAsFloats01 is shorthand for h.Value().BitsAsFloats01.
func (h Hash4) BitsAsFloats01(count, shift uint) lane.Float4 {
	return h.Value().BitsAsFloats01(count, shift)
}

// Floats01A through Floats01D are shorthand for the same methods on
// h.Value(). Each call avalanches again; take Value once when reading
// several fields.
func (h Hash4) Floats01A() lane.Float4 { return h.Value().Floats01A() }

func (h Hash4) Floats01B() lane.Float4 { return h.Value().Floats01B() }

func (h Hash4) Floats01C() lane.Float4 { return h.Value().Floats01C() }

func (h Hash4) Floats01D() lane.Float4 { return h.Value().Floats01D() }
