package hash

import (
	"math"
	"testing"

	"procgen/internal/lane"
)

// TestEatDeterministic verifies the same seed and eat sequence always produce the same state
func TestEatDeterministic(t *testing.T) {
	coords := []lane.Int4{{10, -3, 0, 7}, {20, 5, -1, 7}, {30, 9, 2, 7}}
	var results [100]lane.Uint4
	for i := range results {
		h := Seed(42)
		for _, c := range coords {
			h = h.Eat(c)
		}
		results[i] = h.Avalanche()
	}

	first := results[0]
	for i := 1; i < len(results); i++ {
		if results[i] != first {
			t.Errorf("hash not deterministic: results[0]=%v, results[%d]=%v", first, i, results[i])
		}
	}
}

// TestLanesIndependent verifies each lane only depends on its own coordinate
func TestLanesIndependent(t *testing.T) {
	batched := Seed(7).Eat(lane.Int4{1, 2, 3, 4}).Avalanche()
	for i := 0; i < lane.Width; i++ {
		single := Seed(7).Eat(lane.SplatInt(int32(i + 1))).Avalanche()
		if batched[i] != single[i] {
			t.Errorf("lane %d: batched=%d, single=%d", i, batched[i], single[i])
		}
	}
}

// TestEatNonCommutative documents that eat order is part of the hash
func TestEatNonCommutative(t *testing.T) {
	a := lane.SplatInt(3)
	b := lane.SplatInt(11)
	ab := Seed(0).Eat(a).Eat(b).Avalanche()
	ba := Seed(0).Eat(b).Eat(a).Avalanche()
	if ab == ba {
		t.Errorf("eat(3) then eat(11) should differ from eat(11) then eat(3): both %v", ab)
	}
}

func TestSeedChangesHash(t *testing.T) {
	c := lane.Int4{1, 1, 1, 1}
	h1 := Seed(100).Eat(c).Avalanche()
	h2 := Seed(200).Eat(c).Avalanche()
	if h1 == h2 {
		t.Errorf("hash should differ for different seeds: %v", h1)
	}
}

func TestAddOffsetsState(t *testing.T) {
	h := Seed(5).Eat(lane.SplatInt(9))
	if h.Add(1).Avalanche() == h.Avalanche() {
		t.Errorf("Add(1) should change the hash")
	}
	if h.Add(0) != h {
		t.Errorf("Add(0) should be the identity")
	}
}

func TestBitsAsFloats01Range(t *testing.T) {
	h := Seed(1)
	for i := int32(0); i < 5000; i++ {
		s := h.Eat(lane.Int4{i, -i, i * 3, i ^ 0x55})
		for _, shift := range []uint{0, 5, 10, 15, 20, 25} {
			v := s.BitsAsFloats01(5, shift)
			for l, f := range v {
				if f < 0 || f >= 1 {
					t.Fatalf("BitsAsFloats01(5,%d) lane %d = %f, expected in [0,1)", shift, l, f)
				}
			}
		}
		for _, v := range []lane.Float4{s.Floats01A(), s.Floats01B(), s.Floats01C(), s.Floats01D()} {
			for l, f := range v {
				if f < 0 || f >= 1 {
					t.Fatalf("byte float lane %d = %f, expected in [0,1)", l, f)
				}
			}
		}
	}
}

// TestDisjointRangesIndependent checks uniformity and low correlation between
// samples taken from disjoint bit ranges of the same state
func TestDisjointRangesIndependent(t *testing.T) {
	const n = 20000
	var sumA, sumB, sumAA, sumBB, sumAB float64
	h := Seed(1234)
	for i := 0; i < n; i++ {
		s := h.Eat(lane.SplatInt(int32(i))).Eat(lane.SplatInt(int32(i / 7)))
		a := float64(s.Floats01A()[0])
		b := float64(s.Floats01B()[0])
		sumA += a
		sumB += b
		sumAA += a * a
		sumBB += b * b
		sumAB += a * b
	}
	meanA, meanB := sumA/n, sumB/n
	if math.Abs(meanA-0.5) > 0.02 || math.Abs(meanB-0.5) > 0.02 {
		t.Errorf("samples not uniform: meanA=%f meanB=%f", meanA, meanB)
	}
	cov := sumAB/n - meanA*meanB
	varA := sumAA/n - meanA*meanA
	varB := sumBB/n - meanB*meanB
	corr := cov / math.Sqrt(varA*varB)
	if math.Abs(corr) > 0.05 {
		t.Errorf("disjoint bit ranges correlated: corr=%f", corr)
	}
}

func BenchmarkEat(b *testing.B) {
	h := Seed(1)
	c := lane.Int4{1, 2, 3, 4}
	for i := 0; i < b.N; i++ {
		h = h.Eat(c)
	}
	_ = h.Avalanche()
}
