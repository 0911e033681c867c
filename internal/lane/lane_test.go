package lane

import "testing"

func TestFloat4Ops(t *testing.T) {
	a := Float4{-1.5, 0, 2.25, 4}
	b := Float4{1, 2, 3, 4}

	if got, want := a.Add(b), (Float4{-0.5, 2, 5.25, 8}); got != want {
		t.Errorf("Add = %v, want %v", got, want)
	}
	if got, want := a.Floor(), (Float4{-2, 0, 2, 4}); got != want {
		t.Errorf("Floor = %v, want %v", got, want)
	}
	if got, want := a.Int(), (Int4{-1, 0, 2, 4}); got != want {
		t.Errorf("Int = %v, want %v", got, want)
	}
	if got, want := Min(a, b), (Float4{-1.5, 0, 2.25, 4}); got != want {
		t.Errorf("Min = %v, want %v", got, want)
	}
	if got, want := Max(a, b), (Float4{1, 2, 3, 4}); got != want {
		t.Errorf("Max = %v, want %v", got, want)
	}
	if got, want := (Float4{4, 9, 0, 2.25}).Sqrt(), (Float4{2, 3, 0, 1.5}); got != want {
		t.Errorf("Sqrt = %v, want %v", got, want)
	}
	if got, want := (Uint4{0xF0, 0xFF, 0x10, 1}).Shr(4).And(0x7), (Uint4{7, 7, 1, 0}); got != want {
		t.Errorf("Shr/And = %v, want %v", got, want)
	}
}

func TestPackUnpack(t *testing.T) {
	xs := []float32{1, 2, 3, 4, 5}
	ys := []float32{10, 20, 30, 40, 50}
	zs := []float32{-1, -2, -3, -4, -5}

	batches := Pack(xs, ys, zs)
	if len(batches) != 2 {
		t.Fatalf("got %d batches, want 2", len(batches))
	}
	for l := 1; l < Width; l++ {
		x, y, z := batches[1].Point(l)
		if x != 5 || y != 50 || z != -5 {
			t.Errorf("padding lane %d = (%v, %v, %v), want the last point", l, x, y, z)
		}
	}

	got := Unpack([]Float4{batches[0][0], batches[1][0]}, 5)
	for i, want := range xs {
		if got[i] != want {
			t.Errorf("Unpack[%d] = %v, want %v", i, got[i], want)
		}
	}
	if Pack(nil, ys, zs) != nil {
		t.Errorf("Pack of empty input should be nil")
	}
}
