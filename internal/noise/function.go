package noise

import "procgen/internal/lane"

// Function turns the finalized minima into the noise value.
type Function interface {
	Evaluate(m Minima4) lane.Float4
}

// F1 is the distance to the nearest candidate.
type F1 struct{}

func (F1) Evaluate(m Minima4) lane.Float4 { return m.C0 }

// F2 is the distance to the second nearest candidate.
type F2 struct{}

func (F2) Evaluate(m Minima4) lane.Float4 { return m.C1 }

// F2MinusF1 is near zero on cell borders and grows towards cell centres.
type F2MinusF1 struct{}

func (F2MinusF1) Evaluate(m Minima4) lane.Float4 { return m.C1.Sub(m.C0) }
