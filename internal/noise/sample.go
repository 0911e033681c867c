package noise

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"procgen/internal/config"
	"procgen/internal/hash"
	"procgen/internal/jobs"
	"procgen/internal/lane"
)

var (
	ErrInvalidFrequency = errors.New("noise: frequency must be positive")
	ErrInvalidSettings  = errors.New("noise: invalid settings")
)

// Settings configures fractal noise.
type Settings struct {
	Seed        int32
	Frequency   int32
	Octaves     int
	Lacunarity  int32
	Persistence float32
}

// DefaultSettings returns a single octave at frequency 4.
func DefaultSettings() Settings {
	return Settings{Frequency: 4, Octaves: 1, Lacunarity: 2, Persistence: 0.5}
}

// Validate reports settings that would violate a Noise4 precondition.
func (s Settings) Validate() error {
	if s.Frequency <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidFrequency, s.Frequency)
	}
	if s.Octaves < 1 {
		return fmt.Errorf("%w: octaves must be at least 1, got %d", ErrInvalidSettings, s.Octaves)
	}
	if s.Lacunarity < 1 {
		return fmt.Errorf("%w: lacunarity must be at least 1, got %d", ErrInvalidSettings, s.Lacunarity)
	}
	if s.Octaves > config.MaxOctaves {
		return fmt.Errorf("%w: octaves must be at most %d, got %d", ErrInvalidSettings, config.MaxOctaves, s.Octaves)
	}
	if f, ok := config.FinestFrequency(s.Frequency, s.Lacunarity, s.Octaves); !ok {
		return fmt.Errorf("%w: octave frequency %d exceeds %d", ErrInvalidSettings, f, config.MaxFrequency)
	}
	if !(s.Persistence > 0) || math.IsInf(float64(s.Persistence), 0) {
		return fmt.Errorf("%w: persistence must be positive and finite, got %v", ErrInvalidSettings, s.Persistence)
	}
	return nil
}

// Fractal sums octaves of N. Each octave offsets the hash by its index,
// multiplies the frequency by the lacunarity and the amplitude by the
// persistence. The sum is divided by the total amplitude, so a single octave
// returns N unchanged. s must pass Validate.
func Fractal[N Noise](positions lane.Float4x3, s Settings) lane.Float4 {
	var n N
	h := hash.Seed(s.Seed)
	frequency := s.Frequency
	amplitude, amplitudeSum := float32(1), float32(0)
	var sum lane.Float4
	for o := 0; o < s.Octaves; o++ {
		sum = sum.Add(n.Noise4(positions, h.Add(int32(o)), frequency).Scale(amplitude))
		amplitudeSum += amplitude
		frequency *= s.Lacunarity
		amplitude *= s.Persistence
	}
	return sum.Scale(1 / amplitudeSum)
}

// Sample evaluates fractal noise N for every position batch on the pool.
// Positions are transformed by domain first. out must be at least as long as
// positions; out[i] is written only by the job for batch i. Wait on the
// returned handle before reading out.
func Sample[N Noise](pool *jobs.WorkerPool, positions []lane.Float4x3, out []lane.Float4, s Settings, domain mgl32.Mat4) (*jobs.Handle, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if len(out) < len(positions) {
		return nil, fmt.Errorf("%w: output holds %d batches, need %d", ErrInvalidSettings, len(out), len(positions))
	}
	batchSize := max(1, len(positions)/(4*pool.Workers()))
	return pool.ScheduleParallel(len(positions), batchSize, func(i int) {
		out[i] = Fractal[N](Transform(domain, positions[i]), s)
	}), nil
}

// Transform applies an affine matrix to each point of a batch.
func Transform(m mgl32.Mat4, p lane.Float4x3) lane.Float4x3 {
	if m == mgl32.Ident4() {
		return p
	}
	var out lane.Float4x3
	for i := 0; i < lane.Width; i++ {
		x, y, z := p.Point(i)
		t := mgl32.TransformCoordinate(mgl32.Vec3{x, y, z}, m)
		out.SetPoint(i, t[0], t[1], t[2])
	}
	return out
}

// Domain builds the translate * rotateY * scale matrix applied to sample
// points. rotateY is in degrees.
func Domain(translate mgl32.Vec3, rotateY float32, scale mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(translate[0], translate[1], translate[2]).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(rotateY))).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}
