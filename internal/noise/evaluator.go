package noise

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"procgen/internal/hash"
	"procgen/internal/jobs"
	"procgen/internal/lane"
)

// Metric selects a Distance strategy at run time.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricSquaredEuclidean
	MetricManhattan
	MetricChebyshev
	numMetrics
)

var metricNames = [numMetrics]string{"euclidean", "squared", "manhattan", "chebyshev"}

func (m Metric) String() string {
	if m < 0 || m >= numMetrics {
		return fmt.Sprintf("Metric(%d)", int(m))
	}
	return metricNames[m]
}

// ParseMetric accepts the names printed by Metric.String.
func ParseMetric(s string) (Metric, error) {
	for i, name := range metricNames {
		if strings.EqualFold(s, name) {
			return Metric(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown metric %q", ErrInvalidSettings, s)
}

// FunctionKind selects a Function strategy at run time.
type FunctionKind int

const (
	FunctionF1 FunctionKind = iota
	FunctionF2
	FunctionF2MinusF1
	numFunctions
)

var functionNames = [numFunctions]string{"f1", "f2", "f2-f1"}

func (f FunctionKind) String() string {
	if f < 0 || f >= numFunctions {
		return fmt.Sprintf("FunctionKind(%d)", int(f))
	}
	return functionNames[f]
}

// ParseFunction accepts the names printed by FunctionKind.String.
func ParseFunction(s string) (FunctionKind, error) {
	for i, name := range functionNames {
		if strings.EqualFold(s, name) {
			return FunctionKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown function %q", ErrInvalidSettings, s)
}

// Config picks one Voronoi instantiation.
type Config struct {
	Dimensions int // 1, 2 or 3
	Metric     Metric
	Function   FunctionKind
	Tiling     bool
}

// SampleFunc is Sample bound to one Voronoi instantiation.
type SampleFunc func(pool *jobs.WorkerPool, positions []lane.Float4x3, out []lane.Float4, s Settings, domain mgl32.Mat4) (*jobs.Handle, error)

type variant struct {
	noise4 func(positions lane.Float4x3, h hash.Hash4, frequency int32) lane.Float4
	sample SampleFunc
}

func variantOf[N Noise]() variant {
	var n N
	return variant{noise4: n.Noise4, sample: Sample[N]}
}

func byDimension[L Lattice, D Distance, F Function]() [3]variant {
	return [3]variant{
		variantOf[Voronoi1D[L, D, F]](),
		variantOf[Voronoi2D[L, D, F]](),
		variantOf[Voronoi3D[L, D, F]](),
	}
}

func byFunction[L Lattice, D Distance]() [numFunctions][3]variant {
	return [numFunctions][3]variant{
		byDimension[L, D, F1](),
		byDimension[L, D, F2](),
		byDimension[L, D, F2MinusF1](),
	}
}

func byMetric[L Lattice]() [numMetrics][numFunctions][3]variant {
	return [numMetrics][numFunctions][3]variant{
		byFunction[L, Euclidean](),
		byFunction[L, SquaredEuclidean](),
		byFunction[L, Manhattan](),
		byFunction[L, Chebyshev](),
	}
}

// variants holds every instantiation, indexed by tiling, metric, function and
// dimension. Lookups happen once per Evaluator, never per sample.
var variants = [2][numMetrics][numFunctions][3]variant{
	byMetric[Normal](),
	byMetric[Tiling](),
}

func lookup(c Config) (variant, error) {
	if c.Dimensions < 1 || c.Dimensions > 3 {
		return variant{}, fmt.Errorf("%w: dimensions must be 1, 2 or 3, got %d", ErrInvalidSettings, c.Dimensions)
	}
	if c.Metric < 0 || c.Metric >= numMetrics {
		return variant{}, fmt.Errorf("%w: %v", ErrInvalidSettings, c.Metric)
	}
	if c.Function < 0 || c.Function >= numFunctions {
		return variant{}, fmt.Errorf("%w: %v", ErrInvalidSettings, c.Function)
	}
	tiling := 0
	if c.Tiling {
		tiling = 1
	}
	return variants[tiling][c.Metric][c.Function][c.Dimensions-1], nil
}

// Evaluator is a Voronoi noise chosen at run time. It is immutable and safe
// for concurrent use.
type Evaluator struct {
	config Config
	v      variant
}

// NewEvaluator resolves c to a concrete instantiation.
func NewEvaluator(c Config) (*Evaluator, error) {
	v, err := lookup(c)
	if err != nil {
		return nil, err
	}
	return &Evaluator{config: c, v: v}, nil
}

func (e *Evaluator) Config() Config { return e.config }

// Evaluate returns the noise for four positions.
func (e *Evaluator) Evaluate(positions lane.Float4x3, seed, frequency int32) (lane.Float4, error) {
	if frequency <= 0 {
		return lane.Float4{}, fmt.Errorf("%w, got %d", ErrInvalidFrequency, frequency)
	}
	return e.v.noise4(positions, hash.Seed(seed), frequency), nil
}

// Sample runs fractal noise over all batches in parallel. See Sample.
func (e *Evaluator) Sample(pool *jobs.WorkerPool, positions []lane.Float4x3, out []lane.Float4, s Settings, domain mgl32.Mat4) (*jobs.Handle, error) {
	return e.v.sample(pool, positions, out, s, domain)
}

// IsInvalid reports whether err came from bad noise input.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidFrequency) || errors.Is(err, ErrInvalidSettings)
}
