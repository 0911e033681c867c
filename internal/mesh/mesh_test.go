package mesh

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"procgen/internal/jobs"
)

func TestSquareGridSize(t *testing.T) {
	v, i, err := Size(SquareGrid, 2)
	if err != nil {
		t.Fatal(err)
	}
	if v != 9 || i != 24 {
		t.Fatalf("Size(SquareGrid, 2) = %d, %d, want 9, 24", v, i)
	}
}

func TestSizes(t *testing.T) {
	cases := []struct {
		shape         Shape
		r             int
		vertices, idx int
	}{
		{SquareGrid, 1, 4, 6},
		{QuadGrid, 3, 36, 54},
		{TriangleGrid, 3, 16, 54},
		{PointyHexagonGrid, 2, 28, 72},
		{FlatHexagonGrid, 1, 7, 18},
		{CubeSphere, 1, 24, 36},
		{UVSphere, 1, 13, 24},
		{UVSphere, 2, 43, 144},
	}
	for _, c := range cases {
		v, i, err := Size(c.shape, c.r)
		if err != nil {
			t.Fatalf("%v: %v", c.shape, err)
		}
		if v != c.vertices || i != c.idx {
			t.Errorf("Size(%v, %d) = %d, %d, want %d, %d", c.shape, c.r, v, i, c.vertices, c.idx)
		}
	}
}

func TestMaxResolution(t *testing.T) {
	if got := MaxResolution(SquareGrid); got != 254 {
		t.Errorf("MaxResolution(SquareGrid) = %d, want 254", got)
	}
	for _, shape := range Shapes() {
		r := MaxResolution(shape)
		v, _, err := Size(shape, r)
		if err != nil {
			t.Fatalf("%v: Size at max resolution: %v", shape, err)
		}
		over := newGenerator(shape, r+1).VertexCount()
		if v > MaxVertexCount || over <= MaxVertexCount {
			t.Errorf("%v: max resolution %d has %d vertices, next has %d", shape, r, v, over)
		}
	}
}

// TestRangesPartitionBuffers checks that job ranges tile the vertex and
// triangle buffers exactly, for every resolution that fits 16-bit indices.
func TestRangesPartitionBuffers(t *testing.T) {
	for _, shape := range Shapes() {
		for r := 1; r <= MaxResolution(shape); r++ {
			g, err := NewGenerator(shape, r)
			if err != nil {
				t.Fatal(err)
			}
			var vs, ts []Range
			for job := 0; job < g.JobCount(); job++ {
				v, tr := g.Ranges(job)
				vs = append(vs, v)
				ts = append(ts, tr)
			}
			if err := tiles(vs, g.VertexCount()); err != nil {
				t.Fatalf("%v r=%d vertices: %v", shape, r, err)
			}
			if err := tiles(ts, g.IndexCount()/3); err != nil {
				t.Fatalf("%v r=%d triangles: %v", shape, r, err)
			}
		}
	}
}

func tiles(ranges []Range, total int) error {
	sorted := append([]Range(nil), ranges...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	next := 0
	for _, r := range sorted {
		if r.Len() < 0 {
			return errors.New("negative range")
		}
		if r.Len() == 0 {
			continue
		}
		if r.Start != next {
			return errors.New("gap or overlap between ranges")
		}
		next = r.End
	}
	if next != total {
		return errors.New("ranges do not cover the buffer")
	}
	return nil
}

// recorder checks every write against the ranges of the running job.
type recorder struct {
	t          *testing.T
	g          Generator
	job        int
	vertices   []int
	triangles  []int
	vertexList []Vertex
	triList    []Triangle
}

func (r *recorder) Setup(_ Bounds, vertexCount, indexCount int) error {
	r.vertices = make([]int, vertexCount)
	r.triangles = make([]int, indexCount/3)
	r.vertexList = make([]Vertex, vertexCount)
	r.triList = make([]Triangle, indexCount/3)
	return nil
}

func (r *recorder) SetVertex(i int, v Vertex) {
	if vr, _ := r.g.Ranges(r.job); i < vr.Start || i >= vr.End {
		r.t.Fatalf("job %d wrote vertex %d outside %v", r.job, i, vr)
	}
	r.vertices[i]++
	r.vertexList[i] = v
}

func (r *recorder) SetTriangle(i int, t Triangle) {
	if _, tr := r.g.Ranges(r.job); i < tr.Start || i >= tr.End {
		r.t.Fatalf("job %d wrote triangle %d outside %v", r.job, i, tr)
	}
	for _, idx := range t {
		if idx < 0 || int(idx) >= len(r.vertices) {
			r.t.Fatalf("job %d triangle %d references vertex %d of %d", r.job, i, idx, len(r.vertices))
		}
	}
	r.triangles[i]++
	r.triList[i] = t
}

func record(t *testing.T, g Generator) *recorder {
	t.Helper()
	rec := &recorder{t: t, g: g}
	if err := rec.Setup(g.Bounds(), g.VertexCount(), g.IndexCount()); err != nil {
		t.Fatal(err)
	}
	for job := 0; job < g.JobCount(); job++ {
		rec.job = job
		g.Execute(job, rec)
	}
	return rec
}

func TestJobsWriteEverySlotOnce(t *testing.T) {
	for _, shape := range Shapes() {
		for _, r := range []int{1, 2, 3, 7, MaxResolution(shape)} {
			g, _ := NewGenerator(shape, r)
			rec := record(t, g)
			for i, n := range rec.vertices {
				if n != 1 {
					t.Fatalf("%v r=%d: vertex %d written %d times", shape, r, i, n)
				}
			}
			for i, n := range rec.triangles {
				if n != 1 {
					t.Fatalf("%v r=%d: triangle %d written %d times", shape, r, i, n)
				}
			}
		}
	}
}

func TestTrianglesFaceOutward(t *testing.T) {
	for _, shape := range Shapes() {
		for _, r := range []int{1, 2, 5} {
			g, _ := NewGenerator(shape, r)
			rec := record(t, g)
			for i, tri := range rec.triList {
				a, b, c := rec.vertexList[tri[0]], rec.vertexList[tri[1]], rec.vertexList[tri[2]]
				face := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position))
				normal := a.Normal.Add(b.Normal).Add(c.Normal)
				if face.Dot(normal) <= 0 {
					t.Fatalf("%v r=%d: triangle %d %v faces inward", shape, r, i, tri)
				}
			}
		}
	}
}

func TestVerticesInsideBounds(t *testing.T) {
	for _, shape := range Shapes() {
		for _, r := range []int{1, 2, 6} {
			g, _ := NewGenerator(shape, r)
			rec := record(t, g)
			b := g.Bounds()
			for i, v := range rec.vertexList {
				if !b.Contains(v.Position) {
					t.Fatalf("%v r=%d: vertex %d at %v outside %+v", shape, r, i, v.Position, b)
				}
				if math.Abs(float64(v.Normal.Len())-1) > 1e-5 {
					t.Fatalf("%v r=%d: vertex %d normal %v not unit length", shape, r, i, v.Normal)
				}
				if v.Tangent[3] != -1 {
					t.Fatalf("%v r=%d: vertex %d tangent w = %f", shape, r, i, v.Tangent[3])
				}
			}
		}
	}
}

func TestSphereVerticesOnUnitSphere(t *testing.T) {
	for _, shape := range []Shape{CubeSphere, UVSphere} {
		g, _ := NewGenerator(shape, 4)
		rec := record(t, g)
		for i, v := range rec.vertexList {
			if math.Abs(float64(v.Position.Len())-1) > 1e-5 {
				t.Fatalf("%v: vertex %d at distance %f", shape, i, v.Position.Len())
			}
			if !v.Position.ApproxEqualThreshold(v.Normal, 1e-6) {
				t.Fatalf("%v: vertex %d normal %v != position %v", shape, i, v.Normal, v.Position)
			}
		}
	}
}

func TestLayoutsProduceSameMesh(t *testing.T) {
	pool := jobs.NewWorkerPool(4, 16)
	defer pool.Shutdown()

	for _, shape := range Shapes() {
		a, err := Generate(pool, shape, 6, LayoutInterleaved)
		if err != nil {
			t.Fatal(err)
		}
		b, err := Generate(pool, shape, 6, LayoutSeparated)
		if err != nil {
			t.Fatal(err)
		}
		if a.VertexCount() != b.VertexCount() || a.IndexCount() != b.IndexCount() || a.Bounds() != b.Bounds() {
			t.Fatalf("%v: layouts disagree on size", shape)
		}
		for i := 0; i < a.VertexCount(); i++ {
			if a.Vertex(i) != b.Vertex(i) {
				t.Fatalf("%v: vertex %d differs: %+v vs %+v", shape, i, a.Vertex(i), b.Vertex(i))
			}
		}
		for i := 0; i < a.IndexCount()/3; i++ {
			if a.Triangle(i) != b.Triangle(i) {
				t.Fatalf("%v: triangle %d differs", shape, i)
			}
		}
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	pool := jobs.NewWorkerPool(8, 8)
	defer pool.Shutdown()

	g, _ := NewGenerator(UVSphere, 9)
	rec := record(t, g)
	s := &Separated{}
	h, err := Schedule(pool, g, s)
	if err != nil {
		t.Fatal(err)
	}
	h.Wait()
	for i, v := range rec.vertexList {
		if s.Vertex(i) != v {
			t.Fatalf("vertex %d differs", i)
		}
	}
	for i, tri := range rec.triList {
		if s.Triangle(i) != tri {
			t.Fatalf("triangle %d differs", i)
		}
	}
}

func TestScheduleRejectsIndexOverflow(t *testing.T) {
	pool := jobs.NewWorkerPool(1, 1)
	defer pool.Shutdown()

	for _, shape := range Shapes() {
		g := newGenerator(shape, MaxResolution(shape)+1)
		if _, err := Schedule(pool, g, &Interleaved{}); !errors.Is(err, ErrIndexOverflow) {
			t.Errorf("%v: got %v, want ErrIndexOverflow", shape, err)
		}
	}
	if err := (&Separated{}).Setup(Bounds{}, MaxVertexCount, 3); err != nil {
		t.Errorf("Setup at the limit: %v", err)
	}
	if err := (&Separated{}).Setup(Bounds{}, 3, 4); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("index count not a multiple of 3: got %v", err)
	}
}

// Resolutions whose squared counts wrap int must fail, not size to zero.
func TestHugeResolutionRejected(t *testing.T) {
	for _, shape := range Shapes() {
		for _, r := range []int{MaxResolution(shape) + 1, 1 << 31, 1 << 32, math.MaxInt} {
			if _, err := NewGenerator(shape, r); !errors.Is(err, ErrIndexOverflow) {
				t.Errorf("NewGenerator(%v, %d): got %v, want ErrIndexOverflow", shape, r, err)
			}
			if v, i, err := Size(shape, r); !errors.Is(err, ErrIndexOverflow) || v != 0 || i != 0 {
				t.Errorf("Size(%v, %d) = %d, %d, %v", shape, r, v, i, err)
			}
		}
	}

	pool := jobs.NewWorkerPool(1, 1)
	defer pool.Shutdown()
	if _, err := Generate(pool, QuadGrid, 1<<32, LayoutInterleaved); !errors.Is(err, ErrIndexOverflow) {
		t.Errorf("Generate: got %v, want ErrIndexOverflow", err)
	}
}

func TestSetupUsesCallerBuffers(t *testing.T) {
	vertices := make([]float32, 0, 9*VertexStride)
	indices := make([]uint16, 0, 24)
	s := &Interleaved{Vertices: vertices, Indices: indices}

	pool := jobs.NewWorkerPool(2, 2)
	defer pool.Shutdown()
	g, _ := NewGenerator(SquareGrid, 2)
	h, err := Schedule(pool, g, s)
	if err != nil {
		t.Fatal(err)
	}
	h.Wait()
	if &s.Vertices[0] != &vertices[:1][0] || &s.Indices[0] != &indices[:1][0] {
		t.Errorf("Setup reallocated buffers with sufficient capacity")
	}
	if v := s.Vertex(8); v.Position != (mgl32.Vec3{0.5, 0, 0.5}) || v.TexCoord0 != (mgl32.Vec2{1, 1}) {
		t.Errorf("last vertex = %+v", v)
	}
	if tri := s.Triangle(0); tri != (Triangle{0, 3, 1}) {
		t.Errorf("first triangle = %v, want [0 3 1]", tri)
	}
}

func TestNewGeneratorErrors(t *testing.T) {
	if _, err := NewGenerator(SquareGrid, 0); !errors.Is(err, ErrInvalidResolution) {
		t.Errorf("zero resolution: got %v", err)
	}
	if _, err := NewGenerator(Shape(42), 2); !errors.Is(err, ErrUnknownShape) {
		t.Errorf("unknown shape: got %v", err)
	}
	if _, err := ParseShape("dodecahedron"); !errors.Is(err, ErrUnknownShape) {
		t.Errorf("ParseShape: got %v", err)
	}
	for _, shape := range Shapes() {
		if got, err := ParseShape(shape.String()); err != nil || got != shape {
			t.Errorf("ParseShape(%q) = %v, %v", shape.String(), got, err)
		}
	}
	if l, err := ParseLayout("Separated"); err != nil || l != LayoutSeparated {
		t.Errorf("ParseLayout = %v, %v", l, err)
	}
}

func BenchmarkCubeSphere(b *testing.B) {
	pool := jobs.NewWorkerPool(4, 64)
	defer pool.Shutdown()
	g, _ := NewGenerator(CubeSphere, 32)
	s := &Interleaved{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h, err := Schedule(pool, g, s)
		if err != nil {
			b.Fatal(err)
		}
		h.Wait()
	}
}
