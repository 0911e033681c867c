package mesh

import "procgen/internal/jobs"

// Schedule sets up s for g and queues every job of g on pool. The mesh is
// complete once the returned handle is done; s must not be read before that.
// Setup errors are returned before any job is queued.
func Schedule(pool *jobs.WorkerPool, g Generator, s Streams) (*jobs.Handle, error) {
	if err := s.Setup(g.Bounds(), g.VertexCount(), g.IndexCount()); err != nil {
		return nil, err
	}
	jobs.Logger().Debug("mesh scheduled",
		"resolution", g.Resolution(),
		"vertices", g.VertexCount(),
		"indices", g.IndexCount(),
		"jobs", g.JobCount())
	return pool.ScheduleParallel(g.JobCount(), 1, func(job int) {
		g.Execute(job, s)
	}), nil
}

// Generate builds shape at resolution into fresh streams of the given layout
// and waits for it.
func Generate(pool *jobs.WorkerPool, shape Shape, resolution int, layout Layout) (MeshStreams, error) {
	g, err := NewGenerator(shape, resolution)
	if err != nil {
		return nil, err
	}
	s, err := NewStreams(layout)
	if err != nil {
		return nil, err
	}
	h, err := Schedule(pool, g, s)
	if err != nil {
		return nil, err
	}
	h.Wait()
	return s, nil
}
