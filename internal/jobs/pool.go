package jobs

import (
	"log/slog"
	"sync"
)

// batch is a contiguous run of indices handed to one worker.
type batch struct {
	start, end int
	execute    func(i int)
	handle     *Handle
}

// WorkerPool manages goroutines that run parallel-for batches.
type WorkerPool struct {
	jobQueue chan batch
	workers  int
	wg       sync.WaitGroup

	// mu guards closed against concurrent Shutdown; schedulers hold it for reading.
	mu     sync.RWMutex
	closed bool
}

// NewWorkerPool creates a pool with the given number of workers and queue size
func NewWorkerPool(workers int, queueSize int) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	pool := &WorkerPool{
		jobQueue: make(chan batch, queueSize),
		workers:  workers,
	}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	Logger().Debug("worker pool started", "workers", workers, "queue", queueSize)
	return pool
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// ScheduleParallel runs execute once for every index in [0, length), split
// into batches of batchSize consecutive indices. Batches run concurrently and
// in no particular order; the returned handle completes when all have finished.
// Once scheduled, work cannot be cancelled.
//
// A batch that finds the queue full runs on the calling goroutine, so
// scheduling never blocks and execute may itself call ScheduleParallel and
// wait on the result.
func (p *WorkerPool) ScheduleParallel(length, batchSize int, execute func(i int)) *Handle {
	if batchSize < 1 {
		batchSize = 1
	}
	h := newHandle()
	if length <= 0 {
		h.seal()
		return h
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	for start := 0; start < length; start += batchSize {
		b := batch{start: start, end: min(start+batchSize, length), execute: execute, handle: h}
		h.wg.Add(1)
		if p.closed {
			// The pool is gone; finish the work on the caller's goroutine.
			b.run()
			continue
		}
		select {
		case p.jobQueue <- b:
		default:
			b.run()
		}
	}
	h.seal()
	return h
}

func (b batch) run() {
	defer b.handle.wg.Done()
	for i := b.start; i < b.end; i++ {
		b.execute(i)
	}
}

// worker is the worker goroutine that processes batches
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for b := range p.jobQueue {
		b.run()
	}
	Logger().Debug("worker stopped", "id", id)
}

// Shutdown stops accepting work, lets queued batches finish and waits for
// the workers to exit.
func (p *WorkerPool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobQueue)
	p.mu.Unlock()
	p.wg.Wait()
}

// QueueLength returns the current number of batches waiting for a worker
func (p *WorkerPool) QueueLength() int {
	return len(p.jobQueue)
}

var (
	logMu  sync.RWMutex
	logOut = slog.Default()
)

// SetLogger replaces the logger used for pool lifecycle messages.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	logMu.Lock()
	logOut = l
	logMu.Unlock()
}

// Logger returns the logger set by SetLogger, slog.Default() otherwise.
func Logger() *slog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return logOut
}
