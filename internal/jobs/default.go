package jobs

import (
	"sync"

	"procgen/internal/config"
)

var (
	defaultOnce sync.Once
	defaultPool *WorkerPool
)

// Default returns the process-wide pool, created on first use with
// config.WorkerCount() workers.
func Default() *WorkerPool {
	defaultOnce.Do(func() {
		n := config.WorkerCount()
		defaultPool = NewWorkerPool(n, 4*n)
	})
	return defaultPool
}
