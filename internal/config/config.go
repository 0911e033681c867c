package config

import (
	"runtime"
	"sync"
)

// RuntimeSettings holds process-wide execution settings
type RuntimeSettings struct {
	mu          sync.RWMutex
	workerCount int
}

var globalRuntimeSettings = &RuntimeSettings{
	workerCount: runtime.GOMAXPROCS(0),
}

// MaxWorkers bounds the worker count accepted by SetWorkerCount.
const MaxWorkers = 256

// WorkerCount returns the number of workers used by the default job pool
func WorkerCount() int {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.workerCount
}

// SetWorkerCount sets the number of workers used by the default job pool.
// Values <= 0 select GOMAXPROCS. Only affects pools created afterwards.
func SetWorkerCount(n int) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > MaxWorkers {
		n = MaxWorkers
	}

	globalRuntimeSettings.workerCount = n
}
