// Package profiling accumulates wall time per named stage of a run.
package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Stage is the accumulated cost of one named stage.
type Stage struct {
	Name  string
	Total time.Duration
	Calls int
}

var (
	mu     sync.Mutex
	stages = make(map[string]*Stage)
)

// Track returns a stop function that adds the elapsed time to name.
// Usage: defer profiling.Track("mesh.Generate")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		s, ok := stages[name]
		if !ok {
			s = &Stage{Name: name}
			stages[name] = s
		}
		s.Total += d
		s.Calls++
		mu.Unlock()
	}
}

// Reset clears all totals.
func Reset() {
	mu.Lock()
	clear(stages)
	mu.Unlock()
}

// Snapshot returns the stages sorted by descending total.
func Snapshot() []Stage {
	mu.Lock()
	out := make([]Stage, 0, len(stages))
	for _, s := range stages {
		out = append(out, *s)
	}
	mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// TopN formats the n most expensive stages.
// Example: "mesh.Generate:4.2ms, export.OBJ:2.1ms"
func TopN(n int) string {
	ss := Snapshot()
	n = min(n, len(ss))
	parts := make([]string, 0, n)
	for _, s := range ss[:n] {
		parts = append(parts, s.Name+":"+formatMs(s.Total))
	}
	return strings.Join(parts, ", ")
}

// formatMs keeps one decimal and drops a trailing ".0".
func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000
	s := fmt.Sprintf("%.1f", ms)
	return strings.TrimSuffix(s, ".0") + "ms"
}
