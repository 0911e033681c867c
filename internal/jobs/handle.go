// Package jobs runs index-parallel work on a fixed set of goroutines.
//
// Work is described as a loop body over [0, length). Each index is executed
// exactly once, so callers that write to distinct slots per index need no
// locking. The caller waits on the returned Handle before reading results.
package jobs

import "sync"

// Handle reports completion of scheduled work.
type Handle struct {
	wg   sync.WaitGroup
	done chan struct{}
}

func newHandle() *Handle {
	return &Handle{done: make(chan struct{})}
}

// seal is called once every batch has been added to wg.
func (h *Handle) seal() {
	go func() {
		h.wg.Wait()
		close(h.done)
	}()
}

// Wait blocks until all work behind the handle has finished.
func (h *Handle) Wait() {
	<-h.done
}

// Done is closed once all work behind the handle has finished.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Completed returns a handle that is already done.
func Completed() *Handle {
	h := newHandle()
	close(h.done)
	return h
}

// Combine returns a handle that completes after all the given handles.
func Combine(handles ...*Handle) *Handle {
	h := newHandle()
	h.wg.Add(len(handles))
	for _, dep := range handles {
		dep := dep
		go func() {
			defer h.wg.Done()
			dep.Wait()
		}()
	}
	h.seal()
	return h
}
