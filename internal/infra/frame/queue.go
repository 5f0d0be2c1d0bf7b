// Package frame provides request-next-frame schedulers: a real-time ticker
// loop for hosts and a manually advanced clock for replays and tests.
package frame

import (
	"sync"
	"time"

	"trail/internal/domain/service"
)

// queue keeps requested callbacks in submission order. A callback removed by
// cancel is never returned by drain, even if the cancel happens while an
// earlier callback of the same batch is running.
type queue struct {
	mu      sync.Mutex
	next    service.FrameHandle
	order   []service.FrameHandle
	pending map[service.FrameHandle]service.FrameFunc
}

func newQueue() *queue {
	return &queue{
		pending: make(map[service.FrameHandle]service.FrameFunc),
	}
}

func (q *queue) request(fn service.FrameFunc) service.FrameHandle {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.next++
	handle := q.next
	q.pending[handle] = fn
	q.order = append(q.order, handle)

	return handle
}

func (q *queue) cancel(handle service.FrameHandle) {
	q.mu.Lock()
	defer q.mu.Unlock()

	delete(q.pending, handle)
}

// take detaches the callbacks requested so far. Callbacks requested while the
// batch runs wait for the next frame.
func (q *queue) take() []service.FrameHandle {
	q.mu.Lock()
	defer q.mu.Unlock()

	batch := q.order
	q.order = nil

	return batch
}

// claim removes and returns the callback for handle if it is still pending.
func (q *queue) claim(handle service.FrameHandle) (service.FrameFunc, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	fn, ok := q.pending[handle]
	if ok {
		delete(q.pending, handle)
	}

	return fn, ok
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.pending)
}

// run fires one frame and reports how many callbacks ran.
func (q *queue) run(frameTime time.Time) int {
	ran := 0
	for _, handle := range q.take() {
		fn, ok := q.claim(handle)
		if !ok {
			continue
		}
		fn(frameTime)
		ran++
	}

	return ran
}
