package frame

import (
	"sync"
	"time"

	"trail/internal/domain/service"
)

// ManualScheduler is a FrameScheduler driven by a virtual clock. Nothing runs
// until Tick or Advance is called, which makes frame timing deterministic.
type ManualScheduler struct {
	queue    *queue
	interval time.Duration

	mu  sync.Mutex
	now time.Time
}

var _ service.FrameScheduler = (*ManualScheduler)(nil)

// NewManualScheduler starts the virtual clock at start; each Tick moves it by
// interval.
func NewManualScheduler(start time.Time, interval time.Duration) *ManualScheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &ManualScheduler{
		queue:    newQueue(),
		interval: interval,
		now:      start,
	}
}

// RequestFrame queues fn for the next tick.
func (s *ManualScheduler) RequestFrame(fn service.FrameFunc) service.FrameHandle {
	return s.queue.request(fn)
}

// CancelFrame drops a queued callback.
func (s *ManualScheduler) CancelFrame(handle service.FrameHandle) {
	s.queue.cancel(handle)
}

// Now returns the virtual clock.
func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.now
}

// Pending returns the number of queued callbacks.
func (s *ManualScheduler) Pending() int {
	return s.queue.len()
}

// Tick advances the clock by one interval and fires the queued callbacks.
// It returns how many callbacks ran.
func (s *ManualScheduler) Tick() int {
	s.mu.Lock()
	s.now = s.now.Add(s.interval)
	frameTime := s.now
	s.mu.Unlock()

	return s.queue.run(frameTime)
}

// Advance ticks until d has elapsed on the virtual clock and returns the
// total number of callbacks run.
func (s *ManualScheduler) Advance(d time.Duration) int {
	ran := 0
	for elapsed := time.Duration(0); elapsed < d; elapsed += s.interval {
		ran += s.Tick()
	}

	return ran
}

// RunUntilIdle ticks until no callback is queued or maxFrames ticks have run.
// It returns the number of ticks.
func (s *ManualScheduler) RunUntilIdle(maxFrames int) int {
	ticks := 0
	for ticks < maxFrames && s.Pending() > 0 {
		s.Tick()
		ticks++
	}

	return ticks
}
