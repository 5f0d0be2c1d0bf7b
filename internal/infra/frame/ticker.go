package frame

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"trail/internal/domain/service"
)

const (
	DefaultFPS      = 60
	DefaultInterval = time.Second / DefaultFPS
)

// TickerScheduler fires queued callbacks from a single goroutine on a fixed
// frame interval, the server-side counterpart of requestAnimationFrame.
type TickerScheduler struct {
	queue    *queue
	interval time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

var _ service.FrameScheduler = (*TickerScheduler)(nil)

// NewTickerScheduler creates a stopped scheduler running at fps frames per second.
func NewTickerScheduler(fps int, logger *slog.Logger) *TickerScheduler {
	if fps <= 0 {
		fps = DefaultFPS
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &TickerScheduler{
		queue:    newQueue(),
		interval: time.Second / time.Duration(fps),
		logger:   logger,
	}
}

// RequestFrame queues fn for the next frame.
func (s *TickerScheduler) RequestFrame(fn service.FrameFunc) service.FrameHandle {
	return s.queue.request(fn)
}

// CancelFrame drops a queued callback.
func (s *TickerScheduler) CancelFrame(handle service.FrameHandle) {
	s.queue.cancel(handle)
}

// Interval returns the frame interval.
func (s *TickerScheduler) Interval() time.Duration {
	return s.interval
}

// Start launches the frame loop. Calling Start on a running scheduler is a no-op.
func (s *TickerScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return nil
	}

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.loop(loopCtx, s.done)

	s.logger.Info("Frame loop started", slog.Duration("interval", s.interval))

	return nil
}

// Stop ends the frame loop and waits for the in-flight frame to finish.
// Queued callbacks stay queued.
func (s *TickerScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-done:
		s.logger.Info("Frame loop stopped")

		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *TickerScheduler) loop(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case frameTime := <-ticker.C:
			s.runFrame(frameTime)
		}
	}
}

func (s *TickerScheduler) runFrame(frameTime time.Time) {
	for _, handle := range s.queue.take() {
		fn, ok := s.queue.claim(handle)
		if !ok {
			continue
		}
		s.invoke(fn, frameTime)
	}
}

// invoke isolates a panicking callback so the rest of the frame still runs.
func (s *TickerScheduler) invoke(fn service.FrameFunc, frameTime time.Time) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Frame callback panicked", slog.Any("panic", r))
		}
	}()

	fn(frameTime)
}
