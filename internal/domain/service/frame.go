package service

import "time"

// FrameHandle identifies a scheduled frame callback. The zero handle is never
// issued.
type FrameHandle uint64

// FrameFunc runs once per requested frame with the frame timestamp.
type FrameFunc func(frameTime time.Time)

// FrameScheduler is a request-next-frame loop. Callbacks run one at a time in
// the order they were requested, and a cancelled handle must not fire.
type FrameScheduler interface {
	RequestFrame(fn FrameFunc) FrameHandle
	CancelFrame(handle FrameHandle)
}
