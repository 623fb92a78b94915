package fractalview

import (
	"sync"
	"time"
)

// RenderEvent is delivered by the Controller once per finished job: either a
// *FrameEvent or an *ErrorEvent.
type RenderEvent interface {
	// EventGeneration returns the generation of the job that produced it.
	EventGeneration() uint64
}

// FrameEvent carries a finished frame. Pixels is packed RGB, row-major, and
// is owned by the receiver.
type FrameEvent struct {
	Generation uint64
	Rect       PixelRect
	Pixels     []byte
	Duration   time.Duration
}

// EventGeneration implements RenderEvent.
func (e *FrameEvent) EventGeneration() uint64 { return e.Generation }

// ErrorEvent reports a job that failed for a reason other than cancellation.
// The worker keeps serving after it; presenters keep their last good frame.
type ErrorEvent struct {
	Generation uint64
	Message    string
	Err        error
}

// EventGeneration implements RenderEvent.
func (e *ErrorEvent) EventGeneration() uint64 { return e.Generation }

// FrameSink receives render events. Present is called on the render worker
// goroutine, so implementations must be safe for concurrent use and must
// return quickly: store the event and wake the presenter, don't draw.
// Present must not call Controller.Shutdown directly.
type FrameSink interface {
	Present(RenderEvent)
}

// SinkFunc adapts a function to FrameSink.
type SinkFunc func(RenderEvent)

// Present calls f.
func (f SinkFunc) Present(ev RenderEvent) { f(ev) }

// LatestFrameSink keeps only the newest event it has been given and drops
// anything older than what it already honoured. A presenter drains it with
// Take, typically once per redraw, and may block on Wake between redraws.
type LatestFrameSink struct {
	mu       sync.Mutex
	latest   RenderEvent
	honoured uint64
	wake     chan struct{}
}

// NewLatestFrameSink returns an empty sink.
func NewLatestFrameSink() *LatestFrameSink {
	return &LatestFrameSink{wake: make(chan struct{}, 1)}
}

// Present implements FrameSink. Events whose generation is not strictly
// greater than every generation seen so far are discarded.
func (s *LatestFrameSink) Present(ev RenderEvent) {
	s.mu.Lock()
	g := ev.EventGeneration()
	if g <= s.honoured {
		s.mu.Unlock()
		return
	}
	s.honoured = g
	s.latest = ev
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Take returns and clears the stored event.
func (s *LatestFrameSink) Take() (RenderEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev := s.latest
	s.latest = nil
	return ev, ev != nil
}

// Honoured returns the highest generation accepted so far.
func (s *LatestFrameSink) Honoured() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.honoured
}

// Wake is signalled after every accepted event. Signals coalesce.
func (s *LatestFrameSink) Wake() <-chan struct{} {
	return s.wake
}
