package scanner

import (
	"sync"
	"sync/atomic"

	"github.com/lumipallolabs/imageinfo/internal/model"
)

// LatestSink keeps only the most recent progress event. It is safe to update
// from the scan goroutine while another goroutine polls Latest.
type LatestSink struct {
	latest atomic.Pointer[model.ProgressEvent]
	done   atomic.Bool
}

// Update stores the event, replacing the previous one
func (s *LatestSink) Update(event model.ProgressEvent) {
	s.latest.Store(&event)
}

// Finish marks the scan as done
func (s *LatestSink) Finish() {
	s.done.Store(true)
}

// Latest returns the most recent event, if any
func (s *LatestSink) Latest() (model.ProgressEvent, bool) {
	p := s.latest.Load()
	if p == nil {
		return model.ProgressEvent{}, false
	}
	return *p, true
}

// Done reports whether Finish has been called
func (s *LatestSink) Done() bool {
	return s.done.Load()
}

// Reset clears the sink for another scan
func (s *LatestSink) Reset() {
	s.latest.Store(nil)
	s.done.Store(false)
}

// ChannelSink delivers progress events on a buffered channel, which is
// closed on Finish. Events are dropped while the buffer is full.
type ChannelSink struct {
	ch   chan model.ProgressEvent
	once sync.Once
}

// NewChannelSink creates a channel sink with the given buffer size
func NewChannelSink(buffer int) *ChannelSink {
	return &ChannelSink{ch: make(chan model.ProgressEvent, buffer)}
}

// Progress returns the event channel
func (s *ChannelSink) Progress() <-chan model.ProgressEvent {
	return s.ch
}

// Update sends the event without blocking
func (s *ChannelSink) Update(event model.ProgressEvent) {
	select {
	case s.ch <- event:
	default:
	}
}

// Finish closes the channel
func (s *ChannelSink) Finish() {
	s.once.Do(func() { close(s.ch) })
}

// FuncSink adapts a function to a ProgressSink. Finish is a no-op.
type FuncSink func(model.ProgressEvent)

func (f FuncSink) Update(event model.ProgressEvent) { f(event) }
func (f FuncSink) Finish()                          {}

// MultiSink fans progress out to several sinks
type MultiSink []ProgressSink

func (m MultiSink) Update(event model.ProgressEvent) {
	for _, s := range m {
		s.Update(event)
	}
}

func (m MultiSink) Finish() {
	for _, s := range m {
		s.Finish()
	}
}

type nopSink struct{}

func (nopSink) Update(model.ProgressEvent) {}
func (nopSink) Finish()                    {}
