package transcript

import "sync"

// Event is one speech-recognition result pushed by the client platform.
type Event struct {
	Transcript string `json:"transcript"`
	IsFinal    bool   `json:"isFinal"`
}

// Stream owns the buffer for one listening session. Stop takes effect
// synchronously: any event applied after Stop is dropped, so a client that
// toggled the microphone off never sees buffered late results leak into the
// text box.
type Stream struct {
	mu      sync.Mutex
	buf     Buffer
	stopped bool
}

// NewStream starts a listening session. A non-empty seed preserves text the
// user typed before pressing the microphone button.
func NewStream(seed string) *Stream {
	s := &Stream{}
	if seed != "" {
		s.buf.Seed(seed)
	}
	return s
}

// Apply merges one recognition event and returns the current display value.
// ok is false when the stream has already been stopped and the event was
// discarded.
func (s *Stream) Apply(ev Event) (display string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return s.buf.Display(), false
	}
	s.buf.OnSegment(ev.Transcript, ev.IsFinal)
	return s.buf.Display(), true
}

// Stop ends the listening session and returns the committed text. Pending
// interim text is dropped; only confirmed words survive a stop.
func (s *Stream) Stop() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	return s.buf.Committed()
}

// Stopped reports whether Stop has been called.
func (s *Stream) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}
