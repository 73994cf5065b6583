package transcript

import "testing"

func TestStreamAppliesSegments(t *testing.T) {
	s := NewStream("")

	display, ok := s.Apply(Event{Transcript: "hola", IsFinal: true})
	if !ok {
		t.Fatal("Apply rejected before stop")
	}
	if display != "hola" {
		t.Errorf("display = %q, want %q", display, "hola")
	}

	display, _ = s.Apply(Event{Transcript: "hola que tal", IsFinal: true})
	if display != "hola que tal" {
		t.Errorf("display = %q, want %q", display, "hola que tal")
	}
}

func TestStreamSeedPreservesTypedText(t *testing.T) {
	s := NewStream("already typed")

	display, _ := s.Apply(Event{Transcript: "already typed plus spoken", IsFinal: true})
	if display != "already typed plus spoken" {
		t.Errorf("display = %q, want %q", display, "already typed plus spoken")
	}
}

func TestStreamStopDropsLateEvents(t *testing.T) {
	s := NewStream("")
	s.Apply(Event{Transcript: "stop right", IsFinal: true})

	committed := s.Stop()
	if committed != "stop right" {
		t.Errorf("Stop() = %q, want %q", committed, "stop right")
	}

	// An event buffered by the platform and delivered after stop must not
	// change the text.
	display, ok := s.Apply(Event{Transcript: "stop right there", IsFinal: true})
	if ok {
		t.Error("Apply accepted an event after Stop")
	}
	if display != "stop right" {
		t.Errorf("display after stop = %q, want %q", display, "stop right")
	}
}

func TestStreamStopDiscardsPending(t *testing.T) {
	s := NewStream("")
	s.Apply(Event{Transcript: "confirmed", IsFinal: true})
	s.Apply(Event{Transcript: "maybe more", IsFinal: false})

	if committed := s.Stop(); committed != "confirmed" {
		t.Errorf("Stop() = %q, want %q", committed, "confirmed")
	}
}
