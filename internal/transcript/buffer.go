package transcript

import "strings"

// Buffer merges incremental speech-recognition results into a stable text
// value. Some platforms re-send the entire utterance on every final result,
// others send only deltas after a recognizer restart; naive concatenation
// duplicates words on the former and naive replacement drops context on the
// latter. The rule here: a final transcript that extends the committed text
// contributes only its suffix, anything else replaces the committed text
// wholesale (the recognizer reset).
type Buffer struct {
	committed string
	pending   string
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Seed sets the committed text, used when the user had typed into the input
// box before starting to listen.
func (b *Buffer) Seed(text string) {
	b.committed = text
	b.pending = ""
}

// OnSegment applies one recognition event. Interim segments only update the
// pending display text and are never merged. Final segments are merged into
// committed and clear pending.
func (b *Buffer) OnSegment(text string, final bool) {
	if !final {
		b.pending = text
		return
	}
	b.pending = ""
	if b.committed == "" {
		b.committed = text
		return
	}
	if strings.HasPrefix(text, b.committed) {
		// Re-sent full utterance: keep only the genuinely new words.
		b.committed += text[len(b.committed):]
		return
	}
	// Prefix mismatch: the platform reset or restarted mid-session.
	b.committed = text
}

// Display returns the committed text with any pending interim text appended.
// This is the value shown to the user and submitted downstream.
func (b *Buffer) Display() string {
	if b.pending == "" {
		return b.committed
	}
	if b.committed == "" {
		return b.pending
	}
	return b.committed + " " + b.pending
}

// Committed returns only the confirmed text.
func (b *Buffer) Committed() string {
	return b.committed
}

// Reset clears both committed and pending text for a new listening session.
func (b *Buffer) Reset() {
	b.committed = ""
	b.pending = ""
}
