package turn

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes text and removes combining marks, so "Bonjour" and
// "bonjour" and "bonjoür" all collapse to the same skeleton.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize reduces text to a comparison skeleton: lowercase, diacritics
// stripped, whitespace and punctuation removed. Used to detect a pron_native
// that merely copies the sentence it claims to transcribe.
func Normalize(text string) string {
	stripped, _, err := transform.String(stripMarks, text)
	if err != nil {
		stripped = text
	}
	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range strings.ToLower(stripped) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsEchoed reports whether pron is just the sentence itself rather than a
// phonetic transcription of it. An echoed pron must be discarded, not shown.
func IsEchoed(pron, sentence string) bool {
	if pron == "" {
		return false
	}
	return Normalize(pron) == Normalize(sentence)
}
