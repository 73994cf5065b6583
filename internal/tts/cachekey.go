package tts

import (
	"crypto/sha256"
	"encoding/hex"
)

// CacheKey derives the audio-cache key for a text/locale pair. The API
// handler and the prefetch worker must agree on this so prefetched audio is
// found on the follow-up playback request.
func CacheKey(text, locale string) string {
	sum := sha256.Sum256([]byte(locale + "\x00" + text))
	return "tts:" + hex.EncodeToString(sum[:16])
}
