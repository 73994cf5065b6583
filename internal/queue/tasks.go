package queue

const (
	TypeSpeechPrefetch = "speech:prefetch"
)

// SpeechPrefetchPayload asks the worker to synthesize audio ahead of the
// client's playback request and park it in the audio cache.
type SpeechPrefetchPayload struct {
	Text   string `json:"text"`
	Locale string `json:"tts_lang"`
}
