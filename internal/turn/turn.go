package turn

import (
	"encoding/json"
	"errors"

	"github.com/lingoloop/lingoloop/internal/language"
)

// Mode says which language the user answered in for this turn.
type Mode string

const (
	// ModeNative: the user answered in their native language and wants the
	// target-language rendering back.
	ModeNative Mode = "native"
	// ModeTarget: the user attempted the target language and wants a light
	// correction back.
	ModeTarget Mode = "target"
)

// Difficulty controls sentence complexity in the feedback service's output.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Turn exchange failures. All of them leave session state untouched and are
// surfaced to the client as retryable.
var (
	ErrEmptyInput         = errors.New("empty user message")
	ErrServiceUnavailable = errors.New("feedback service unavailable")
	ErrInvalidResponse    = errors.New("feedback service returned an unparseable response")
	ErrIncompleteTurn     = errors.New("feedback service response missing required fields")
)

// PronText is a phonetic transcription field. Models occasionally emit null
// or a non-string here; that coerces to "" (the UI hides the field) instead
// of failing the whole turn.
type PronText string

func (p *PronText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*p = ""
		return nil
	}
	*p = PronText(s)
	return nil
}

// Request is one exchange sent to the feedback service.
type Request struct {
	Mode           Mode          `json:"mode"`
	NativeLanguage language.Code `json:"nativeLanguage"`
	TargetLanguage language.Code `json:"targetLanguage"`
	UserMessage    string        `json:"userMessage"`
	Difficulty     Difficulty    `json:"difficulty"`
}

// Result is the validated outcome of one turn. Fields unused for the turn's
// mode are explicit nulls on the wire, never omitted, except
// CorrectionExplanation which is "" in native mode.
type Result struct {
	Mode Mode `json:"mode"`

	// Native mode only: the target-language rendering of the user's message.
	TranslatedSentence *string `json:"translated_sentence"`

	// Target mode only: the user's attempt and its light correction.
	OriginalSentence  *string `json:"original_sentence"`
	CorrectedSentence *string `json:"corrected_sentence"`

	// Explanation of the correction, in the native language. "" in native mode.
	CorrectionExplanation string `json:"correction_explanation"`

	// Short encouragement in the native language. Never phonetic content.
	PronunciationPraise string `json:"pronunciation_praise"`

	// Phonetic transcription of the foreign sentence in the native script.
	PronNative PronText `json:"pron_native"`

	// Follow-up question, always in the target language.
	NextQuestionTarget string `json:"next_question_target"`

	// Native-language translation of the follow-up. May be transiently absent.
	NextQuestionNative *string `json:"next_question_native"`
}

// ForeignSentence returns the sentence PronNative transcribes: the
// translation in native mode, the corrected attempt in target mode.
func (r *Result) ForeignSentence() string {
	switch r.Mode {
	case ModeNative:
		if r.TranslatedSentence != nil {
			return *r.TranslatedSentence
		}
	case ModeTarget:
		if r.CorrectedSentence != nil {
			return *r.CorrectedSentence
		}
	}
	return ""
}

// ValidMode reports whether m is a known answer mode.
func ValidMode(m Mode) bool {
	return m == ModeNative || m == ModeTarget
}

// ValidDifficulty reports whether d is a known difficulty level.
func ValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}
