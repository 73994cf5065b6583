package turn

import (
	"fmt"
	"strings"
)

// ValidateRequest checks a request before any network call is made.
func ValidateRequest(req Request) error {
	if strings.TrimSpace(req.UserMessage) == "" {
		return ErrEmptyInput
	}
	if !ValidMode(req.Mode) {
		return fmt.Errorf("invalid mode %q", req.Mode)
	}
	if req.NativeLanguage == req.TargetLanguage {
		return fmt.Errorf("native and target language both %q", req.NativeLanguage)
	}
	return nil
}

// ValidateResult checks a parsed service response against the request's mode
// and scrubs fields that cannot be trusted. It mutates res in place so the
// caller always sees the cleaned form. A returned error means the turn
// failed and the session must not advance.
func ValidateResult(req Request, res *Result) error {
	if res.Mode == "" {
		res.Mode = req.Mode
	}
	if res.Mode != req.Mode {
		return fmt.Errorf("%w: mode %q does not echo request mode %q", ErrIncompleteTurn, res.Mode, req.Mode)
	}

	switch req.Mode {
	case ModeNative:
		if res.TranslatedSentence == nil || strings.TrimSpace(*res.TranslatedSentence) == "" {
			return fmt.Errorf("%w: translated_sentence missing in native mode", ErrIncompleteTurn)
		}
		// Unused fields must not carry stray content into the UI.
		res.OriginalSentence = nil
		res.CorrectedSentence = nil
		res.CorrectionExplanation = ""
	case ModeTarget:
		if res.CorrectedSentence == nil || strings.TrimSpace(*res.CorrectedSentence) == "" {
			return fmt.Errorf("%w: corrected_sentence missing in target mode", ErrIncompleteTurn)
		}
		if res.OriginalSentence == nil {
			orig := req.UserMessage
			res.OriginalSentence = &orig
		}
		res.TranslatedSentence = nil
	default:
		return fmt.Errorf("invalid request mode %q", req.Mode)
	}

	// A pron_native that just copies the foreign sentence is not a
	// transcription. Hide it instead of displaying a lie.
	if IsEchoed(string(res.PronNative), res.ForeignSentence()) {
		res.PronNative = ""
	}

	if strings.TrimSpace(res.NextQuestionTarget) == "" {
		return fmt.Errorf("%w: next_question_target missing", ErrIncompleteTurn)
	}
	if res.NextQuestionNative != nil && strings.TrimSpace(*res.NextQuestionNative) == "" {
		res.NextQuestionNative = nil
	}

	return nil
}
