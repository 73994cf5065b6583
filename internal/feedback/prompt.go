package feedback

import (
	"fmt"
	"strings"

	"github.com/lingoloop/lingoloop/internal/language"
	"github.com/lingoloop/lingoloop/internal/turn"
)

func difficultyText(d turn.Difficulty) string {
	switch d {
	case turn.DifficultyBeginner:
		return "Keep every sentence and the next question very short and simple, at CEFR A2 level."
	case turn.DifficultyIntermediate:
		return "Keep sentences and the next question at a natural CEFR B1-B2 level."
	default:
		return "Use rich expressions and vocabulary at CEFR C1-C2 level."
	}
}

// scriptRule says which writing system pron_native must use for a given
// native language.
func scriptRule(native language.Code) string {
	switch native {
	case language.Korean:
		return "ko -> Hangul only (example: \"I went to work\" -> \"아이 웬트 투 워크\")"
	case language.Russian:
		return "ru -> Cyrillic only (example: \"hello\" -> \"хэлоу\")"
	default:
		return "en / es / fr -> Latin alphabet only"
	}
}

// koNativePhoneticGuide gives Hangul transcription style tables for the
// target languages where models tend to copy the sentence instead of
// transcribing it.
func koNativePhoneticGuide(target language.Code) string {
	switch target {
	case language.Spanish:
		return `
pron_native MUST be a natural Korean Hangul phonetic transcription of Spanish sounds.
NEVER copy the Spanish sentence itself.
Style examples: me -> 메, van -> 반, baño -> 바뇨, pero -> 페로.
Full sentences: "¿Cómo estás?" -> "꼬모 에스따스", "Gracias" -> "그라씨아스", "Hoy fue un día difícil" -> "오이 푸에 운 디아 디피씰".`
	case language.Russian:
		return `
pron_native MUST be a natural Korean Hangul phonetic transcription of Russian sounds.
NEVER copy the Russian sentence itself.
Style examples: да -> 다, мой -> 모이, спасибо -> 스빠씨바.
Full sentences: "Как дела?" -> "캍 젤라?", "Спасибо большое" -> "스빠씨바 발쇼예".`
	case language.English:
		return `
pron_native MUST be written in Hangul only (example: "I was upset" -> "아이 워즈 업셋").`
	default:
		return ""
	}
}

// buildTurnSystemPrompt assembles the feedback-service system prompt for one
// practice turn. The wording keeps difficulty control above every other
// rule; models otherwise drift to advanced output.
func buildTurnSystemPrompt(req turn.Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are a friendly and patient language exchange partner.

MOST IMPORTANT RULE - DIFFICULTY CONTROL
%s
The difficulty instruction overrides every other rule. Apply it to the translation, the correction and the next question.

INPUT FIELDS
- nativeLanguage (%q), targetLanguage (%q), mode (%q), userMessage, difficulty.

ABSOLUTE RULES FOR pron_native
- pron_native MUST ALWAYS be the pronunciation of the FOREIGN sentence, NOT the user's original message.
  - native mode -> pronunciation of translated_sentence
  - target mode -> pronunciation of corrected_sentence
- pron_native MUST be written using the user's native writing system:
  %s
- pron_native MUST NOT include translation, grammar notes, quotes, brackets, IPA, or any extra text.
`,
		difficultyText(req.Difficulty),
		req.NativeLanguage, req.TargetLanguage, req.Mode,
		scriptRule(req.NativeLanguage),
	)

	if req.NativeLanguage == language.Korean {
		if guide := koNativePhoneticGuide(req.TargetLanguage); guide != "" {
			b.WriteString(guide)
			b.WriteString("\n")
		}
	}

	// The only per-pair override: an English speaker practicing Korean gets
	// romanization, never Hangul.
	if req.NativeLanguage == language.English && req.TargetLanguage == language.Korean {
		b.WriteString(`
SPECIAL OVERRIDE: nativeLanguage = "en", targetLanguage = "ko"
- pron_native MUST ALWAYS be a romanized English-alphabet pronunciation of the Korean sentence.
- NEVER include Hangul characters under ANY condition.
- NEVER copy the Korean sentence itself.
Example: "나는 병원에 갔어요." -> "na-neun byeong-won-e ga-sseo-yo"
`)
	}

	b.WriteString(`
PRONUNCIATION PRAISE
- pronunciation_praise MUST be a short, supportive sentence in the user's native language.
- It MUST NOT repeat pron_native or contain pronunciation content.

BEHAVIOR RULES
1) mode = "native"
   - Translate ONLY the user's message into the target language.
   - translated_sentence = natural, full sentence in the target language.
   - correction_explanation = "" (empty string).
2) mode = "target"
   - original_sentence = user's original message.
   - corrected_sentence = lightly corrected natural version (do NOT completely rewrite).
   - correction_explanation = brief explanation ONLY in the user's native language.
In both modes:
   - pron_native = pronunciation of the foreign sentence in the native writing system.
   - Ask exactly ONE follow-up question in the target language (next_question_target).
   - ALWAYS provide next_question_native = translation of next_question_target into the native language.

JSON RESPONSE FORMAT (MUST include all fields)
{
  "mode": "native" | "target",
  "translated_sentence": string | null,
  "original_sentence": string | null,
  "corrected_sentence": string | null,
  "correction_explanation": string,
  "pronunciation_praise": string,
  "next_question_target": string,
  "next_question_native": string | null,
  "pron_native": string
}

CRITICAL RESTRICTIONS
- NEVER include anything outside the JSON. NEVER include markdown.
- Unused fields MUST be null (not "", not "null"), except correction_explanation which is "" in native mode.
- The response is INVALID if pron_native simply copies the foreign sentence instead of transcribing it.
`)

	return b.String()
}

// buildGeneratePronGuide mirrors the per-native pronunciation rules for the
// one-shot sentence generation endpoint.
func buildGeneratePronGuide(native language.Code) string {
	switch native {
	case language.Korean:
		return `Write the pronunciation using only Korean Hangul letters.
Do NOT use Latin letters or IPA. Do NOT copy the target sentence itself.
Example: "Bonjour" -> "봉쥬르"`
	case language.English:
		return `Write the pronunciation using only the English alphabet (Latin letters).
The output MUST look like a romanization, not the original sentence.
Example: "집에 가고 싶었어요." -> "jibe gago sipeosseoyo"`
	case language.Russian:
		return `Write the pronunciation using only Russian Cyrillic letters.
Do NOT use Latin letters or IPA. Do NOT translate the sentence.
Example: "hello" -> "хэлоу"`
	default:
		return `Write the pronunciation using only the native language's normal spelling (Latin letters).
Do NOT use IPA and do NOT translate the sentence.`
	}
}

func buildGenerateSystemPrompt(native, target language.Code) string {
	nativeName := language.Lookup(native).PromptName
	targetName := language.Lookup(target).PromptName

	return fmt.Sprintf(`You are a helpful language tutor.

Given:
- user's native language: %s (code: %s)
- target language: %s (code: %s)

Task:
1. Create ONE natural, CEFR A2-B1 level sentence in the TARGET language (%s),
   that would be a reasonable response to the user's original sentence.
2. Provide a pronunciation guide for that sentence, written in the user's native writing system (%s).

VERY IMPORTANT for pronunciation:
%s

Rules:
- "sentence" MUST be written in the target language.
- "pron_native" MUST represent how "sentence" sounds, written in the native writing system.
- "pron_native" MUST NOT be identical to "sentence" and MUST NOT be a translation.
- Return ONLY a JSON object like:
  {"sentence": "...", "pron_native": "..."}`,
		nativeName, native, targetName, target, targetName, nativeName,
		buildGeneratePronGuide(native),
	)
}
