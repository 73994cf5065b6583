package language

// Code is an ISO 639-1 language code supported by the practice flow.
type Code string

const (
	Korean  Code = "ko"
	English Code = "en"
	French  Code = "fr"
	Spanish Code = "es"
	Russian Code = "ru"
)

// Info describes one supported language.
type Info struct {
	Code       Code   `json:"code"`
	Label      string `json:"label"`    // self-name shown in pickers
	TTSLocale  string `json:"tts_lang"` // BCP-47 tag for speech services
	PromptName string `json:"-"`        // name + script hint used in LLM prompts
}

// UITexts is the localized copy bundle for the client screens.
type UITexts struct {
	SetupTitle       string `json:"setup_title"`
	SetupSubtitle    string `json:"setup_subtitle"`
	NativeLabel      string `json:"native_label"`
	TargetLabel      string `json:"target_label"`
	SetsQuestion     string `json:"sets_question"`
	SetInfo          string `json:"set_info"`
	StartPractice    string `json:"start_practice"`
	QuestionTitle    string `json:"question_title"`
	AnswerPrompt     string `json:"answer_prompt"`
	InputPlaceholder string `json:"input_placeholder"`
	ForeignLabel     string `json:"foreign_label"`
	ListenButton     string `json:"listen_button"`
	PronLabel        string `json:"pron_label"`
	DoneMessage      string `json:"done_message"`
	BackToSetup      string `json:"back_to_setup"`
	NextSet          string `json:"next_set"`
}

// entry is everything the catalog knows about one language.
type entry struct {
	info      Info
	questions []string
	texts     UITexts
}

// catalog keys everything by language code; lookups fall back to English
// when a code is unknown so a stale client can never break rendering.
var catalog = map[Code]entry{
	Korean: {
		info: Info{Code: Korean, Label: "한국어", TTSLocale: "ko-KR", PromptName: "Korean (Hangul)"},
		questions: []string{
			"오늘 하루는 어떻게 시작했나요?",
			"어제 저녁에는 무엇을 했나요?",
			"휴일에 보통 무엇을 하며 시간을 보내나요?",
		},
		texts: UITexts{
			SetupTitle:       "외국어 말하기, 모국어로 시작하세요",
			SetupSubtitle:    "오늘 연습할 모국어와 목표 언어를 고르고, 몇 세트를 연습할지 선택해 주세요.",
			NativeLabel:      "모국어",
			TargetLabel:      "목표 언어",
			SetsQuestion:     "오늘은 몇 세트를 연습할까요?",
			SetInfo:          "1세트 ≈ 질문 1개 + 답변 + 외국어 문장 연습",
			StartPractice:    "연습 시작하기",
			QuestionTitle:    "질문",
			AnswerPrompt:     "모국어로 편하게 대답해보세요",
			InputPlaceholder: "여기에 모국어로 한두 문장을 적거나, 말하기 버튼을 눌러 보세요.",
			ForeignLabel:     "외국어 문장",
			ListenButton:     "소리로 듣기",
			PronLabel:        "한국어식 발음",
			DoneMessage:      "오늘 연습이 끝났습니다. 수고하셨어요!",
			BackToSetup:      "언어/세트 다시 선택",
			NextSet:          "다음 세트로",
		},
	},
	English: {
		info: Info{Code: English, Label: "English", TTSLocale: "en-US", PromptName: "English (Latin alphabet)"},
		questions: []string{
			"How did you start your day today?",
			"What did you do last evening?",
			"What do you usually do on holidays?",
		},
		texts: UITexts{
			SetupTitle:       "Speak a foreign language, starting from your native one",
			SetupSubtitle:    "Choose your native and target language, and how many sets you want to practice today.",
			NativeLabel:      "Native language",
			TargetLabel:      "Target language",
			SetsQuestion:     "How many sets do you want to practice today?",
			SetInfo:          "1 set ≈ 1 question + answer + foreign sentence practice",
			StartPractice:    "Start practice",
			QuestionTitle:    "Question",
			AnswerPrompt:     "Answer comfortably in your native language",
			InputPlaceholder: "Say a sentence in your native language, or type one here.",
			ForeignLabel:     "Foreign sentence",
			ListenButton:     "Listen",
			PronLabel:        "Native-style pronunciation",
			DoneMessage:      "You've finished today's practice. Well done!",
			BackToSetup:      "Change languages / sets",
			NextSet:          "Next set",
		},
	},
	French: {
		info: Info{Code: French, Label: "Français", TTSLocale: "fr-FR", PromptName: "French (Latin alphabet)"},
		questions: []string{
			"Comment as-tu commencé ta journée aujourd'hui ?",
			"Qu'as-tu fait hier soir ?",
			"Que fais-tu d'habitude pendant les jours fériés ?",
		},
		texts: UITexts{
			SetupTitle:       "Parler une langue étrangère, en partant de ta langue maternelle",
			SetupSubtitle:    "Choisis ta langue maternelle, la langue cible et le nombre de séries à pratiquer aujourd'hui.",
			NativeLabel:      "Langue maternelle",
			TargetLabel:      "Langue cible",
			SetsQuestion:     "Combien de séries veux-tu pratiquer aujourd'hui ?",
			SetInfo:          "1 série ≈ 1 question + réponse + phrase en langue étrangère à pratiquer",
			StartPractice:    "Commencer la pratique",
			QuestionTitle:    "Question",
			AnswerPrompt:     "Répondez librement dans votre langue maternelle",
			InputPlaceholder: "Dis une phrase dans ta langue maternelle, ou écris-en une ici.",
			ForeignLabel:     "Phrase en langue étrangère",
			ListenButton:     "Écouter",
			PronLabel:        "Prononciation adaptée",
			DoneMessage:      "Tu as terminé ta pratique pour aujourd'hui. Bravo !",
			BackToSetup:      "Changer les langues / séries",
			NextSet:          "Série suivante",
		},
	},
	Spanish: {
		info: Info{Code: Spanish, Label: "Español", TTSLocale: "es-ES", PromptName: "Spanish (Latin alphabet)"},
		questions: []string{
			"¿Cómo empezaste tu día hoy?",
			"¿Qué hiciste anoche?",
			"¿Qué sueles hacer durante los días festivos?",
		},
		texts: UITexts{
			SetupTitle:       "Habla un idioma extranjero, empezando por tu lengua materna",
			SetupSubtitle:    "Elige tu lengua materna y el idioma meta, y cuántas series quieres practicar hoy.",
			NativeLabel:      "Lengua materna",
			TargetLabel:      "Idioma meta",
			SetsQuestion:     "¿Cuántas series quieres practicar hoy?",
			SetInfo:          "1 serie ≈ 1 pregunta + respuesta + práctica de la frase en idioma extranjero",
			StartPractice:    "Empezar la práctica",
			QuestionTitle:    "Pregunta",
			AnswerPrompt:     "Responde cómodamente en tu lengua materna",
			InputPlaceholder: "Di una frase en tu lengua materna o escríbela aquí.",
			ForeignLabel:     "Frase en idioma extranjero",
			ListenButton:     "Escuchar",
			PronLabel:        "Pronunciación adaptada",
			DoneMessage:      "Has terminado la práctica de hoy. ¡Buen trabajo!",
			BackToSetup:      "Cambiar lenguas / series",
			NextSet:          "Siguiente serie",
		},
	},
	Russian: {
		info: Info{Code: Russian, Label: "Русский", TTSLocale: "ru-RU", PromptName: "Russian (Cyrillic alphabet)"},
		questions: []string{
			"Как ты начал свой день сегодня?",
			"Что ты делал вчера вечером?",
			"Что ты обычно делаешь в выходные или праздники?",
		},
		texts: UITexts{
			SetupTitle:       "Говори на иностранном языке, начиная с родного",
			SetupSubtitle:    "Выбери родной и целевой язык и количество сетов для сегодняшней практики.",
			NativeLabel:      "Родной язык",
			TargetLabel:      "Целевой язык",
			SetsQuestion:     "Сколько сетов ты хочешь потренировать сегодня?",
			SetInfo:          "1 сет ≈ 1 вопрос + ответ + тренировка фразы на иностранном языке",
			StartPractice:    "Начать тренировку",
			QuestionTitle:    "Вопрос",
			AnswerPrompt:     "Отвечайте свободно на своём родном языке",
			InputPlaceholder: "Скажи фразу на своём родном языке или напиши её здесь.",
			ForeignLabel:     "Фраза на иностранном языке",
			ListenButton:     "Прослушать",
			PronLabel:        "Произношение на родном",
			DoneMessage:      "Ты завершил тренировку на сегодня. Отличная работа!",
			BackToSetup:      "Изменить языки / количество сетов",
			NextSet:          "Следующий сет",
		},
	},
}

// order keeps listings deterministic.
var order = []Code{Korean, English, French, Spanish, Russian}

// fallback answers every lookup for a code we do not know.
const fallback = English

// Supported reports whether code is a known language.
func Supported(code Code) bool {
	_, ok := catalog[code]
	return ok
}

// All returns the supported languages in display order.
func All() []Info {
	infos := make([]Info, 0, len(order))
	for _, c := range order {
		infos = append(infos, catalog[c].info)
	}
	return infos
}

// Lookup returns the Info for code, falling back to English for unknown codes.
func Lookup(code Code) Info {
	if e, ok := catalog[code]; ok {
		return e.info
	}
	return catalog[fallback].info
}

// TTSLocale returns the BCP-47 locale tag for code.
func TTSLocale(code Code) string {
	return Lookup(code).TTSLocale
}

// Texts returns the UI copy bundle for code, falling back to English.
func Texts(code Code) UITexts {
	if e, ok := catalog[code]; ok {
		return e.texts
	}
	return catalog[fallback].texts
}

// Questions returns the fixed opener questions for code, falling back to
// English. All banks are parallel translations, so indexes line up across
// languages.
func Questions(code Code) []string {
	e, ok := catalog[code]
	if !ok {
		e = catalog[fallback]
	}
	out := make([]string, len(e.questions))
	copy(out, e.questions)
	return out
}

// FirstOther returns the first supported language different from code. Used
// to keep native and target languages distinct when the native choice
// changes.
func FirstOther(code Code) Code {
	for _, c := range order {
		if c != code {
			return c
		}
	}
	return fallback
}
