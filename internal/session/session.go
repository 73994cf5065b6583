package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lingoloop/lingoloop/internal/language"
	"github.com/lingoloop/lingoloop/internal/turn"
)

// State is the practice session's position in the setup/practice loop.
type State string

const (
	StateChoosingNative State = "choosing-native"
	StateConfiguring    State = "configuring"
	StatePracticing     State = "practicing"
)

var (
	ErrInvalidTransition   = errors.New("action not allowed in current session state")
	ErrTurnInFlight        = errors.New("a turn is already in flight for this session")
	ErrUnsupportedLanguage = errors.New("unsupported language code")
	ErrInvalidSets         = errors.New("total sets must be 2, 4 or 6")
)

// SetChoices are the selectable session lengths.
var SetChoices = []int{2, 4, 6}

// Session is one user's practice session. Native and target language are
// never equal; CurrentSetIndex never exceeds TotalSets.
type Session struct {
	ID             string          `json:"id"`
	State          State           `json:"state"`
	NativeLanguage language.Code   `json:"native_language"`
	TargetLanguage language.Code   `json:"target_language"`
	AnswerMode     turn.Mode       `json:"answer_mode"`
	Difficulty     turn.Difficulty `json:"difficulty"`
	TotalSets      int             `json:"total_sets"`

	CurrentSetIndex       int    `json:"current_set_index"`
	CurrentQuestionTarget string `json:"current_question_target,omitempty"`
	CurrentQuestionNative string `json:"current_question_native,omitempty"`

	LastTurnResult *turn.Result `json:"last_turn_result,omitempty"`

	// Advisory guard: a second turn must not be dispatched while one is in
	// flight. Not a distributed lock.
	TurnInFlight bool `json:"turn_in_flight"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a session awaiting the native-language choice.
func New() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:             uuid.NewString(),
		State:          StateChoosingNative,
		NativeLanguage: language.Korean,
		TargetLanguage: language.English,
		AnswerMode:     turn.ModeNative,
		Difficulty:     turn.DifficultyBeginner,
		TotalSets:      SetChoices[0],
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (s *Session) touch() { s.UpdatedAt = time.Now().UTC() }

// SetNativeLanguage sets the native language (confirming the
// choosing-native step when pending) and keeps the language-pair invariant:
// if the target now collides with the native choice, the target is
// reassigned to another supported code, never left equal.
func (s *Session) SetNativeLanguage(code language.Code) error {
	if !language.Supported(code) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
	if s.State == StatePracticing {
		return fmt.Errorf("%w: change languages from setup", ErrInvalidTransition)
	}
	s.NativeLanguage = code
	if s.TargetLanguage == code {
		s.TargetLanguage = language.FirstOther(code)
	}
	if s.State == StateChoosingNative {
		s.State = StateConfiguring
	}
	s.touch()
	return nil
}

// ConfigUpdate carries the optional setup-screen fields. Nil means keep.
type ConfigUpdate struct {
	TargetLanguage *language.Code   `json:"targetLanguage,omitempty"`
	TotalSets      *int             `json:"totalSets,omitempty"`
	Difficulty     *turn.Difficulty `json:"difficulty,omitempty"`
	AnswerMode     *turn.Mode       `json:"answerMode,omitempty"`
}

// Configure applies setup-screen changes. Only valid while configuring.
func (s *Session) Configure(u ConfigUpdate) error {
	if s.State != StateConfiguring {
		return fmt.Errorf("%w: session is %s", ErrInvalidTransition, s.State)
	}
	if u.TargetLanguage != nil {
		code := *u.TargetLanguage
		if !language.Supported(code) {
			return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
		}
		if code == s.NativeLanguage {
			return fmt.Errorf("target language must differ from native language %q", s.NativeLanguage)
		}
		s.TargetLanguage = code
	}
	if u.TotalSets != nil {
		valid := false
		for _, n := range SetChoices {
			if *u.TotalSets == n {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("%w: got %d", ErrInvalidSets, *u.TotalSets)
		}
		s.TotalSets = *u.TotalSets
	}
	if u.Difficulty != nil {
		if !turn.ValidDifficulty(*u.Difficulty) {
			return fmt.Errorf("invalid difficulty %q", *u.Difficulty)
		}
		s.Difficulty = *u.Difficulty
	}
	if u.AnswerMode != nil {
		if !turn.ValidMode(*u.AnswerMode) {
			return fmt.Errorf("invalid answer mode %q", *u.AnswerMode)
		}
		s.AnswerMode = *u.AnswerMode
	}
	s.touch()
	return nil
}

// Start moves configuring → practicing: set index zeroed, the first fixed
// opener installed in both languages, any previous result discarded.
func (s *Session) Start() error {
	if s.State != StateConfiguring {
		return fmt.Errorf("%w: session is %s", ErrInvalidTransition, s.State)
	}
	s.State = StatePracticing
	s.CurrentSetIndex = 0
	s.CurrentQuestionTarget = language.Questions(s.TargetLanguage)[0]
	s.CurrentQuestionNative = language.Questions(s.NativeLanguage)[0]
	s.LastTurnResult = nil
	s.TurnInFlight = false
	s.touch()
	return nil
}

// BeginTurn marks a turn as in flight. Rejected while another turn is
// pending or outside practice.
func (s *Session) BeginTurn() error {
	if s.State != StatePracticing {
		return fmt.Errorf("%w: session is %s", ErrInvalidTransition, s.State)
	}
	if s.TurnInFlight {
		return ErrTurnInFlight
	}
	s.TurnInFlight = true
	s.touch()
	return nil
}

// EndTurn clears the in-flight flag after the exchange resolved either way.
func (s *Session) EndTurn() {
	s.TurnInFlight = false
	s.touch()
}

// ApplyTurn applies a validated result: the follow-up question becomes
// current, the set counter advances, and reaching TotalSets completes the
// session back to the setup screen. Returns whether the session completed.
func (s *Session) ApplyTurn(res *turn.Result) (completed bool, err error) {
	if s.State != StatePracticing {
		return false, fmt.Errorf("%w: session is %s", ErrInvalidTransition, s.State)
	}
	s.LastTurnResult = res
	s.CurrentSetIndex++
	if s.CurrentSetIndex >= s.TotalSets {
		s.completePractice()
		return true, nil
	}
	s.CurrentQuestionTarget = res.NextQuestionTarget
	if res.NextQuestionNative != nil {
		s.CurrentQuestionNative = *res.NextQuestionNative
	} else {
		s.CurrentQuestionNative = ""
	}
	s.touch()
	return false, nil
}

// Exit abandons practice and returns to the setup screen, discarding any
// in-progress turn state.
func (s *Session) Exit() error {
	if s.State != StatePracticing {
		return fmt.Errorf("%w: session is %s", ErrInvalidTransition, s.State)
	}
	s.completePractice()
	s.LastTurnResult = nil
	return nil
}

func (s *Session) completePractice() {
	s.State = StateConfiguring
	s.CurrentQuestionTarget = ""
	s.CurrentQuestionNative = ""
	s.TurnInFlight = false
	s.touch()
}

// TurnRequest builds the feedback-service request for the given answer.
func (s *Session) TurnRequest(userMessage string) turn.Request {
	return turn.Request{
		Mode:           s.AnswerMode,
		NativeLanguage: s.NativeLanguage,
		TargetLanguage: s.TargetLanguage,
		UserMessage:    userMessage,
		Difficulty:     s.Difficulty,
	}
}
