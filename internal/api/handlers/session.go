package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lingoloop/lingoloop/internal/feedback"
	"github.com/lingoloop/lingoloop/internal/language"
	"github.com/lingoloop/lingoloop/internal/queue"
	"github.com/lingoloop/lingoloop/internal/session"
	"github.com/lingoloop/lingoloop/internal/turn"
)

// SessionHandler exposes the practice-session lifecycle over HTTP.
type SessionHandler struct {
	store    session.Store
	feedback *feedback.Service
	queue    *queue.Client // nil disables speech prefetch
}

func NewSessionHandler(store session.Store, fb *feedback.Service, q *queue.Client) *SessionHandler {
	return &SessionHandler{store: store, feedback: fb, queue: q}
}

// Create opens a new session awaiting the native-language choice.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	s := session.New()
	if err := h.store.Put(r.Context(), s); err != nil {
		writeError(w, http.StatusInternalServerError, "store_failure", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "store_failure", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetNative confirms or changes the native language. A collision with the
// current target language reassigns the target.
func (h *SessionHandler) SetNative(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NativeLanguage language.Code `json:"nativeLanguage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	h.mutate(w, r, func(s *session.Session) error {
		return s.SetNativeLanguage(req.NativeLanguage)
	})
}

// Configure applies setup-screen changes (target language, sets,
// difficulty, answer mode).
func (h *SessionHandler) Configure(w http.ResponseWriter, r *http.Request) {
	var req session.ConfigUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	h.mutate(w, r, func(s *session.Session) error {
		return s.Configure(req)
	})
}

// Start begins practice with the first fixed question.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(s *session.Session) error {
		return s.Start()
	})
}

// Exit abandons practice back to the setup screen.
func (h *SessionHandler) Exit(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(s *session.Session) error {
		return s.Exit()
	})
}

// SubmitTurn runs one answer through the feedback service and, on success,
// advances the session. Every failure path leaves the session where it was.
func (h *SessionHandler) SubmitTurn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "empty_input", "message required")
		return
	}

	s, ok := h.load(w, r)
	if !ok {
		return
	}

	if err := s.BeginTurn(); err != nil {
		h.writeSessionError(w, err)
		return
	}
	// Persist the in-flight flag so a double-tap hits the guard.
	if err := h.store.Put(r.Context(), s); err != nil {
		writeError(w, http.StatusInternalServerError, "store_failure", err.Error())
		return
	}

	result, err := h.feedback.SubmitTurn(r.Context(), s.TurnRequest(req.Message))

	s.EndTurn()
	if err != nil {
		if putErr := h.store.Put(r.Context(), s); putErr != nil {
			slog.Error("failed to clear in-flight flag", "session", s.ID, "error", putErr)
		}
		h.writeSessionError(w, err)
		return
	}

	completed, err := s.ApplyTurn(result)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	if err := h.store.Put(r.Context(), s); err != nil {
		writeError(w, http.StatusInternalServerError, "store_failure", err.Error())
		return
	}

	h.prefetchSpeech(s, result)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session":   s,
		"result":    result,
		"completed": completed,
	})
}

// prefetchSpeech queues TTS synthesis for the sentences the client is most
// likely to play next. Best effort only.
func (h *SessionHandler) prefetchSpeech(s *session.Session, result *turn.Result) {
	if h.queue == nil {
		return
	}
	locale := language.TTSLocale(s.TargetLanguage)
	for _, text := range []string{result.ForeignSentence(), result.NextQuestionTarget} {
		if text == "" {
			continue
		}
		if err := h.queue.EnqueueSpeechPrefetch(queue.SpeechPrefetchPayload{Text: text, Locale: locale}); err != nil {
			slog.Warn("speech prefetch enqueue failed", "error", err)
		}
	}
}

// mutate loads the session, applies fn, and persists the result.
func (h *SessionHandler) mutate(w http.ResponseWriter, r *http.Request, fn func(*session.Session) error) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := fn(s); err != nil {
		h.writeSessionError(w, err)
		return
	}
	if err := h.store.Put(r.Context(), s); err != nil {
		writeError(w, http.StatusInternalServerError, "store_failure", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *SessionHandler) load(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "id")
	s, err := h.store.Get(r.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", "session not found")
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store_failure", err.Error())
		return nil, false
	}
	return s, true
}

func (h *SessionHandler) writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, turn.ErrEmptyInput):
		writeError(w, http.StatusBadRequest, "empty_input", err.Error())
	case errors.Is(err, session.ErrTurnInFlight):
		writeError(w, http.StatusConflict, "turn_in_flight", err.Error())
	case errors.Is(err, session.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid_state", err.Error())
	case errors.Is(err, session.ErrUnsupportedLanguage),
		errors.Is(err, session.ErrInvalidSets):
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, turn.ErrServiceUnavailable):
		writeError(w, http.StatusBadGateway, "service_unavailable", err.Error())
	case errors.Is(err, turn.ErrInvalidResponse):
		writeError(w, http.StatusBadGateway, "invalid_response", err.Error())
	case errors.Is(err, turn.ErrIncompleteTurn):
		writeError(w, http.StatusBadGateway, "incomplete_turn", err.Error())
	default:
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
	}
}
