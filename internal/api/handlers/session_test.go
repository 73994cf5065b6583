package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lingoloop/lingoloop/internal/config"
	"github.com/lingoloop/lingoloop/internal/feedback"
	"github.com/lingoloop/lingoloop/internal/llm"
	"github.com/lingoloop/lingoloop/internal/session"
)

// fakeGateway serves canned completions for handler tests.
type fakeGateway struct {
	content string
	err     error
	calls   int
}

func (f *fakeGateway) Chat(context.Context, llm.ChatRequest) (*llm.ChatResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &llm.ChatResponse{Content: f.content}, nil
}

func (f *fakeGateway) Provider(string) (llm.Provider, error) { return nil, errors.New("no providers") }
func (f *fakeGateway) ListModels() []llm.ModelInfo           { return nil }

const turnBody = `{
	"mode": "native",
	"translated_sentence": "I go to school",
	"pronunciation_praise": "아주 좋아요!",
	"pron_native": "아이 고 투 스쿨",
	"next_question_target": "What do you study?",
	"next_question_native": "무엇을 공부하나요?"
}`

type testEnv struct {
	router *chi.Mux
	store  *session.MemoryStore
	gw     *fakeGateway
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := session.NewMemoryStore(time.Hour)
	t.Cleanup(store.Close)

	gw := &fakeGateway{content: turnBody}
	fb := feedback.NewService(gw, config.LLMConfig{DefaultModel: "gpt-4o-mini", Temperature: 0.7, MaxTokens: 500})
	h := NewSessionHandler(store, fb, nil)

	r := chi.NewRouter()
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Delete("/", h.Delete)
			r.Post("/native", h.SetNative)
			r.Patch("/config", h.Configure)
			r.Post("/start", h.Start)
			r.Post("/turn", h.SubmitTurn)
			r.Post("/exit", h.Exit)
		})
	})
	return &testEnv{router: r, store: store, gw: gw}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body == "" {
		rd = bytes.NewReader(nil)
	} else {
		rd = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) createSession(t *testing.T) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/sessions", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: status %d, body %s", rec.Code, rec.Body)
	}
	var s session.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return s.ID
}

func (e *testEnv) startedSession(t *testing.T) string {
	t.Helper()
	id := e.createSession(t)
	if rec := e.do(t, http.MethodPost, "/sessions/"+id+"/native", `{"nativeLanguage":"ko"}`); rec.Code != http.StatusOK {
		t.Fatalf("set native: status %d, body %s", rec.Code, rec.Body)
	}
	if rec := e.do(t, http.MethodPost, "/sessions/"+id+"/start", ""); rec.Code != http.StatusOK {
		t.Fatalf("start: status %d, body %s", rec.Code, rec.Body)
	}
	return id
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (kind string) {
	t.Helper()
	var body struct {
		Error string `json:"error"`
		Kind  string `json:"kind"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body, err)
	}
	return body.Kind
}

func TestSessionLifecycle(t *testing.T) {
	env := newTestEnv(t)
	id := env.createSession(t)

	rec := env.do(t, http.MethodGet, "/sessions/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status %d", rec.Code)
	}
	var s session.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.State != session.StateChoosingNative {
		t.Errorf("state = %q, want choosing-native", s.State)
	}

	rec = env.do(t, http.MethodPost, "/sessions/"+id+"/native", `{"nativeLanguage":"ko"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("set native: status %d, body %s", rec.Code, rec.Body)
	}

	rec = env.do(t, http.MethodPatch, "/sessions/"+id+"/config", `{"targetLanguage":"en","totalSets":4,"difficulty":"intermediate"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("configure: status %d, body %s", rec.Code, rec.Body)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.TotalSets != 4 {
		t.Errorf("total sets = %d, want 4", s.TotalSets)
	}

	rec = env.do(t, http.MethodPost, "/sessions/"+id+"/start", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("start: status %d, body %s", rec.Code, rec.Body)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.State != session.StatePracticing || s.CurrentQuestionTarget == "" {
		t.Errorf("unexpected session after start: state %q, question %q", s.State, s.CurrentQuestionTarget)
	}

	rec = env.do(t, http.MethodPost, "/sessions/"+id+"/exit", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("exit: status %d", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/sessions/"+id, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", rec.Code)
	}
	rec = env.do(t, http.MethodGet, "/sessions/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: status %d, want 404", rec.Code)
	}
}

func TestSessionNotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/sessions/unknown", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if kind := decodeError(t, rec); kind != "not_found" {
		t.Errorf("kind = %q, want not_found", kind)
	}
}

func TestSubmitTurnAdvancesSession(t *testing.T) {
	env := newTestEnv(t)
	id := env.startedSession(t)

	rec := env.do(t, http.MethodPost, "/sessions/"+id+"/turn", `{"message":"나는 학교에 가요"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("turn: status %d, body %s", rec.Code, rec.Body)
	}

	var body struct {
		Session   session.Session `json:"session"`
		Completed bool            `json:"completed"`
		Result    struct {
			NextQuestionTarget string `json:"next_question_target"`
		} `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Completed {
		t.Error("two-set session completed after one turn")
	}
	if body.Session.CurrentSetIndex != 1 {
		t.Errorf("set index = %d, want 1", body.Session.CurrentSetIndex)
	}
	if body.Session.CurrentQuestionTarget != "What do you study?" {
		t.Errorf("current question = %q", body.Session.CurrentQuestionTarget)
	}
	if body.Session.TurnInFlight {
		t.Error("in-flight flag still set after the turn resolved")
	}

	// Second turn completes the default two-set session.
	rec = env.do(t, http.MethodPost, "/sessions/"+id+"/turn", `{"message":"도서관에서 공부해요"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("turn: status %d, body %s", rec.Code, rec.Body)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Completed {
		t.Error("session should complete after two turns")
	}
	if body.Session.State != session.StateConfiguring {
		t.Errorf("state = %q, want configuring", body.Session.State)
	}
}

func TestSubmitTurnEmptyMessage(t *testing.T) {
	env := newTestEnv(t)
	id := env.startedSession(t)

	rec := env.do(t, http.MethodPost, "/sessions/"+id+"/turn", `{"message":"   "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if kind := decodeError(t, rec); kind != "empty_input" {
		t.Errorf("kind = %q, want empty_input", kind)
	}
	if env.gw.calls != 0 {
		t.Errorf("gateway called %d times for empty input", env.gw.calls)
	}
}

func TestSubmitTurnOutsidePractice(t *testing.T) {
	env := newTestEnv(t)
	id := env.createSession(t)

	rec := env.do(t, http.MethodPost, "/sessions/"+id+"/turn", `{"message":"hello"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if kind := decodeError(t, rec); kind != "invalid_state" {
		t.Errorf("kind = %q, want invalid_state", kind)
	}
}

func TestSubmitTurnServiceFailureKeepsSession(t *testing.T) {
	env := newTestEnv(t)
	id := env.startedSession(t)
	env.gw.err = fmt.Errorf("upstream timeout")

	rec := env.do(t, http.MethodPost, "/sessions/"+id+"/turn", `{"message":"나는 학교에 가요"}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if kind := decodeError(t, rec); kind != "service_unavailable" {
		t.Errorf("kind = %q, want service_unavailable", kind)
	}

	s, err := env.store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if s.CurrentSetIndex != 0 {
		t.Errorf("set index = %d after failed turn, want 0", s.CurrentSetIndex)
	}
	if s.TurnInFlight {
		t.Error("in-flight flag stuck after failed turn")
	}

	// The session stays usable: the next attempt succeeds.
	env.gw.err = nil
	rec = env.do(t, http.MethodPost, "/sessions/"+id+"/turn", `{"message":"나는 학교에 가요"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("retry: status %d, body %s", rec.Code, rec.Body)
	}
}

func TestSubmitTurnWhileInFlight(t *testing.T) {
	env := newTestEnv(t)
	id := env.startedSession(t)

	// Simulate a concurrent request holding the turn.
	s, err := env.store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if err := s.BeginTurn(); err != nil {
		t.Fatalf("BeginTurn: %v", err)
	}
	if err := env.store.Put(context.Background(), s); err != nil {
		t.Fatalf("put session: %v", err)
	}

	rec := env.do(t, http.MethodPost, "/sessions/"+id+"/turn", `{"message":"hello"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if kind := decodeError(t, rec); kind != "turn_in_flight" {
		t.Errorf("kind = %q, want turn_in_flight", kind)
	}
	if env.gw.calls != 0 {
		t.Errorf("gateway called %d times while a turn was in flight, want 0", env.gw.calls)
	}
}

func TestSetNativeReassignsTarget(t *testing.T) {
	env := newTestEnv(t)
	id := env.createSession(t)

	rec := env.do(t, http.MethodPost, "/sessions/"+id+"/native", `{"nativeLanguage":"en"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("set native: status %d, body %s", rec.Code, rec.Body)
	}
	var s session.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.TargetLanguage == s.NativeLanguage {
		t.Error("target language equals native after collision")
	}
}

func TestConfigureRejectsBadSets(t *testing.T) {
	env := newTestEnv(t)
	id := env.createSession(t)
	if rec := env.do(t, http.MethodPost, "/sessions/"+id+"/native", `{"nativeLanguage":"ko"}`); rec.Code != http.StatusOK {
		t.Fatalf("set native: status %d", rec.Code)
	}

	rec := env.do(t, http.MethodPatch, "/sessions/"+id+"/config", `{"totalSets":5}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "2, 4 or 6") {
		t.Errorf("error body %q should name the valid choices", rec.Body)
	}
}
