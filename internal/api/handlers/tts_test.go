package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lingoloop/lingoloop/internal/tts"
)

type fakeTTS struct {
	audio []byte
	err   error
	last  tts.SynthesisRequest
}

func (f *fakeTTS) Synthesize(_ context.Context, req tts.SynthesisRequest) (*tts.SynthesisResult, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &tts.SynthesisResult{Audio: f.audio, ContentType: "audio/mpeg"}, nil
}

func (f *fakeTTS) Name() string { return "fake" }

func speak(t *testing.T, h *TTSHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/tts", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Speak(rec, req)
	return rec
}

func TestSpeakReturnsBase64Audio(t *testing.T) {
	provider := &fakeTTS{audio: []byte("mp3-bytes")}
	h := NewTTSHandler(provider, nil, 0)

	rec := speak(t, h, `{"text":"Bonjour","ttsLang":"fr-FR"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var body struct {
		AudioContent string `json:"audioContent"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	decoded, err := base64.StdEncoding.DecodeString(body.AudioContent)
	if err != nil {
		t.Fatalf("audioContent not base64: %v", err)
	}
	if string(decoded) != "mp3-bytes" {
		t.Errorf("decoded audio = %q", decoded)
	}
	if provider.last.Locale != "fr-FR" {
		t.Errorf("locale passed to provider = %q", provider.last.Locale)
	}
}

func TestSpeakRequiresTextAndLocale(t *testing.T) {
	h := NewTTSHandler(&fakeTTS{audio: []byte("x")}, nil, 0)

	for _, body := range []string{
		`{"text":"  ","ttsLang":"en-US"}`,
		`{"text":"hello"}`,
	} {
		rec := speak(t, h, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestSpeakProviderFailure(t *testing.T) {
	h := NewTTSHandler(&fakeTTS{err: errors.New("quota exceeded")}, nil, 0)

	rec := speak(t, h, `{"text":"hello","ttsLang":"en-US"}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if kind := decodeError(t, rec); kind != "service_unavailable" {
		t.Errorf("kind = %q, want service_unavailable", kind)
	}
}
