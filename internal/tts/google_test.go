package tts

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGoogleSynthesize(t *testing.T) {
	var gotReq googleSynthesizeReq
	var gotKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/text:synthesize") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotKey = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(googleSynthesizeResp{
			AudioContent: base64.StdEncoding.EncodeToString([]byte("mp3-bytes")),
		})
	}))
	defer srv.Close()

	g := NewGoogleTTS(GoogleTTSConfig{APIKey: "test-key", BaseURL: srv.URL})
	result, err := g.Synthesize(context.Background(), SynthesisRequest{Text: "안녕하세요", Locale: "ko-KR"})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	if string(result.Audio) != "mp3-bytes" {
		t.Errorf("audio = %q", result.Audio)
	}
	if result.ContentType != "audio/mpeg" {
		t.Errorf("content type = %q", result.ContentType)
	}
	if gotKey != "test-key" {
		t.Errorf("api key = %q", gotKey)
	}
	if gotReq.Input.Text != "안녕하세요" || gotReq.Voice.LanguageCode != "ko-KR" {
		t.Errorf("request = %+v", gotReq)
	}
	if gotReq.Voice.SSMLGender != "NEUTRAL" || gotReq.AudioConfig.AudioEncoding != "MP3" {
		t.Errorf("voice/audio config = %+v", gotReq)
	}
}

func TestGoogleSynthesizeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"API key not valid"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	g := NewGoogleTTS(GoogleTTSConfig{APIKey: "bad", BaseURL: srv.URL})
	if _, err := g.Synthesize(context.Background(), SynthesisRequest{Text: "hi", Locale: "en-US"}); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestGoogleSynthesizeEmptyAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(googleSynthesizeResp{})
	}))
	defer srv.Close()

	g := NewGoogleTTS(GoogleTTSConfig{APIKey: "k", BaseURL: srv.URL})
	if _, err := g.Synthesize(context.Background(), SynthesisRequest{Text: "hi", Locale: "en-US"}); err == nil {
		t.Fatal("expected error for empty audio content")
	}
}

func TestCacheKeyDistinguishesLocale(t *testing.T) {
	a := CacheKey("hello", "en-US")
	b := CacheKey("hello", "fr-FR")
	if a == b {
		t.Error("same key for different locales")
	}
	if a != CacheKey("hello", "en-US") {
		t.Error("cache key not deterministic")
	}
	if !strings.HasPrefix(a, "tts:") {
		t.Errorf("key %q missing prefix", a)
	}
}
