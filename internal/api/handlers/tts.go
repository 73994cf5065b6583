package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/lingoloop/lingoloop/internal/cache"
	"github.com/lingoloop/lingoloop/internal/tts"
)

// TTSHandler turns text into base64 MP3 audio, serving from the audio cache
// when the prefetch worker already synthesized the sentence.
type TTSHandler struct {
	provider tts.Provider
	cache    *cache.Cache // nil disables caching
	cacheTTL time.Duration
}

func NewTTSHandler(provider tts.Provider, c *cache.Cache, cacheTTL time.Duration) *TTSHandler {
	return &TTSHandler{provider: provider, cache: c, cacheTTL: cacheTTL}
}

// Speak handles POST /tts: {text, ttsLang} -> {audioContent}.
func (h *TTSHandler) Speak(w http.ResponseWriter, r *http.Request) {
	var req tts.SynthesisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" || req.Locale == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "text and ttsLang required")
		return
	}

	// A miss (or any cache trouble) falls through to synthesis.
	key := tts.CacheKey(req.Text, req.Locale)
	if h.cache != nil {
		var cached string
		if err := h.cache.Get(r.Context(), key, &cached); err == nil && cached != "" {
			writeJSON(w, http.StatusOK, map[string]string{"audioContent": cached})
			return
		}
	}
	h.synthesize(w, r, req, key)
}

func (h *TTSHandler) synthesize(w http.ResponseWriter, r *http.Request, req tts.SynthesisRequest, key string) {
	result, err := h.provider.Synthesize(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadGateway, "service_unavailable", err.Error())
		return
	}

	encoded := base64.StdEncoding.EncodeToString(result.Audio)
	if h.cache != nil {
		_ = h.cache.Set(r.Context(), key, encoded, h.cacheTTL)
	}
	writeJSON(w, http.StatusOK, map[string]string{"audioContent": encoded})
}
