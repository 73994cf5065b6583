package workers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/lingoloop/lingoloop/internal/cache"
	"github.com/lingoloop/lingoloop/internal/queue"
	"github.com/lingoloop/lingoloop/internal/tts"
)

// SpeechWorker synthesizes audio ahead of playback requests. A failed
// prefetch only costs the client the synthesis latency on its own /tts
// call; it never touches session state.
type SpeechWorker struct {
	provider tts.Provider
	cache    *cache.Cache
	ttl      time.Duration
}

func NewSpeechWorker(provider tts.Provider, c *cache.Cache, ttl time.Duration) *SpeechWorker {
	return &SpeechWorker{provider: provider, cache: c, ttl: ttl}
}

func (w *SpeechWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.SpeechPrefetchPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	if payload.Text == "" || payload.Locale == "" {
		return nil
	}

	key := tts.CacheKey(payload.Text, payload.Locale)
	if ok, err := w.cache.Exists(ctx, key); err == nil && ok {
		return nil
	}

	result, err := w.provider.Synthesize(ctx, tts.SynthesisRequest{
		Text:   payload.Text,
		Locale: payload.Locale,
	})
	if err != nil {
		return fmt.Errorf("prefetch synthesize: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(result.Audio)
	if err := w.cache.Set(ctx, key, encoded, w.ttl); err != nil {
		return fmt.Errorf("cache audio: %w", err)
	}

	slog.Info("prefetched speech audio", "locale", payload.Locale, "bytes", len(result.Audio))
	return nil
}
