package main

import (
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/lingoloop/lingoloop/internal/cache"
	"github.com/lingoloop/lingoloop/internal/config"
	"github.com/lingoloop/lingoloop/internal/queue"
	"github.com/lingoloop/lingoloop/internal/queue/workers"
	"github.com/lingoloop/lingoloop/internal/tts"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	var provider tts.Provider
	if cfg.TTS.Backend == "openai" {
		provider = tts.NewOpenAITTS(tts.OpenAITTSConfig{
			APIKey:  cfg.TTS.OpenAIKey,
			BaseURL: cfg.TTS.OpenAIBaseURL,
			Model:   cfg.TTS.OpenAIModel,
		})
	} else {
		provider = tts.NewGoogleTTS(tts.GoogleTTSConfig{
			APIKey:  cfg.TTS.GoogleAPIKey,
			BaseURL: cfg.TTS.GoogleBaseURL,
		})
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	speechWorker := workers.NewSpeechWorker(provider, cache.NewCache(rdb), cfg.TTS.CacheTTL)

	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TypeSpeechPrefetch, speechWorker.ProcessTask)

	slog.Info("starting worker", "concurrency", 5)
	if err := srv.Run(mux); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
