package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/lingoloop/lingoloop/internal/api/handlers"
	"github.com/lingoloop/lingoloop/internal/api/middleware"
	"github.com/lingoloop/lingoloop/internal/cache"
	"github.com/lingoloop/lingoloop/internal/config"
	"github.com/lingoloop/lingoloop/internal/feedback"
	"github.com/lingoloop/lingoloop/internal/llm"
	"github.com/lingoloop/lingoloop/internal/queue"
	"github.com/lingoloop/lingoloop/internal/session"
	"github.com/lingoloop/lingoloop/internal/tts"
)

type Router struct {
	mux   *chi.Mux
	redis *redis.Client
	cfg   *config.Config
	store session.Store
	llmGW llm.Gateway
}

// NewRouter wires the service graph. rdb may be nil; the session store then
// falls back to memory and speech prefetch/caching is disabled.
func NewRouter(rdb *redis.Client, cfg *config.Config) *Router {
	var store session.Store
	if cfg.Session.Store == "redis" && rdb != nil {
		store = session.NewRedisStore(cache.NewCache(rdb), cfg.Session.TTL)
	} else {
		store = session.NewMemoryStore(cfg.Session.TTL)
	}

	return &Router{
		mux:   chi.NewRouter(),
		redis: rdb,
		cfg:   cfg,
		store: store,
		llmGW: llm.NewGateway(cfg.LLM),
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(rt.cfg.CORS.AllowedOrigins))

	rl := middleware.NewRateLimiter(rt.cfg.Server.RateLimitRPS, rt.cfg.Server.RateLimitBurst)
	r.Use(rl.Limit)

	// Health endpoints
	health := handlers.NewHealthHandler(rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Services
	feedbackSvc := feedback.NewService(rt.llmGW, rt.cfg.LLM)
	ttsProvider := newTTSProvider(rt.cfg.TTS)

	var audioCache *cache.Cache
	var queueClient *queue.Client
	if rt.redis != nil {
		audioCache = cache.NewCache(rt.redis)
		queueClient = queue.NewClient(rt.cfg.Redis)
	}

	sessionH := handlers.NewSessionHandler(rt.store, feedbackSvc, queueClient)
	transcriptH := handlers.NewTranscriptHandler(rt.store)
	ttsH := handlers.NewTTSHandler(ttsProvider, audioCache, rt.cfg.TTS.CacheTTL)
	generateH := handlers.NewGenerateHandler(feedbackSvc)
	languageH := handlers.NewLanguageHandler()
	modelsH := handlers.NewModelsHandler(rt.llmGW)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionH.Create)
			r.Get("/{id}", sessionH.Get)
			r.Delete("/{id}", sessionH.Delete)
			r.Post("/{id}/native", sessionH.SetNative)
			r.Patch("/{id}/config", sessionH.Configure)
			r.Post("/{id}/start", sessionH.Start)
			r.Post("/{id}/turn", sessionH.SubmitTurn)
			r.Post("/{id}/exit", sessionH.Exit)
			r.Get("/{id}/transcript", transcriptH.Stream)
		})

		r.Post("/tts", ttsH.Speak)
		r.Post("/generate", generateH.Generate)
		r.Get("/models", modelsH.List)

		r.Route("/languages", func(r chi.Router) {
			r.Get("/", languageH.List)
			r.Get("/{code}/uitext", languageH.UITexts)
		})
	})

	return r
}

func newTTSProvider(cfg config.TTSConfig) tts.Provider {
	if cfg.Backend == "openai" {
		return tts.NewOpenAITTS(tts.OpenAITTSConfig{
			APIKey:  cfg.OpenAIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
		})
	}
	return tts.NewGoogleTTS(tts.GoogleTTSConfig{
		APIKey:  cfg.GoogleAPIKey,
		BaseURL: cfg.GoogleBaseURL,
	})
}
