package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kaptinlin/jsonrepair"
	"github.com/sony/gobreaker"

	"github.com/lingoloop/lingoloop/internal/config"
	"github.com/lingoloop/lingoloop/internal/language"
	"github.com/lingoloop/lingoloop/internal/llm"
	"github.com/lingoloop/lingoloop/internal/turn"
)

// Service bridges practice sessions and the LLM-backed feedback service. It
// owns prompt construction, the circuit breaker around the provider
// gateway, and response validation; session mutation stays with the caller.
type Service struct {
	gateway     llm.Gateway
	model       string
	temperature float64
	maxTokens   int
	breaker     *gobreaker.CircuitBreaker
}

func NewService(gw llm.Gateway, cfg config.LLMConfig) *Service {
	return &Service{
		gateway:     gw,
		model:       cfg.DefaultModel,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "feedback-llm",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				slog.Warn("feedback breaker state change", "from", from.String(), "to", to.String())
			},
		}),
	}
}

// SubmitTurn performs one exchange with the feedback service. Any returned
// error means the turn failed and the caller must not advance the session.
func (s *Service) SubmitTurn(ctx context.Context, req turn.Request) (*turn.Result, error) {
	req.UserMessage = strings.TrimSpace(req.UserMessage)
	if err := turn.ValidateRequest(req); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal turn request: %w", err)
	}

	content, err := s.chat(ctx,
		buildTurnSystemPrompt(req),
		"Return ONLY JSON. Here is the user input:\n"+string(payload),
	)
	if err != nil {
		return nil, err
	}

	var res turn.Result
	if err := decodeJSON(content, &res); err != nil {
		slog.Error("feedback response not parseable", "error", err, "content", truncate(content, 200))
		return nil, fmt.Errorf("%w: %v", turn.ErrInvalidResponse, err)
	}

	if err := turn.ValidateResult(req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GenerateRequest is the one-shot sentence generation input.
type GenerateRequest struct {
	NativeText string        `json:"nativeText"`
	NativeLang language.Code `json:"nativeLang"`
	TargetLang language.Code `json:"targetLang"`
}

// GenerateResult is one target-language sentence plus its native-script
// pronunciation guide.
type GenerateResult struct {
	Sentence   string `json:"sentence"`
	PronNative string `json:"pron_native"`
}

// Generate asks for a single responding sentence in the target language.
// pron_native gets the same echo check as a full turn: a copy of the
// sentence is discarded rather than displayed.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	req.NativeText = strings.TrimSpace(req.NativeText)
	if req.NativeText == "" {
		return nil, turn.ErrEmptyInput
	}
	if req.NativeLang == req.TargetLang {
		return nil, fmt.Errorf("native and target language both %q", req.NativeLang)
	}

	user := fmt.Sprintf("Native language code: %s\nTarget language code: %s\n\nUser's original sentence in native language:\n%s",
		req.NativeLang, req.TargetLang, req.NativeText)

	content, err := s.chat(ctx, buildGenerateSystemPrompt(req.NativeLang, req.TargetLang), user)
	if err != nil {
		return nil, err
	}

	var res GenerateResult
	if err := decodeJSON(content, &res); err != nil {
		return nil, fmt.Errorf("%w: %v", turn.ErrInvalidResponse, err)
	}
	if strings.TrimSpace(res.Sentence) == "" {
		return nil, fmt.Errorf("%w: sentence missing", turn.ErrIncompleteTurn)
	}
	if turn.IsEchoed(res.PronNative, res.Sentence) {
		res.PronNative = ""
	}
	return &res, nil
}

// chat runs one JSON-mode completion through the circuit breaker. Transport
// and provider failures, plus an open breaker, all surface as
// ErrServiceUnavailable so callers treat them as one retryable condition.
func (s *Service) chat(ctx context.Context, system, user string) (string, error) {
	out, err := s.breaker.Execute(func() (interface{}, error) {
		return s.gateway.Chat(ctx, llm.ChatRequest{
			Model:       s.model,
			Temperature: s.temperature,
			MaxTokens:   s.maxTokens,
			JSONMode:    true,
			Messages: []llm.Message{
				{Role: "system", Content: system},
				{Role: "user", Content: user},
			},
		})
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: circuit open", turn.ErrServiceUnavailable)
		}
		return "", fmt.Errorf("%w: %v", turn.ErrServiceUnavailable, err)
	}
	resp := out.(*llm.ChatResponse)
	if strings.TrimSpace(resp.Content) == "" {
		return "", fmt.Errorf("%w: empty completion", turn.ErrInvalidResponse)
	}
	return resp.Content, nil
}

// decodeJSON unmarshals model output, attempting a repair pass when the
// body is malformed JSON (unquoted keys, trailing commas, stray prose).
func decodeJSON(content string, v any) error {
	err := json.Unmarshal([]byte(content), v)
	if err == nil {
		return nil
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		fixed, repairErr := jsonrepair.JSONRepair(content)
		if repairErr != nil {
			return err
		}
		return json.Unmarshal([]byte(fixed), v)
	}
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
