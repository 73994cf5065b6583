package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lingoloop/lingoloop/internal/llm"
)

type fakeProvider struct {
	name   string
	models []string
}

func (p *fakeProvider) ChatCompletion(context.Context, llm.ChatRequest) (*llm.ChatResponse, error) {
	return &llm.ChatResponse{}, nil
}
func (p *fakeProvider) Name() string     { return p.name }
func (p *fakeProvider) Models() []string { return p.models }

type fakeModelGateway struct {
	providers map[string]llm.Provider
}

func (g *fakeModelGateway) Chat(context.Context, llm.ChatRequest) (*llm.ChatResponse, error) {
	return &llm.ChatResponse{}, nil
}

func (g *fakeModelGateway) Provider(name string) (llm.Provider, error) {
	p, ok := g.providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %q not configured", name)
	}
	return p, nil
}

func (g *fakeModelGateway) ListModels() []llm.ModelInfo {
	var models []llm.ModelInfo
	for _, p := range g.providers {
		for _, m := range p.Models() {
			models = append(models, llm.ModelInfo{Provider: p.Name(), Model: m})
		}
	}
	return models
}

func listModels(t *testing.T, gw llm.Gateway, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	NewModelsHandler(gw).List(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestListModelsAllProviders(t *testing.T) {
	gw := &fakeModelGateway{providers: map[string]llm.Provider{
		"openai": &fakeProvider{name: "openai", models: []string{"gpt-4o", "gpt-4o-mini"}},
		"ollama": &fakeProvider{name: "ollama", models: []string{"llama3"}},
	}}

	rec := listModels(t, gw, "/models")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Models []llm.ModelInfo `json:"models"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Models) != 3 {
		t.Errorf("got %d models, want 3", len(body.Models))
	}
}

func TestListModelsFilterByProvider(t *testing.T) {
	gw := &fakeModelGateway{providers: map[string]llm.Provider{
		"openai": &fakeProvider{name: "openai", models: []string{"gpt-4o", "gpt-4o-mini"}},
		"ollama": &fakeProvider{name: "ollama", models: []string{"llama3"}},
	}}

	rec := listModels(t, gw, "/models?provider=ollama")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Models []llm.ModelInfo `json:"models"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Models) != 1 || body.Models[0].Provider != "ollama" {
		t.Errorf("models = %+v, want only ollama's", body.Models)
	}
}

func TestListModelsUnknownProvider(t *testing.T) {
	gw := &fakeModelGateway{providers: map[string]llm.Provider{}}

	rec := listModels(t, gw, "/models?provider=nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if kind := decodeError(t, rec); kind != "not_found" {
		t.Errorf("kind = %q, want not_found", kind)
	}
}
