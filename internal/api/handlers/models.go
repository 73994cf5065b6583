package handlers

import (
	"net/http"

	"github.com/lingoloop/lingoloop/internal/llm"
)

// ModelsHandler lists the chat models the configured providers offer, so an
// operator can see what LLM_DEFAULT_MODEL and LLM_FALLBACK_PROVIDER may
// point at.
type ModelsHandler struct {
	gateway llm.Gateway
}

func NewModelsHandler(gw llm.Gateway) *ModelsHandler {
	return &ModelsHandler{gateway: gw}
}

// List handles GET /models. An optional ?provider= narrows the listing to
// one configured provider; an unknown name is a 404.
func (h *ModelsHandler) List(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("provider"); name != "" {
		p, err := h.gateway.Provider(name)
		if err != nil {
			writeError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		models := make([]llm.ModelInfo, 0, len(p.Models()))
		for _, m := range p.Models() {
			models = append(models, llm.ModelInfo{Provider: p.Name(), Model: m})
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"models": models})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"models": h.gateway.ListModels()})
}
