package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lingoloop/lingoloop/internal/feedback"
	"github.com/lingoloop/lingoloop/internal/turn"
)

// GenerateHandler exposes one-shot sentence generation outside the session
// loop: a native sentence in, one target-language response sentence plus a
// pronunciation guide out.
type GenerateHandler struct {
	feedback *feedback.Service
}

func NewGenerateHandler(fb *feedback.Service) *GenerateHandler {
	return &GenerateHandler{feedback: fb}
}

func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req feedback.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	result, err := h.feedback.Generate(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, turn.ErrEmptyInput):
			writeError(w, http.StatusBadRequest, "empty_input", "nativeText required")
		case errors.Is(err, turn.ErrServiceUnavailable):
			writeError(w, http.StatusBadGateway, "service_unavailable", err.Error())
		case errors.Is(err, turn.ErrInvalidResponse):
			writeError(w, http.StatusBadGateway, "invalid_response", err.Error())
		case errors.Is(err, turn.ErrIncompleteTurn):
			writeError(w, http.StatusBadGateway, "incomplete_turn", err.Error())
		default:
			writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}
