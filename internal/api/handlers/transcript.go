package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/lingoloop/lingoloop/internal/session"
	"github.com/lingoloop/lingoloop/internal/transcript"
)

// TranscriptHandler owns the WebSocket endpoint through which a client
// streams speech-recognition events for one listening session. The server
// merges them with the transcript buffer and echoes the display value, so
// the text box never shows duplicated or lost words regardless of how the
// client platform re-sends final results.
type TranscriptHandler struct {
	store    session.Store
	upgrader websocket.Upgrader
}

func NewTranscriptHandler(store session.Store) *TranscriptHandler {
	return &TranscriptHandler{
		store: store,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Cross-origin policy is handled by the HTTP middleware layer.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// inbound messages: "seed" installs pre-typed text, "segment" is one
// recognition event, "stop" ends the listening session.
type transcriptInbound struct {
	Type       string `json:"type"`
	Text       string `json:"text,omitempty"`
	Transcript string `json:"transcript,omitempty"`
	IsFinal    bool   `json:"isFinal,omitempty"`
}

type transcriptOutbound struct {
	Type string `json:"type"` // "display" or "stopped"
	Text string `json:"text"`
}

// Stream handles GET /sessions/{id}/transcript.
func (h *TranscriptHandler) Stream(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.store.Get(r.Context(), id); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "session not found")
		} else {
			writeError(w, http.StatusInternalServerError, "store_failure", err.Error())
		}
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		slog.Warn("transcript upgrade failed", "session", id, "error", err)
		return
	}
	defer conn.Close()

	stream := transcript.NewStream("")

	for {
		var msg transcriptInbound
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("transcript connection closed", "session", id, "error", err)
			}
			return
		}

		switch msg.Type {
		case "seed":
			stream = transcript.NewStream(msg.Text)
			if err := conn.WriteJSON(transcriptOutbound{Type: "display", Text: msg.Text}); err != nil {
				return
			}
		case "segment":
			display, ok := stream.Apply(transcript.Event{
				Transcript: msg.Transcript,
				IsFinal:    msg.IsFinal,
			})
			if !ok {
				// Stopped: late events are dropped, not applied.
				continue
			}
			if err := conn.WriteJSON(transcriptOutbound{Type: "display", Text: display}); err != nil {
				return
			}
		case "stop":
			committed := stream.Stop()
			_ = conn.WriteJSON(transcriptOutbound{Type: "stopped", Text: committed})
			return
		default:
			slog.Debug("unknown transcript message type", "type", msg.Type)
		}
	}
}
