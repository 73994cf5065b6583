package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lingoloop/lingoloop/internal/language"
)

// LanguageHandler serves the static language catalog.
type LanguageHandler struct{}

func NewLanguageHandler() *LanguageHandler {
	return &LanguageHandler{}
}

func (h *LanguageHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"languages": language.All()})
}

// UITexts returns the localized copy bundle and opener questions for a
// language. Unknown codes fall back to English rather than failing, so a
// stale client always renders something.
func (h *LanguageHandler) UITexts(w http.ResponseWriter, r *http.Request) {
	code := language.Code(chi.URLParam(r, "code"))
	info := language.Lookup(code)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"code":      info.Code,
		"texts":     language.Texts(code),
		"questions": language.Questions(code),
	})
}
