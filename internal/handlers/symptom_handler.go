// File: internal/handlers/symptom_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sanarte/go-sanarte/internal/services/gemini"
	"github.com/sanarte/go-sanarte/internal/services/markdown"
	"github.com/sanarte/go-sanarte/internal/services/symptom"
)

type SymptomHandler struct {
	DetailService *symptom.DetailService
	SearchService *symptom.SearchService
	Renderer      *markdown.Renderer
}

func NewSymptomHandler(detail *symptom.DetailService, search *symptom.SearchService, renderer *markdown.Renderer) *SymptomHandler {
	return &SymptomHandler{
		DetailService: detail,
		SearchService: search,
		Renderer:      renderer,
	}
}

// Search serves GET /api/symptoms/search?q=. Never fails: worst case is
// the static fallback list with an embedded error message.
func (h *SymptomHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	results := h.SearchService.SearchSymptoms(r.Context(), query)
	writeJSON(w, http.StatusOK, results)
}

// Autocomplete serves GET /api/symptoms/autocomplete?q=. Pure in-memory
// lookup, no generation cost.
func (h *SymptomHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, symptom.LocalSearch(query))
}

// GetDetail serves GET /api/symptoms/{name}.
func (h *SymptomHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	detail, err := h.DetailService.GetSymptomDetail(r.Context(), name)
	if err != nil {
		status, message := statusForSymptomError(err)
		writeError(w, message, status)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// GetDetailHTML serves GET /api/symptoms/{name}/html with every markdown
// field rendered for clients without a markdown renderer.
func (h *SymptomHandler) GetDetailHTML(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	detail, err := h.DetailService.GetSymptomDetail(r.Context(), name)
	if err != nil {
		status, message := statusForSymptomError(err)
		writeError(w, message, status)
		return
	}

	rendered, err := h.Renderer.Render(detail)
	if err != nil {
		writeError(w, "Could not render document", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, rendered)
}

// statusForSymptomError maps pipeline failures for the UI. The detail
// pipeline surfaces errors instead of fabricating content, so these
// statuses are part of its contract.
func statusForSymptomError(err error) (int, string) {
	var se *symptom.SymptomError
	if errors.As(err, &se) {
		switch se.Type {
		case symptom.ErrTypeValidation:
			return http.StatusBadRequest, se.Message
		case symptom.ErrTypeShape:
			return http.StatusBadGateway, "La IA devolvió una respuesta inválida. Intenta de nuevo."
		}
	}

	// Generation failures inherit the proxy classification (e.g. quota).
	var ge *gemini.GeminiError
	if errors.As(err, &ge) {
		return statusForGenerationError(err)
	}

	return http.StatusInternalServerError, "Unexpected server error"
}
