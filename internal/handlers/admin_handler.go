// File: internal/handlers/admin_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sanarte/go-sanarte/internal/services/symptom"
)

type AdminHandler struct {
	DetailService *symptom.DetailService
}

func NewAdminHandler(detail *symptom.DetailService) *AdminHandler {
	return &AdminHandler{DetailService: detail}
}

type regenerateRequest struct {
	Name string `json:"name"`
}

// RegenerateSymptom serves POST /api/admin/symptoms/regenerate. It skips
// the read path and overwrites the cached document, curing poisoned
// entries on demand.
func (h *AdminHandler) RegenerateSymptom(w http.ResponseWriter, r *http.Request) {
	var req regenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, "Bad Request", http.StatusBadRequest)
		return
	}

	detail, err := h.DetailService.Regenerate(r.Context(), req.Name)
	if err != nil {
		status, message := statusForSymptomError(err)
		writeError(w, message, status)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "regenerated",
		"slug":   symptom.Slugify(req.Name),
		"name":   detail.Name,
	})
}
