// File: internal/handlers/gemini_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sanarte/go-sanarte/internal/domain"
	"github.com/sanarte/go-sanarte/internal/services/gemini"
)

// GeminiHandler is the HTTP boundary of the generation proxy. The UI posts
// normalized chat messages here and never sees the upstream credential.
type GeminiHandler struct {
	Generator gemini.Generator
}

func NewGeminiHandler(generator gemini.Generator) *GeminiHandler {
	return &GeminiHandler{Generator: generator}
}

type generateRequest struct {
	Messages []domain.ChatMessage `json:"messages"`
	JSONMode bool                 `json:"jsonMode"`
}

// HandleGenerate serves POST /api/gemini.
func (h *GeminiHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) == 0 {
		writeMessage(w, http.StatusBadRequest, "Invalid messages payload")
		return
	}

	text, err := h.Generator.Generate(r.Context(), req.Messages, req.JSONMode)
	if err != nil {
		status, message := statusForGenerationError(err)
		writeMessage(w, status, message)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

// statusForGenerationError maps the proxy error taxonomy onto the stable
// client-facing status contract.
func statusForGenerationError(err error) (int, string) {
	var ge *gemini.GeminiError
	if !errors.As(err, &ge) {
		return http.StatusInternalServerError, "Unexpected server error"
	}

	switch ge.Type {
	case gemini.ErrTypeValidation:
		return http.StatusBadRequest, ge.Message
	case gemini.ErrTypeRateLimit, gemini.ErrTypeQuota:
		return http.StatusTooManyRequests, ge.Message
	case gemini.ErrTypeShape:
		return http.StatusBadGateway, ge.Message
	case gemini.ErrTypeUpstream:
		if ge.Code >= 400 {
			return ge.Code, ge.Message
		}
		return http.StatusBadGateway, ge.Message
	case gemini.ErrTypeConfig:
		return http.StatusInternalServerError, "Gemini API key is not configured"
	default:
		// Timeout and transport failures that survived the retry budget.
		return http.StatusInternalServerError, ge.Message
	}
}

// writeMessage keeps the proxy's historical error body shape.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}
