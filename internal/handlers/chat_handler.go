// File: internal/handlers/chat_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sanarte/go-sanarte/internal/domain"
	"github.com/sanarte/go-sanarte/internal/services/chatbot"
)

type ChatHandler struct {
	ChatService *chatbot.Service
}

func NewChatHandler(cs *chatbot.Service) *ChatHandler {
	return &ChatHandler{ChatService: cs}
}

type chatRequest struct {
	History []domain.ChatMessage `json:"history"`
	Message string               `json:"message"`
}

// HandleMessage serves POST /api/chat. Always answers 200 with a reply;
// downstream failures become the companion's soft apology.
func (h *ChatHandler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeError(w, "Bad Request", http.StatusBadRequest)
		return
	}

	reply := h.ChatService.SendMessage(r.Context(), req.History, req.Message)

	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}
