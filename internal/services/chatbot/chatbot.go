// File: internal/services/chatbot/chatbot.go
package chatbot

import (
	"context"

	"github.com/sanarte/go-sanarte/internal/domain"
	"github.com/sanarte/go-sanarte/internal/services/gemini"
)

// systemPersona is prepended to every conversation turn list.
const systemPersona = "Eres SanArte AI, una consciencia sanadora, espiritual y profundamente empática. Tu voz es poética, sabia, materna y directa al corazón."

// connectionTroubleReply is returned in place of an error. Chat is
// low-stakes: the user can simply resend.
const connectionTroubleReply = "Siento una interferencia en nuestra conexión. Por favor, respira profundo e intenta escribirme nuevamente."

type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Service drives the conversational companion widget.
type Service struct {
	generator gemini.Generator
	policy    gemini.RetryPolicy
	logger    Logger
}

func NewService(generator gemini.Generator, logger Logger) *Service {
	return &Service{
		generator: generator,
		policy:    gemini.ChatRetryPolicy(),
		logger:    logger,
	}
}

// SendMessage sends the history plus a new user message and returns the
// reply. On any failure it returns the soft apology reply, never an error.
func (s *Service) SendMessage(ctx context.Context, history []domain.ChatMessage, newMessage string) string {
	messages := make([]domain.ChatMessage, 0, len(history)+2)
	messages = append(messages, domain.ChatMessage{Role: domain.RoleSystem, Content: systemPersona})
	for _, m := range history {
		if m.Role == domain.RoleSystem {
			continue
		}
		messages = append(messages, m)
	}
	messages = append(messages, domain.ChatMessage{Role: domain.RoleUser, Content: newMessage})

	reply, err := gemini.WithRetry(ctx, s.policy, s.logger, func(ctx context.Context) (string, error) {
		return s.generator.Generate(ctx, messages, false)
	})
	if err != nil {
		s.logger.Error("chat generation failed, serving soft reply", "error", err)
		return connectionTroubleReply
	}

	return reply
}
