// File: internal/services/gemini/interface.go
package gemini

import (
	"context"

	"github.com/sanarte/go-sanarte/internal/domain"
)

// Generator produces model output for a normalized chat-style message
// list. jsonMode constrains the upstream to emit valid JSON.
type Generator interface {
	Generate(ctx context.Context, messages []domain.ChatMessage, jsonMode bool) (string, error)
}

// Logger is re-declared here so the package carries no dependency on the
// parent services package.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}
