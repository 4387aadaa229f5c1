// File: internal/services/gemini/client.go
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sanarte/go-sanarte/internal/domain"
)

// Client translates normalized chat messages into the upstream
// generative-language REST contract. The credential never leaves this
// package; callers only see mapped errors and extracted text.
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     Logger
}

func NewClient(config *Config, logger Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, NewConfigError(err.Error())
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{},
		logger:     logger,
	}, nil
}

// Upstream wire types. The first candidate's first part carries the text.

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []generatePart `json:"parts"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMIMEType string  `json:"response_mime_type"`
}

type generateRequest struct {
	Contents          []generateContent `json:"contents"`
	SystemInstruction *generateContent  `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig  `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []generatePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type upstreamErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends the message list upstream and extracts the reply text.
// Every call carries a hard abort timeout independent of any retry loop.
func (c *Client) Generate(ctx context.Context, messages []domain.ChatMessage, jsonMode bool) (string, error) {
	if c.config.APIKey == "" {
		return "", NewConfigError("Gemini API key is not configured")
	}
	if len(messages) == 0 {
		return "", NewValidationError("Invalid messages payload")
	}

	body := c.buildRequest(messages, jsonMode)

	payload, err := json.Marshal(body)
	if err != nil {
		return "", NewValidationError(fmt.Sprintf("could not encode request: %v", err))
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.CallTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.config.BaseURL, c.config.Model, c.config.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", NewNetworkError("could not build upstream request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return "", NewTimeoutError(err)
		}
		return "", NewNetworkError("upstream request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", NewNetworkError("could not read upstream response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.mapUpstreamError(resp.StatusCode, raw)
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", NewShapeError("Invalid response from Gemini")
	}
	if len(parsed.Candidates) == 0 ||
		len(parsed.Candidates[0].Content.Parts) == 0 ||
		parsed.Candidates[0].Content.Parts[0].Text == "" {
		return "", NewShapeError("Invalid response from Gemini")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// buildRequest separates the system instruction from conversational turns
// and maps the client-facing "assistant" role to the upstream's "model".
func (c *Client) buildRequest(messages []domain.ChatMessage, jsonMode bool) generateRequest {
	mimeType := "text/plain"
	if jsonMode {
		mimeType = "application/json"
	}

	req := generateRequest{
		GenerationConfig: generationConfig{
			Temperature:      c.config.Temperature,
			MaxOutputTokens:  c.config.MaxOutputTokens,
			ResponseMIMEType: mimeType,
		},
	}

	for _, m := range messages {
		if m.Role == domain.RoleSystem {
			if m.Content != "" && req.SystemInstruction == nil {
				req.SystemInstruction = &generateContent{
					Parts: []generatePart{{Text: m.Content}},
				}
			}
			continue
		}

		role := "user"
		if m.Role == domain.RoleAssistant {
			role = "model"
		}
		req.Contents = append(req.Contents, generateContent{
			Role:  role,
			Parts: []generatePart{{Text: m.Content}},
		})
	}

	return req
}

// mapUpstreamError extracts the most specific upstream message available
// and distinguishes quota exhaustion from other failures.
func (c *Client) mapUpstreamError(status int, raw []byte) error {
	upstream := http.StatusText(status)
	var body upstreamErrorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Error.Message != "" {
		upstream = body.Error.Message
	}

	c.logger.Warn("upstream returned non-success", "status", status, "message", upstream)

	if status == http.StatusTooManyRequests {
		return NewQuotaError(upstream)
	}

	return NewUpstreamError(status, upstream)
}
