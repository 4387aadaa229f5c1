// File: internal/services/gemini/config.go
package gemini

import (
	"fmt"
	"time"
)

type Config struct {
	// Upstream Configuration
	APIKey  string
	Model   string
	BaseURL string

	// Generation Parameters
	Temperature     float64
	MaxOutputTokens int

	// Performance Configuration
	CallTimeout time.Duration // Hard abort per upstream call
}

func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("GEMINI_MODEL is required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("GEMINI_BASE_URL is required")
	}
	if c.MaxOutputTokens <= 0 {
		return fmt.Errorf("max output tokens must be positive")
	}
	if c.CallTimeout <= 0 {
		return fmt.Errorf("call timeout must be positive")
	}
	// APIKey is deliberately not validated here: a missing credential is
	// fatal at startup in production and a per-request configuration
	// error in development.
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Model:           "gemini-2.0-flash",
		BaseURL:         "https://generativelanguage.googleapis.com/v1beta",
		Temperature:     0.7,
		MaxOutputTokens: 2048,
		CallTimeout:     45 * time.Second,
	}
}
