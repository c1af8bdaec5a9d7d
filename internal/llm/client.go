package llm

import (
	"context"
)

// Client defines the interface for LLM providers used for compliance insights.
type Client interface {
	// Analyze sends an analysis prompt and returns the raw response text.
	Analyze(ctx context.Context, prompt string, systemPrompt string) (string, error)
}

// Config holds LLM provider configuration.
type Config struct {
	Provider    string // "openai" or "anthropic"
	APIKey      string
	Model       string
	BaseURL     string // optional override for self-hosted or proxy endpoints
	Temperature float64
	MaxTokens   int
}
