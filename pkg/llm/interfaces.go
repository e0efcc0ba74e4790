// Package llm provides the OpenAI-compatible model client used for
// natural-language to SQL translation.
package llm

import (
	"context"
)

// LLMClient defines the generative model collaborator. Use this
// interface for dependency injection to enable mocking in tests.
type LLMClient interface {
	// GenerateResponse generates a chat completion for the prompt.
	// Returns the raw response text; callers are responsible for
	// defensive parsing, the model is an untrusted text producer.
	GenerateResponse(ctx context.Context, prompt string, systemMessage string, temperature float64) (string, error)

	// GetModel returns the configured model name.
	GetModel() string

	// GetEndpoint returns the configured endpoint.
	GetEndpoint() string
}

// Ensure Client implements LLMClient at compile time.
var _ LLMClient = (*Client)(nil)
