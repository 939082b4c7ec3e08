// Package llm provides LLM provider abstractions for skill generation.
//
// Each provider implementation hides:
// - API client initialization and authentication
// - Request/response format conversion
// - Provider-specific error handling
// - Streaming mechanics
package llm

import "context"

// GenerateRequest is a single generation request: one templated system
// prompt plus one user prompt. There is no multi-turn conversation.
type GenerateRequest struct {
	System string
	Prompt string
}

// GenerateResponse is a completed (non-streamed) generation.
type GenerateResponse struct {
	Content string
	Usage   *TokenUsage
}

// TokenUsage contains token usage statistics.
type TokenUsage struct {
	PromptTokens     uint32
	CompletionTokens uint32
	TotalTokens      uint32
}

// Provider defines the abstract interface for LLM providers.
// Implementations hide provider-specific details while exposing a consistent
// interface for skill generation.
type Provider interface {
	// Name returns the provider name (for logging/debugging).
	Name() string

	// Model returns the current model being used.
	Model() string

	// Generate sends a generation request and waits for the full response.
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)

	// Stream streams a generation, sending text increments to the provided
	// channel. Returns token usage when the provider reports it.
	Stream(ctx context.Context, req GenerateRequest, chunks chan<- string) (*TokenUsage, error)
}
