// LLMClient - Simple wrapper around providers.

package llm

import (
	"context"
	"strings"
)

// Client wraps a Provider with a simple interface.
type Client struct {
	provider Provider
}

// NewClient creates a new LLM client from a provider.
func NewClient(provider Provider) *Client {
	return &Client{provider: provider}
}

// Generate sends a generation request and returns just the content.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	response, err := c.provider.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	return response.Content, nil
}

// StreamTo streams a generation, invoking fn for each text increment, and
// returns the full reassembled content once the stream ends. fn may be nil.
func (c *Client) StreamTo(ctx context.Context, req GenerateRequest, fn func(string)) (string, *TokenUsage, error) {
	chunks := make(chan string, 16)

	var usage *TokenUsage
	var streamErr error
	go func() {
		// Assignments complete before close(chunks), which in turn completes
		// before the range below finishes.
		usage, streamErr = c.provider.Stream(ctx, req, chunks)
		close(chunks)
	}()

	var sb strings.Builder
	for chunk := range chunks {
		sb.WriteString(chunk)
		if fn != nil {
			fn(chunk)
		}
	}

	return sb.String(), usage, streamErr
}

// Provider returns the underlying provider.
func (c *Client) Provider() Provider {
	return c.provider
}
