package llm

import (
	"context"
	"errors"
	"strings"
)

// ErrNotConfigured is returned when no language-model provider is available.
var ErrNotConfigured = errors.New("language model not configured")

// Request is a single-turn completion.
type Request struct {
	System string
	User   string
	// JSON asks the provider for a single JSON object.
	JSON bool
}

// Client abstracts language-model providers.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// PlaceholderClient is used when no provider is configured.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, req Request) (string, error) {
	_ = ctx
	_ = req
	return "", ErrNotConfigured
}

// CleanJSON strips markdown code fences models wrap around JSON output.
func CleanJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```JSON")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
