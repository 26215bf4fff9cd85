package nlp

import (
	"context"

	"github.com/cinegraph/cinegraph/pkg/types"
)

// Client defines the interface for reasoning-capability providers.
type Client interface {
	// Chat sends a plain chat completion request.
	Chat(ctx context.Context, messages []types.Message) (*types.Response, error)

	// ChatWithTools sends a chat completion request advertising the given
	// tools. The response may carry tool calls for the caller to execute.
	ChatWithTools(ctx context.Context, messages []types.Message, tools []types.ToolDefinition) (*types.Response, error)

	// Close cleans up any resources.
	Close() error
}

// Config holds common reasoning-client configuration.
type Config struct {
	Model       string   `json:"model"`
	BaseURL     string   `json:"base_url,omitempty"`
	Temperature *float32 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	TopP        *float32 `json:"top_p,omitempty"`
	Stop        []string `json:"stop,omitempty"`
}
