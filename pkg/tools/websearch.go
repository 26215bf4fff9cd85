package tools

import (
	"context"
	"fmt"

	"github.com/cinegraph/cinegraph/pkg/types"
)

// WebSearchTool is a placeholder search tool. The contract matches a real
// networked search, so a live implementation (SerpAPI, Tavily) can replace
// this one without touching the orchestration loop.
type WebSearchTool struct{}

// NewWebSearchTool creates the placeholder web search tool.
func NewWebSearchTool() *WebSearchTool {
	return &WebSearchTool{}
}

// Definition implements Tool.
func (t *WebSearchTool) Definition() types.ToolDefinition {
	return types.ToolDefinition{
		Name: "web_search",
		Description: "Search the web for current information, news, or facts that might " +
			"not be in the knowledge graph. Use for current events, general knowledge not " +
			"in the graph, or verification of facts.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Search query string",
				},
			},
			"required": []string{"query"},
		},
	}
}

// ErrorVerb implements Tool.
func (t *WebSearchTool) ErrorVerb() string { return "searching the web" }

// Run implements Tool.
func (t *WebSearchTool) Run(ctx context.Context, args map[string]any) (string, error) {
	query := stringArg(args, "query")
	return fmt.Sprintf("[Mock Web Search] Results for '%s': This is a placeholder. "+
		"In production, this would connect to a real search API like SerpAPI or Tavily.", query), nil
}
