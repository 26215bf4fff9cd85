package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cinegraph/cinegraph/pkg/retrieval"
	"github.com/cinegraph/cinegraph/pkg/types"
)

// GraphRetrievalTool answers questions from the film knowledge graph via the
// hybrid retrieval pipeline, or traversal alone when vector search is
// switched off.
type GraphRetrievalTool struct {
	pipeline *retrieval.Pipeline
}

// NewGraphRetrievalTool creates the graph retrieval tool.
func NewGraphRetrievalTool(pipeline *retrieval.Pipeline) *GraphRetrievalTool {
	return &GraphRetrievalTool{pipeline: pipeline}
}

// Definition implements Tool.
func (t *GraphRetrievalTool) Definition() types.ToolDefinition {
	return types.ToolDefinition{
		Name: "graph_retrieval",
		Description: "Query the knowledge graph about films, series, actors, directors, " +
			"and genres. Finds which actors played in which films or series, which directors " +
			"directed what, what genres content belongs to, which actors worked together, " +
			"and film or series details (year, rating, duration).",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Natural language query about the knowledge graph",
				},
				"use_vector_search": map[string]any{
					"type":        "boolean",
					"description": "Whether to use vector search (default true)",
				},
			},
			"required": []string{"query"},
		},
	}
}

// ErrorVerb implements Tool.
func (t *GraphRetrievalTool) ErrorVerb() string { return "querying graph" }

// Run implements Tool.
func (t *GraphRetrievalTool) Run(ctx context.Context, args map[string]any) (string, error) {
	query := stringArg(args, "query")
	if query == "" {
		return "", fmt.Errorf("missing query argument")
	}

	if !boolArg(args, "use_vector_search", true) {
		records, err := t.pipeline.Traverse(ctx, query)
		if err != nil {
			return "", err
		}
		serialized, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Graph Traversal Results: %s", serialized), nil
	}

	fused, err := t.pipeline.HybridRetrieve(ctx, query)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Graph Context:\n%s\n\nFound %d relevant nodes.", fused.Context, len(fused.Results)), nil
}
