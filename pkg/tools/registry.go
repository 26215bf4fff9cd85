package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cinegraph/cinegraph/pkg/types"
)

// Tool is one callable capability. Run may fail; the registry converts
// failures to text so callers never see an error.
type Tool interface {
	// Definition describes the tool to the reasoning capability.
	Definition() types.ToolDefinition

	// ErrorVerb is the "<doing X>" fragment for this tool's error text,
	// e.g. "querying graph".
	ErrorVerb() string

	// Run executes the tool with the given arguments.
	Run(ctx context.Context, args map[string]any) (string, error)
}

// Registry dispatches tool calls by name. Safe for concurrent use after
// construction; registration is not synchronised.
type Registry struct {
	tools  map[string]Tool
	order  []string
	logger *slog.Logger
}

// NewRegistry creates an empty tool registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		tools:  make(map[string]Tool),
		logger: logger,
	}
}

// Register adds a tool. A duplicate name replaces the earlier registration.
func (r *Registry) Register(tool Tool) {
	name := tool.Definition().Name
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = tool
}

// Invoke runs the named tool and always returns text. Unknown tools and tool
// failures come back as prefixed error strings, never as errors.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) string {
	tool, ok := r.tools[name]
	if !ok {
		r.logger.Warn("unknown tool requested", "tool", name)
		return fmt.Sprintf("Error invoking tool: unknown tool %q", name)
	}

	result, err := tool.Run(ctx, args)
	if err != nil {
		r.logger.Warn("tool execution failed", "tool", name, "error", err)
		return fmt.Sprintf("Error %s: %v", tool.ErrorVerb(), err)
	}
	return result
}

// Definitions returns the registered tool descriptions in registration
// order, for advertising to the reasoning capability.
func (r *Registry) Definitions() []types.ToolDefinition {
	defs := make([]types.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Definition())
	}
	return defs
}

// stringArg extracts a string argument, tolerating absence.
func stringArg(args map[string]any, key string) string {
	if args == nil {
		return ""
	}
	if s, ok := args[key].(string); ok {
		return s
	}
	return ""
}

// boolArg extracts a bool argument with a default.
func boolArg(args map[string]any, key string, def bool) bool {
	if args == nil {
		return def
	}
	if b, ok := args[key].(bool); ok {
		return b
	}
	return def
}
