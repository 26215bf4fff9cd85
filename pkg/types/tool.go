package types

// ToolDefinition describes a callable tool to the reasoning capability:
// name, human-readable purpose, and a JSON-schema parameter object.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}
