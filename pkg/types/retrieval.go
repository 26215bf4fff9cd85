package types

// Source identifies which retrieval path produced a result.
type Source string

const (
	// SourceVector marks results from embedding similarity ranking.
	SourceVector Source = "vector"
	// SourceTraversal marks results from pattern-driven graph traversal.
	SourceTraversal Source = "traversal"
)

// TraversalDefaultScore is the fixed score assigned to traversal-sourced
// nodes. A node present in both sources always keeps its vector score.
const TraversalDefaultScore = 0.5

// RetrievalResult is one scored node from either retrieval path.
type RetrievalResult struct {
	Node   *Node   `json:"node"`
	Score  float64 `json:"score"`
	Source Source  `json:"source"`
}

// FusedContext is the deduplicated merge of vector and traversal results,
// in insertion order (vector-sourced first), plus its text rendering.
type FusedContext struct {
	Results        []RetrievalResult `json:"results"`
	Context        string            `json:"context"`
	VectorCount    int               `json:"vector_count"`
	TraversalCount int               `json:"traversal_count"`
}

// AgentStep records one tool-selection event in the agent trace.
type AgentStep struct {
	Step      string   `json:"step"`
	Tools     []string `json:"tools,omitempty"`
	Reasoning string   `json:"reasoning,omitempty"`
}

// AgentResponse is the final outcome of one agent query.
type AgentResponse struct {
	Response     string      `json:"response"`
	ToolsUsed    []string    `json:"tools_used"`
	Steps        []AgentStep `json:"steps"`
	MessageCount int         `json:"message_count"`
}
