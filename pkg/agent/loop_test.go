package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinegraph/cinegraph/pkg/driver"
	"github.com/cinegraph/cinegraph/pkg/retrieval"
	"github.com/cinegraph/cinegraph/pkg/tools"
	"github.com/cinegraph/cinegraph/pkg/types"
)

// scriptedReasoner replays a fixed sequence of responses and records the
// transcripts it was invoked with.
type scriptedReasoner struct {
	responses   []*types.Response
	err         error
	calls       int
	transcripts [][]types.Message
}

func (s *scriptedReasoner) Chat(ctx context.Context, messages []types.Message) (*types.Response, error) {
	return s.ChatWithTools(ctx, messages, nil)
}

func (s *scriptedReasoner) ChatWithTools(ctx context.Context, messages []types.Message, defs []types.ToolDefinition) (*types.Response, error) {
	s.transcripts = append(s.transcripts, append([]types.Message(nil), messages...))
	if s.err != nil {
		return nil, s.err
	}
	if s.calls >= len(s.responses) {
		return &types.Response{Content: "done"}, nil
	}
	resp := s.responses[s.calls]
	s.calls++
	return resp, nil
}

func (s *scriptedReasoner) Close() error { return nil }

func newCalcRegistry() *tools.Registry {
	registry := tools.NewRegistry(nil)
	registry.Register(tools.NewCalculatorTool())
	registry.Register(tools.NewWebSearchTool())
	return registry
}

func TestLoopZeroToolCallsGoesStraightToDone(t *testing.T) {
	reasoner := &scriptedReasoner{responses: []*types.Response{
		{Content: "Paris is the capital of France."},
	}}
	loop := NewLoop(reasoner, newCalcRegistry(), Options{})

	resp := loop.Run(context.Background(), "What is the capital of France?")

	assert.Equal(t, "Paris is the capital of France.", resp.Response)
	assert.Empty(t, resp.ToolsUsed)
	assert.Empty(t, resp.Steps)
	// persona + user + assistant
	assert.Equal(t, 3, resp.MessageCount)
	assert.Equal(t, 1, reasoner.calls)
}

func TestLoopPrependsPersonaOnce(t *testing.T) {
	reasoner := &scriptedReasoner{responses: []*types.Response{{Content: "hi"}}}
	loop := NewLoop(reasoner, newCalcRegistry(), Options{})

	loop.Run(context.Background(), "hello")

	require.Len(t, reasoner.transcripts, 1)
	transcript := reasoner.transcripts[0]
	require.NotEmpty(t, transcript)
	assert.Equal(t, types.RoleSystem, transcript[0].Role)
	assert.Contains(t, transcript[0].Content, "graph_retrieval")
	assert.Equal(t, types.RoleUser, transcript[1].Role)
}

func TestLoopExecutesToolsInRequestOrder(t *testing.T) {
	reasoner := &scriptedReasoner{responses: []*types.Response{
		{
			Content: "Let me compute both.",
			ToolCalls: []types.ToolCall{
				{ID: "1", Name: "calculator", Arguments: map[string]any{"expression": "2 + 2"}},
				{ID: "2", Name: "calculator", Arguments: map[string]any{"expression": "3 * 3"}},
			},
		},
		{Content: "4 and 9."},
	}}
	loop := NewLoop(reasoner, newCalcRegistry(), Options{})

	resp := loop.Run(context.Background(), "Compute 2+2 and 3*3")

	assert.Equal(t, "4 and 9.", resp.Response)
	// Second transcript: persona, user, assistant, two tool results in order.
	require.Len(t, reasoner.transcripts, 2)
	second := reasoner.transcripts[1]
	require.Len(t, second, 5)
	assert.Equal(t, types.RoleTool, second[3].Role)
	assert.Equal(t, "Result: 4", second[3].Content)
	assert.Equal(t, "1", second[3].ToolCallID)
	assert.Equal(t, "Result: 9", second[4].Content)
}

func TestLoopDeduplicatesToolsUsedOnlyAtOutput(t *testing.T) {
	call := types.ToolCall{Name: "calculator", Arguments: map[string]any{"expression": "1 + 1"}}
	reasoner := &scriptedReasoner{responses: []*types.Response{
		{ToolCalls: []types.ToolCall{call}},
		{ToolCalls: []types.ToolCall{call}},
		{Content: "2"},
	}}
	loop := NewLoop(reasoner, newCalcRegistry(), Options{})

	resp := loop.Run(context.Background(), "keep adding")

	assert.Equal(t, []string{"calculator"}, resp.ToolsUsed)
	// The per-round trace keeps both selections.
	require.Len(t, resp.Steps, 2)
	assert.Equal(t, "tool_selection", resp.Steps[0].Step)
	assert.Equal(t, []string{"calculator"}, resp.Steps[0].Tools)
}

func TestLoopToolFailureFeedsBackAsText(t *testing.T) {
	reasoner := &scriptedReasoner{responses: []*types.Response{
		{ToolCalls: []types.ToolCall{
			{Name: "calculator", Arguments: map[string]any{"expression": "10 / 0"}},
		}},
		{Content: "That division is undefined."},
	}}
	loop := NewLoop(reasoner, newCalcRegistry(), Options{})

	resp := loop.Run(context.Background(), "What is 10 / 0?")

	assert.Equal(t, "That division is undefined.", resp.Response)
	second := reasoner.transcripts[1]
	toolMsg := second[len(second)-1]
	assert.Equal(t, types.RoleTool, toolMsg.Role)
	assert.Contains(t, toolMsg.Content, "Error calculating:")
}

func TestLoopRoundCeilingForcesPartialAnswer(t *testing.T) {
	// Always requests another tool call, never settling.
	endless := make([]*types.Response, 10)
	for i := range endless {
		endless[i] = &types.Response{ToolCalls: []types.ToolCall{
			{Name: "calculator", Arguments: map[string]any{"expression": "1 + 1"}},
		}}
	}
	reasoner := &scriptedReasoner{responses: endless}
	loop := NewLoop(reasoner, newCalcRegistry(), Options{MaxRounds: 3})

	resp := loop.Run(context.Background(), "loop forever")

	assert.Equal(t, PartialAnswerMarker, resp.Response)
	assert.Equal(t, 3, reasoner.calls)
}

func TestLoopReasoningFailureYieldsApology(t *testing.T) {
	reasoner := &scriptedReasoner{err: errors.New("provider down")}
	loop := NewLoop(reasoner, newCalcRegistry(), Options{})

	resp := loop.Run(context.Background(), "anything")

	assert.Contains(t, resp.Response, "sorry")
	assert.NotNil(t, resp.ToolsUsed)
}

// fakeStore and fixedEmbedder stand in for the graph and embedding
// collaborators in the end-to-end scenarios.
type fakeStore struct {
	embedded  []driver.Record
	traversal []driver.Record
}

func (s *fakeStore) Query(ctx context.Context, cypher string, params map[string]any) ([]driver.Record, error) {
	if strings.Contains(cypher, "embedding IS NOT NULL") {
		return s.embedded, nil
	}
	return s.traversal, nil
}

func (s *fakeStore) Exec(ctx context.Context, cypher string, params map[string]any) error { return nil }
func (s *fakeStore) Stats(ctx context.Context) (*driver.Stats, error) {
	return &driver.Stats{CollectedAt: time.Now()}, nil
}
func (s *fakeStore) CreateConstraints(ctx context.Context) error { return nil }
func (s *fakeStore) CreateVectorIndex(ctx context.Context, name, label string, dims int) error {
	return nil
}
func (s *fakeStore) VerifyConnectivity(ctx context.Context) error { return nil }
func (s *fakeStore) Provider() driver.GraphProvider               { return driver.GraphProviderNeo4j }
func (s *fakeStore) Close(ctx context.Context) error              { return nil }

type fixedEmbedder struct{ vec []float32 }

func (e *fixedEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = e.vec
	}
	return out, nil
}
func (e *fixedEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	return e.vec, nil
}
func (e *fixedEmbedder) Dimensions() int { return len(e.vec) }
func (e *fixedEmbedder) Close() error    { return nil }

func TestEndToEndGraphQuestionUsesGraphRetrieval(t *testing.T) {
	store := &fakeStore{
		embedded: []driver.Record{
			{"n": map[string]any{"name": "Inception", "year": int64(2010), "embedding": []any{1.0, 0.0}}},
		},
		traversal: []driver.Record{
			{
				"a":       map[string]any{"name": "Leonardo DiCaprio", "nationality": "American"},
				"content": map[string]any{"name": "Inception", "year": int64(2010)},
			},
		},
	}
	pipeline := retrieval.NewPipeline(store, &fixedEmbedder{vec: []float32{1, 0}}, retrieval.Options{})

	registry := tools.NewRegistry(nil)
	registry.Register(tools.NewGraphRetrievalTool(pipeline))
	registry.Register(tools.NewCalculatorTool())
	registry.Register(tools.NewWebSearchTool())

	reasoner := &scriptedReasoner{responses: []*types.Response{
		{ToolCalls: []types.ToolCall{
			{ID: "1", Name: "graph_retrieval", Arguments: map[string]any{"query": "Who acted in Inception?"}},
		}},
		{Content: "Leonardo DiCaprio acted in Inception."},
	}}
	loop := NewLoop(reasoner, registry, Options{MaxRounds: DefaultMaxRounds})

	resp := loop.Run(context.Background(), "Who acted in Inception?")

	assert.Contains(t, resp.ToolsUsed, "graph_retrieval")
	assert.Equal(t, "Leonardo DiCaprio acted in Inception.", resp.Response)

	// The rendered context handed back to reasoning names the actor.
	second := reasoner.transcripts[1]
	toolMsg := second[len(second)-1]
	assert.Contains(t, toolMsg.Content, "Leonardo DiCaprio")
	assert.Contains(t, toolMsg.Content, "Graph Context:")
}

func TestEndToEndCalculationUsesCalculator(t *testing.T) {
	registry := newCalcRegistry()
	reasoner := &scriptedReasoner{responses: []*types.Response{
		{ToolCalls: []types.ToolCall{
			{ID: "1", Name: "calculator", Arguments: map[string]any{"expression": "125 * 47 + 892"}},
		}},
		{Content: "125 * 47 + 892 = 6767."},
	}}
	loop := NewLoop(reasoner, registry, Options{MaxRounds: DefaultMaxRounds})

	resp := loop.Run(context.Background(), "Calculate 125 * 47 + 892")

	assert.Contains(t, resp.ToolsUsed, "calculator")
	assert.Contains(t, resp.Response, "6767")

	second := reasoner.transcripts[1]
	assert.Contains(t, second[len(second)-1].Content, "6767")
}
