// Package agent implements the tool-orchestration loop: the state machine
// that alternates reasoning rounds with tool execution until the reasoning
// capability returns an answer with no pending tool calls.
package agent

import (
	"context"
	"log/slog"

	"github.com/cinegraph/cinegraph/pkg/nlp"
	"github.com/cinegraph/cinegraph/pkg/tools"
	"github.com/cinegraph/cinegraph/pkg/types"
)

// State is the orchestration loop state.
type State string

const (
	// StateReasoning invokes the reasoning capability with the transcript.
	StateReasoning State = "reasoning"
	// StateToolExecution runs the pending tool calls in request order.
	StateToolExecution State = "tool_execution"
	// StateDone is terminal.
	StateDone State = "done"
)

// DefaultMaxRounds caps reasoning round trips per query. Zero disables the
// ceiling, restoring unbounded looping.
const DefaultMaxRounds = 8

// PartialAnswerMarker is appended when the round ceiling forces termination
// before the reasoning capability finished on its own.
const PartialAnswerMarker = "[partial answer: reasoning round limit reached before the answer was complete]"

// apologyResponse is returned for a query that failed mid-orchestration.
// Other concurrent queries are unaffected.
const apologyResponse = "I'm sorry, something went wrong while answering this question. Please try again."

const personaPrompt = `You are an intelligent AI assistant with access to a knowledge graph and various tools.

Your capabilities:
1. Query a knowledge graph about films, series, actors, directors, and genres
2. Perform mathematical calculations
3. Search the web for current information

Decision making:
- Use the graph_retrieval tool when questions are about films, series, actors, directors, genres, or their relationships
- Use the calculator tool for mathematical expressions
- Use the web_search tool for current events or information not in the graph
- You can use multiple tools in sequence if needed
- Provide clear, comprehensive answers based on the information you retrieve

Always explain your reasoning and cite your sources.`

// Loop drives one query through reasoning and tool execution. Safe for
// concurrent use: every Run builds its own conversation state.
type Loop struct {
	reasoner  nlp.Client
	registry  *tools.Registry
	maxRounds int
	logger    *slog.Logger
}

// Options tunes an orchestration loop.
type Options struct {
	// MaxRounds caps reasoning rounds; 0 means unbounded.
	MaxRounds int
	Logger    *slog.Logger
}

// NewLoop creates an orchestration loop over the given reasoning client and
// tool registry.
func NewLoop(reasoner nlp.Client, registry *tools.Registry, opts Options) *Loop {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Loop{
		reasoner:  reasoner,
		registry:  registry,
		maxRounds: opts.MaxRounds,
		logger:    opts.Logger,
	}
}

// Run processes one user query through the state machine and returns the
// final response with its usage trace. Orchestration failures never
// propagate as errors; they produce an apology response for this query only.
func (l *Loop) Run(ctx context.Context, query string) *types.AgentResponse {
	transcript := []types.Message{types.NewUserMessage(query)}

	// Persona is prepended exactly once, only when absent.
	if transcript[0].Role != types.RoleSystem {
		transcript = append([]types.Message{types.NewSystemMessage(personaPrompt)}, transcript...)
	}

	var (
		toolsUsed []string
		steps     []types.AgentStep
		rounds    int
	)

	state := StateReasoning
	for state != StateDone {
		switch state {
		case StateReasoning:
			rounds++
			resp, err := l.reasoner.ChatWithTools(ctx, transcript, l.registry.Definitions())
			if err != nil {
				l.logger.Error("reasoning round failed", "round", rounds, "error", err)
				return &types.AgentResponse{
					Response:     apologyResponse,
					ToolsUsed:    dedupe(toolsUsed),
					Steps:        steps,
					MessageCount: len(transcript),
				}
			}

			transcript = append(transcript, types.Message{
				Role:      types.RoleAssistant,
				Content:   resp.Content,
				ToolCalls: resp.ToolCalls,
			})

			if !resp.HasToolCalls() {
				state = StateDone
				continue
			}

			names := make([]string, len(resp.ToolCalls))
			for i, call := range resp.ToolCalls {
				names[i] = call.Name
			}
			toolsUsed = append(toolsUsed, names...)
			steps = append(steps, types.AgentStep{
				Step:      "tool_selection",
				Tools:     names,
				Reasoning: "Agent selected tools based on query analysis",
			})
			state = StateToolExecution

		case StateToolExecution:
			// Strictly sequential, in the order the calls were returned.
			last := transcript[len(transcript)-1]
			for _, call := range last.ToolCalls {
				result := l.registry.Invoke(ctx, call.Name, call.Arguments)
				transcript = append(transcript, types.NewToolMessage(call, result))
			}

			if l.maxRounds > 0 && rounds >= l.maxRounds {
				l.logger.Warn("round ceiling reached, forcing termination",
					"rounds", rounds, "max_rounds", l.maxRounds)
				transcript = append(transcript, types.NewAssistantMessage(PartialAnswerMarker))
				state = StateDone
				continue
			}
			state = StateReasoning
		}
	}

	return &types.AgentResponse{
		Response:     transcript[len(transcript)-1].Content,
		ToolsUsed:    dedupe(toolsUsed),
		Steps:        steps,
		MessageCount: len(transcript),
	}
}

// dedupe deduplicates while keeping first-seen order. Applied only at output
// time; the per-round trace keeps duplicates.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
