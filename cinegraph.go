package cinegraph

import (
	"context"
	"log/slog"

	"github.com/cinegraph/cinegraph/pkg/agent"
	"github.com/cinegraph/cinegraph/pkg/driver"
	"github.com/cinegraph/cinegraph/pkg/embedder"
	"github.com/cinegraph/cinegraph/pkg/nlp"
	"github.com/cinegraph/cinegraph/pkg/retrieval"
	"github.com/cinegraph/cinegraph/pkg/tools"
	"github.com/cinegraph/cinegraph/pkg/types"
)

// Agent is the main interface for querying the film knowledge graph with
// natural language.
type Agent interface {
	// Ask processes one user query through the orchestration loop and
	// returns the final answer with its tool-usage trace.
	Ask(ctx context.Context, query string) (*types.AgentResponse, error)

	// GraphInfo returns metadata about the knowledge graph.
	GraphInfo(ctx context.Context) (*driver.Stats, error)

	// Close closes all connections and cleans up resources.
	Close(ctx context.Context) error
}

// Config holds configuration for the cinegraph client.
type Config struct {
	// TopK bounds vector results fed into fusion (default 5).
	TopK int
	// CandidateLimit bounds the embedded-node scan (default 200).
	CandidateLimit int
	// MaxRounds caps reasoning round trips per query (default 8, 0 unbounded).
	MaxRounds int
}

// Client is the main implementation of the Agent interface. All collaborators
// are injected at construction; the client holds no ambient global state and
// is safe for concurrent Ask calls.
type Client struct {
	store    driver.GraphStore
	reasoner nlp.Client
	embedder embedder.Client
	pipeline *retrieval.Pipeline
	registry *tools.Registry
	loop     *agent.Loop
	config   *Config
	logger   *slog.Logger
}

// NewClient creates a new cinegraph client over the provided collaborators.
func NewClient(store driver.GraphStore, reasoner nlp.Client, embedderClient embedder.Client, config *Config, logger *slog.Logger) (*Client, error) {
	if config == nil {
		config = &Config{}
	}
	if config.MaxRounds == 0 {
		config.MaxRounds = agent.DefaultMaxRounds
	}
	if logger == nil {
		logger = slog.Default()
	}

	pipeline := retrieval.NewPipeline(store, embedderClient, retrieval.Options{
		TopK:           config.TopK,
		CandidateLimit: config.CandidateLimit,
		Logger:         logger,
	})

	registry := tools.NewRegistry(logger)
	registry.Register(tools.NewGraphRetrievalTool(pipeline))
	registry.Register(tools.NewCalculatorTool())
	registry.Register(tools.NewWebSearchTool())

	loop := agent.NewLoop(reasoner, registry, agent.Options{
		MaxRounds: config.MaxRounds,
		Logger:    logger,
	})

	return &Client{
		store:    store,
		reasoner: reasoner,
		embedder: embedderClient,
		pipeline: pipeline,
		registry: registry,
		loop:     loop,
		config:   config,
		logger:   logger,
	}, nil
}

// Ask implements Agent.
func (c *Client) Ask(ctx context.Context, query string) (*types.AgentResponse, error) {
	c.logger.Info("processing query", "query", query)
	resp := c.loop.Run(ctx, query)
	c.logger.Info("query complete",
		"tools_used", resp.ToolsUsed,
		"message_count", resp.MessageCount)
	return resp, nil
}

// GraphInfo implements Agent.
func (c *Client) GraphInfo(ctx context.Context) (*driver.Stats, error) {
	return c.store.Stats(ctx)
}

// Retrieve exposes the hybrid retrieval pipeline directly, bypassing the
// reasoning loop. Useful for inspecting what context a query would fetch.
func (c *Client) Retrieve(ctx context.Context, query string) (*types.FusedContext, error) {
	return c.pipeline.HybridRetrieve(ctx, query)
}

// GetStore returns the underlying graph store.
func (c *Client) GetStore() driver.GraphStore {
	return c.store
}

// GetEmbedder returns the embedder client.
func (c *Client) GetEmbedder() embedder.Client {
	return c.embedder
}

// Close implements Agent.
func (c *Client) Close(ctx context.Context) error {
	var firstErr error
	if err := c.reasoner.Close(); err != nil {
		firstErr = err
	}
	if err := c.embedder.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := c.store.Close(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
