package cinegraph

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cinegraph/cinegraph"
	"github.com/cinegraph/cinegraph/pkg/alert"
	"github.com/cinegraph/cinegraph/pkg/config"
	"github.com/cinegraph/cinegraph/pkg/driver"
	"github.com/cinegraph/cinegraph/pkg/embedder"
	cinegraphLogger "github.com/cinegraph/cinegraph/pkg/logger"
	"github.com/cinegraph/cinegraph/pkg/nlp"
	"github.com/cinegraph/cinegraph/pkg/telemetry"
)

// newLogger builds the process logger: colored console output, optionally
// mirrored to Parquet telemetry for error-level records.
func newLogger(cfg *config.Config) (*slog.Logger, error) {
	var handler slog.Handler = cinegraphLogger.NewColorHandler(os.Stderr, &slog.HandlerOptions{
		Level: cinegraphLogger.ParseLevel(cfg.Log.Level),
	})

	if cfg.Telemetry.ParquetPath != "" {
		parquetHandler, err := telemetry.NewParquetHandler(handler, cfg.Telemetry.ParquetPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create telemetry handler: %w", err)
		}
		handler = parquetHandler
	}

	return slog.New(handler), nil
}

// newStore connects to the graph database and verifies it is reachable.
// Collaborator unavailability is fatal at startup, never retried per request.
func newStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (driver.GraphStore, error) {
	store, err := driver.NewNeo4jStore(cfg.Database.URI, cfg.Database.Username, cfg.Database.Password, cfg.Database.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create graph store: %w", err)
	}

	if err := store.VerifyConnectivity(ctx); err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("graph store unreachable: %w", err)
	}
	return store, nil
}

// newEmbedder builds the configured embedding client, wrapped with the
// badger cache when a cache path is set.
func newEmbedder(cfg *config.Config, logger *slog.Logger) (embedder.Client, error) {
	embConfig := embedder.Config{
		Model:      cfg.Embedding.Model,
		BaseURL:    cfg.Embedding.BaseURL,
		Dimensions: cfg.Embedding.Dimensions,
	}

	var client embedder.Client
	var err error
	switch cfg.Embedding.Provider {
	case "openai":
		client = embedder.NewOpenAIEmbedder(cfg.Embedding.APIKey, embConfig)
	case "local":
		client, err = embedder.NewLocalEmbedder(embConfig)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Embedding.Provider)
	}

	if cfg.Embedding.CachePath != "" {
		cachePath := filepath.Clean(cfg.Embedding.CachePath)
		cached, err := embedder.NewCachedClient(client, cachePath, cfg.Embedding.Model, logger)
		if err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to open embedding cache: %w", err)
		}
		client = cached
	}

	return client, nil
}

// newReasoner builds the reasoning client with retry and, when enabled,
// circuit breaking with email alerting.
func newReasoner(cfg *config.Config, logger *slog.Logger) (nlp.Client, error) {
	if cfg.NLP.Provider != "openai" {
		return nil, fmt.Errorf("unsupported nlp provider: %s", cfg.NLP.Provider)
	}

	temperature := cfg.NLP.Temperature
	nlpConfig := nlp.Config{
		Model:       cfg.NLP.Model,
		BaseURL:     cfg.NLP.BaseURL,
		Temperature: &temperature,
	}
	if cfg.NLP.MaxTokens > 0 {
		maxTokens := cfg.NLP.MaxTokens
		nlpConfig.MaxTokens = &maxTokens
	}

	base, err := nlp.NewOpenAIClient(cfg.NLP.APIKey, nlpConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create reasoning client: %w", err)
	}

	var client nlp.Client = nlp.NewRetryClient(base, nlp.DefaultRetryConfig())

	if cfg.CircuitBreaker.Enabled {
		var alerter alert.Alerter = &alert.NoOpAlerter{}
		if cfg.Alert.Enabled {
			alerter = alert.NewEmailAlerter(cfg.Alert, logger)
		}
		client = nlp.NewCircuitBreakerClient(client, cfg.CircuitBreaker, alerter, "reasoning")
	}

	return client, nil
}

// initializeAgent wires the full collaborator stack and returns the agent
// plus its store and embedder for commands that need them directly.
func initializeAgent(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*cinegraph.Client, error) {
	store, err := newStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	embedClient, err := newEmbedder(cfg, logger)
	if err != nil {
		_ = store.Close(ctx)
		return nil, err
	}

	reasoner, err := newReasoner(cfg, logger)
	if err != nil {
		_ = embedClient.Close()
		_ = store.Close(ctx)
		return nil, err
	}

	return cinegraph.NewClient(store, reasoner, embedClient, &cinegraph.Config{
		TopK:           cfg.Retrieval.TopK,
		CandidateLimit: cfg.Retrieval.CandidateLimit,
		MaxRounds:      cfg.Agent.MaxRounds,
	}, logger)
}
