package embedder

import (
	"context"
	"fmt"

	"github.com/soundprediction/go-embedeverything/pkg/embedder"
)

// LocalEmbedder runs the embedding model in process via go-embedeverything,
// so seeding and query embedding work with no API key or network access.
type LocalEmbedder struct {
	client *embedder.Embedder
	config Config
}

// NewLocalEmbedder loads the configured model into the process.
func NewLocalEmbedder(config Config) (*LocalEmbedder, error) {
	client, err := embedder.NewEmbedder(config.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to load local embedding model %q: %w", config.Model, err)
	}

	return &LocalEmbedder{client: client, config: config}, nil
}

// Embed implements Client. The underlying library has no context plumbing,
// so cancellation takes effect only between calls.
func (e *LocalEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	embeddings, err := e.client.Embed(texts)
	if err != nil {
		return nil, fmt.Errorf("local embedding failed: %w", err)
	}
	return embeddings, nil
}

// EmbedSingle implements Client.
func (e *LocalEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	return firstEmbedding(e.Embed(ctx, []string{text}))
}

// Dimensions implements Client.
func (e *LocalEmbedder) Dimensions() int {
	return e.config.Dimensions
}

// Close unloads the model.
func (e *LocalEmbedder) Close() error {
	e.client.Close()
	return nil
}
