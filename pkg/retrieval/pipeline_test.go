package retrieval

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinegraph/cinegraph/pkg/driver"
)

// fakeStore serves canned rows: the candidate scan returns embedded nodes,
// traversal templates return the traversal rows.
type fakeStore struct {
	embedded  []driver.Record
	traversal []driver.Record
	queries   []string
}

func (s *fakeStore) Query(ctx context.Context, cypher string, params map[string]any) ([]driver.Record, error) {
	s.queries = append(s.queries, cypher)
	if strings.Contains(cypher, "embedding IS NOT NULL") {
		return s.embedded, nil
	}
	return s.traversal, nil
}

func (s *fakeStore) Exec(ctx context.Context, cypher string, params map[string]any) error {
	return nil
}

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

// fixedEmbedder returns the same vector for every text.
type fixedEmbedder struct {
	vec []float32
}

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

func TestHybridRetrieveFusesBothPaths(t *testing.T) {
	store := &fakeStore{
		embedded: []driver.Record{
			{"n": map[string]any{"name": "Inception", "year": int64(2010), "embedding": []any{1.0, 0.0}}},
			{"n": map[string]any{"name": "Titanic", "year": int64(1997), "embedding": []any{0.0, 1.0}}},
		},
		traversal: []driver.Record{
			{"a": map[string]any{"name": "Leonardo DiCaprio", "nationality": "American"}},
		},
	}
	pipeline := NewPipeline(store, &fixedEmbedder{vec: []float32{1, 0}}, Options{TopK: 5})

	fused, err := pipeline.HybridRetrieve(context.Background(), "Who played in Inception?")
	require.NoError(t, err)

	assert.Equal(t, 2, fused.VectorCount)
	assert.Equal(t, 1, fused.TraversalCount)
	assert.Contains(t, fused.Context, "Film: Inception")
	assert.Contains(t, fused.Context, "Actor: Leonardo DiCaprio")

	// Inception is aligned with the query vector, so it ranks first.
	assert.Equal(t, "Inception", fused.Results[0].Node.Name())
}

func TestHybridRetrieveEmptyGraphYieldsSentinel(t *testing.T) {
	store := &fakeStore{}
	pipeline := NewPipeline(store, &fixedEmbedder{vec: []float32{1, 0}}, Options{})

	fused, err := pipeline.HybridRetrieve(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, NoContextSentinel, fused.Context)
}

func TestVectorSearchRespectsTopK(t *testing.T) {
	store := &fakeStore{
		embedded: []driver.Record{
			{"n": map[string]any{"name": "a", "embedding": []any{1.0, 0.0}}},
			{"n": map[string]any{"name": "b", "embedding": []any{1.0, 0.1}}},
			{"n": map[string]any{"name": "c", "embedding": []any{1.0, 0.2}}},
		},
	}
	pipeline := NewPipeline(store, &fixedEmbedder{vec: []float32{1, 0}}, Options{})

	results, err := pipeline.VectorSearch(context.Background(), "query", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestTraverseUsesRoutedTemplate(t *testing.T) {
	store := &fakeStore{}
	pipeline := NewPipeline(store, &fixedEmbedder{vec: []float32{1, 0}}, Options{})

	_, err := pipeline.Traverse(context.Background(), "Who directed Interstellar?")
	require.NoError(t, err)
	require.Len(t, store.queries, 1)
	assert.Contains(t, store.queries[0], "REALISE")
}

func TestCandidateScanIsCapped(t *testing.T) {
	store := &fakeStore{}
	pipeline := NewPipeline(store, &fixedEmbedder{vec: []float32{1, 0}}, Options{CandidateLimit: 50})

	_, err := pipeline.VectorSearch(context.Background(), "query", 5)
	require.NoError(t, err)
	require.Len(t, store.queries, 1)
	assert.Contains(t, store.queries[0], "LIMIT 50")
}
