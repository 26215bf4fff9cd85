package embedder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingClient records how many texts reached the real embedder.
type countingClient struct {
	calls int
	texts int
	dims  int
}

func (c *countingClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	c.calls++
	c.texts += len(texts)
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, c.dims)
		for j := range vec {
			vec[j] = float32(len(text) + j)
		}
		out[i] = vec
	}
	return out, nil
}

func (c *countingClient) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := c.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

func (c *countingClient) Dimensions() int { return c.dims }
func (c *countingClient) Close() error    { return nil }

func newTestCache(t *testing.T, inner Client) *CachedClient {
	t.Helper()
	cache, err := NewCachedClient(inner, "", "test-model", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestCachedClientServesRepeatsFromCache(t *testing.T) {
	inner := &countingClient{dims: 4}
	cache := newTestCache(t, inner)
	ctx := context.Background()

	first, err := cache.EmbedSingle(ctx, "Who directed Inception?")
	require.NoError(t, err)

	second, err := cache.EmbedSingle(ctx, "Who directed Inception?")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls, "second call should be a cache hit")
}

func TestCachedClientBatchesOnlyMisses(t *testing.T) {
	inner := &countingClient{dims: 4}
	cache := newTestCache(t, inner)
	ctx := context.Background()

	_, err := cache.Embed(ctx, []string{"alpha", "beta"})
	require.NoError(t, err)

	out, err := cache.Embed(ctx, []string{"alpha", "gamma", "beta"})
	require.NoError(t, err)

	require.Len(t, out, 3)
	for _, vec := range out {
		assert.Len(t, vec, 4)
	}
	assert.Equal(t, 3, inner.texts, "only gamma should miss on the second batch")
}

func TestCachedClientPreservesInputOrder(t *testing.T) {
	inner := &countingClient{dims: 2}
	cache := newTestCache(t, inner)
	ctx := context.Background()

	// "abc" and "abcdef" produce distinct vectors from the counting client.
	_, err := cache.EmbedSingle(ctx, "abcdef")
	require.NoError(t, err)

	out, err := cache.Embed(ctx, []string{"abc", "abcdef"})
	require.NoError(t, err)

	assert.Equal(t, float32(3), out[0][0])
	assert.Equal(t, float32(6), out[1][0])
}

func TestCachedClientDimensionsDelegates(t *testing.T) {
	inner := &countingClient{dims: 384}
	cache := newTestCache(t, inner)
	assert.Equal(t, 384, cache.Dimensions())
}

func TestFirstEmbedding(t *testing.T) {
	vec, err := firstEmbedding([][]float32{{1, 2}, {3, 4}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, vec)

	_, err = firstEmbedding(nil, nil)
	assert.ErrorContains(t, err, "no embeddings returned")

	_, err = firstEmbedding(nil, context.Canceled)
	assert.ErrorIs(t, err, context.Canceled)
}
