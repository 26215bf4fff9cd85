package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinegraph/cinegraph/pkg/types"
)

func nodeWithEmbedding(name string, vec []float32) *types.Node {
	return &types.Node{
		Properties: map[string]any{"name": name},
		Embedding:  vec,
	}
}

func TestRankIdenticalVectorsScoreOne(t *testing.T) {
	ranker := NewRanker()
	query := []float32{0.6, 0.8, 0}

	results := ranker.Rank(query, []*types.Node{
		nodeWithEmbedding("same", []float32{0.6, 0.8, 0}),
	}, 5)

	require.Len(t, results, 1)
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)
	assert.Equal(t, types.SourceVector, results[0].Source)
}

func TestRankOrthogonalVectorsScoreZero(t *testing.T) {
	ranker := NewRanker()

	results := ranker.Rank([]float32{1, 0}, []*types.Node{
		nodeWithEmbedding("orthogonal", []float32{0, 1}),
	}, 5)

	require.Len(t, results, 1)
	assert.InDelta(t, 0.0, results[0].Score, 1e-6)
}

func TestRankOrdersDescendingAndCapsAtK(t *testing.T) {
	ranker := NewRanker()
	query := []float32{1, 0}

	results := ranker.Rank(query, []*types.Node{
		nodeWithEmbedding("far", []float32{0, 1}),
		nodeWithEmbedding("near", []float32{1, 0.1}),
		nodeWithEmbedding("exact", []float32{2, 0}),
	}, 2)

	require.Len(t, results, 2)
	assert.Equal(t, "exact", results[0].Node.Name())
	assert.Equal(t, "near", results[1].Node.Name())
}

func TestRankSkipsUnusableCandidates(t *testing.T) {
	ranker := NewRanker()
	query := []float32{1, 0}

	results := ranker.Rank(query, []*types.Node{
		nil,
		nodeWithEmbedding("no embedding", nil),
		nodeWithEmbedding("zero norm", []float32{0, 0}),
		nodeWithEmbedding("wrong dims", []float32{1, 0, 0}),
		nodeWithEmbedding("good", []float32{1, 0}),
	}, 10)

	require.Len(t, results, 1)
	assert.Equal(t, "good", results[0].Node.Name())
}

func TestRankTiesKeepEncounterOrder(t *testing.T) {
	ranker := NewRanker()
	query := []float32{1, 0}

	results := ranker.Rank(query, []*types.Node{
		nodeWithEmbedding("first", []float32{3, 0}),
		nodeWithEmbedding("second", []float32{5, 0}),
	}, 2)

	require.Len(t, results, 2)
	assert.Equal(t, "first", results[0].Node.Name())
	assert.Equal(t, "second", results[1].Node.Name())
}

func TestRankZeroNormQueryReturnsNothing(t *testing.T) {
	ranker := NewRanker()
	results := ranker.Rank([]float32{0, 0}, []*types.Node{
		nodeWithEmbedding("anything", []float32{1, 0}),
	}, 5)
	assert.Empty(t, results)
}
