package retrieval

import (
	"math"
	"sort"

	"github.com/cinegraph/cinegraph/pkg/types"
)

// Ranker orders candidate nodes by cosine similarity to a query vector.
type Ranker struct{}

// NewRanker creates a similarity ranker.
func NewRanker() *Ranker {
	return &Ranker{}
}

// Rank scores candidates against the query vector and returns at most k
// results, best first. Candidates with no embedding, a zero-norm embedding,
// or a dimensionality mismatch are skipped rather than erroring. Ties keep
// encounter order.
func (r *Ranker) Rank(queryVec []float32, candidates []*types.Node, k int) []types.RetrievalResult {
	if k <= 0 || len(queryVec) == 0 {
		return nil
	}

	queryNorm := norm(queryVec)
	if queryNorm == 0 {
		return nil
	}

	results := make([]types.RetrievalResult, 0, len(candidates))
	for _, node := range candidates {
		if node == nil || len(node.Embedding) != len(queryVec) {
			continue
		}

		nodeNorm := norm(node.Embedding)
		if nodeNorm == 0 {
			continue
		}

		results = append(results, types.RetrievalResult{
			Node:   node,
			Score:  dot(queryVec, node.Embedding) / (queryNorm * nodeNorm),
			Source: types.SourceVector,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}
