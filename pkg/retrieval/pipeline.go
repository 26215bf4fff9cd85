package retrieval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cinegraph/cinegraph/pkg/driver"
	"github.com/cinegraph/cinegraph/pkg/embedder"
	"github.com/cinegraph/cinegraph/pkg/types"
)

// DefaultTopK bounds how many vector results feed into fusion.
const DefaultTopK = 5

// DefaultCandidateLimit bounds the embedded-node scan. The candidate scan
// loads every embedded node up to this cap and ranks in process, which works
// on any server version regardless of vector index support.
const DefaultCandidateLimit = 200

// Options tunes a retrieval pipeline.
type Options struct {
	TopK           int
	CandidateLimit int
	Logger         *slog.Logger
}

// Pipeline wires the ranker, router and fuser behind single retrieval calls.
// Safe for concurrent use: the store and embedder are shared collaborators
// and every call builds its own result state.
type Pipeline struct {
	store          driver.GraphStore
	embedder       embedder.Client
	ranker         *Ranker
	router         *Router
	fuser          *Fuser
	topK           int
	candidateLimit int
	logger         *slog.Logger
}

// NewPipeline creates a hybrid retrieval pipeline over the given store and
// embedder.
func NewPipeline(store driver.GraphStore, embedClient embedder.Client, opts Options) *Pipeline {
	if opts.TopK <= 0 {
		opts.TopK = DefaultTopK
	}
	if opts.CandidateLimit <= 0 {
		opts.CandidateLimit = DefaultCandidateLimit
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Pipeline{
		store:          store,
		embedder:       embedClient,
		ranker:         NewRanker(),
		router:         NewRouter(),
		fuser:          NewFuser(),
		topK:           opts.TopK,
		candidateLimit: opts.CandidateLimit,
		logger:         opts.Logger,
	}
}

// HybridRetrieve runs the full pipeline: embed the query, rank the embedded
// candidate nodes by cosine similarity, traverse via the routed pattern, and
// fuse both streams into one rendered context.
func (p *Pipeline) HybridRetrieve(ctx context.Context, query string) (*types.FusedContext, error) {
	vectorResults, err := p.VectorSearch(ctx, query, p.topK)
	if err != nil {
		return nil, err
	}

	traversalRecords, err := p.Traverse(ctx, query)
	if err != nil {
		return nil, err
	}

	fused := p.fuser.Fuse(vectorResults, traversalRecords)

	p.logger.Debug("hybrid retrieval complete",
		"query", query,
		"vector_count", fused.VectorCount,
		"traversal_count", fused.TraversalCount)

	return fused, nil
}

// VectorSearch embeds the query and ranks stored embedded nodes against it.
func (p *Pipeline) VectorSearch(ctx context.Context, query string, topK int) ([]types.RetrievalResult, error) {
	queryVec, err := p.embedder.EmbedSingle(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	cypher := fmt.Sprintf(`
		MATCH (n)
		WHERE n.embedding IS NOT NULL
		RETURN n
		LIMIT %d`, p.candidateLimit)

	records, err := p.store.Query(ctx, cypher, nil)
	if err != nil {
		return nil, fmt.Errorf("candidate scan failed: %w", err)
	}

	candidates := make([]*types.Node, 0, len(records))
	for _, record := range records {
		props, ok := record["n"].(map[string]any)
		if !ok {
			continue
		}
		candidates = append(candidates, types.NodeFromProperties(props))
	}

	return p.ranker.Rank(queryVec, candidates, topK), nil
}

// Traverse classifies the query and runs the routed traversal template. Used
// directly for the traversal-only retrieval path.
func (p *Pipeline) Traverse(ctx context.Context, query string) ([]driver.Record, error) {
	cypher, params := p.router.Route(query)

	records, err := p.store.Query(ctx, cypher, params)
	if err != nil {
		return nil, fmt.Errorf("traversal query failed: %w", err)
	}
	return records, nil
}
