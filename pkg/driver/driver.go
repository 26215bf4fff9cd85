package driver

import (
	"context"
	"time"
)

// GraphProvider represents the type of graph database provider.
type GraphProvider string

const (
	// GraphProviderNeo4j identifies the Neo4j driver.
	GraphProviderNeo4j GraphProvider = "neo4j"
)

// Record is one result row: a mapping from bound-variable name to a value.
// Node-shaped values are already normalised to flat property maps
// (map[string]any); path values to slices of such maps.
type Record map[string]any

// GraphStore defines read and maintenance operations over the knowledge
// graph. Implementations must tolerate concurrent invocation; the Neo4j
// implementation acquires a fresh session per call.
type GraphStore interface {
	// Query executes a read query. It returns an empty slice both on no
	// matches and on non-fatal query failure; store errors at this boundary
	// are logged, not surfaced.
	Query(ctx context.Context, cypher string, params map[string]any) ([]Record, error)

	// Exec executes a write statement and surfaces its error. Used only by
	// setup/seeding; the core never mutates the graph.
	Exec(ctx context.Context, cypher string, params map[string]any) error

	// Stats returns metadata about the graph.
	Stats(ctx context.Context) (*Stats, error)

	// CreateConstraints creates uniqueness constraints for the film schema.
	CreateConstraints(ctx context.Context) error

	// CreateVectorIndex creates a cosine vector index over stored embeddings.
	// Older server versions without vector index support report an error.
	CreateVectorIndex(ctx context.Context, name, label string, dimensions int) error

	// VerifyConnectivity checks that the store is reachable. Fatal at
	// startup when it fails.
	VerifyConnectivity(ctx context.Context) error

	// Provider reports which database backs this store.
	Provider() GraphProvider

	// Close releases the underlying connection pool.
	Close(ctx context.Context) error
}

// Stats holds metadata about the knowledge graph.
type Stats struct {
	NodeCount         int64     `json:"node_count"`
	RelationshipCount int64     `json:"relationship_count"`
	NodeLabels        []string  `json:"node_types"`
	RelationshipTypes []string  `json:"relationship_types"`
	CollectedAt       time.Time `json:"collected_at"`
}
