package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jStore implements the GraphStore interface for Neo4j databases.
type Neo4jStore struct {
	client   neo4j.DriverWithContext
	database string
	logger   *slog.Logger
}

// NewNeo4jStore creates a new Neo4j store. The connection pool is shared;
// each call acquires its own session, so the store is safe for concurrent
// use across queries.
func NewNeo4jStore(uri, username, password, database string, logger *slog.Logger) (*Neo4jStore, error) {
	client, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	if database == "" {
		database = "neo4j"
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Neo4jStore{
		client:   client,
		database: database,
		logger:   logger,
	}, nil
}

// Query executes a read query and normalises every bound value. Non-fatal
// query failures are logged and produce an empty record set, so callers see
// "no results" rather than an error they would have to swallow themselves.
func (s *Neo4jStore) Query(ctx context.Context, cypher string, params map[string]any) ([]Record, error) {
	session := s.client.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: s.database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		s.logger.Warn("graph query failed, returning empty result set", "error", err)
		return []Record{}, nil
	}

	records, ok := result.([]*neo4j.Record)
	if !ok {
		s.logger.Warn("unexpected record collection type", "type", fmt.Sprintf("%T", result))
		return []Record{}, nil
	}

	out := make([]Record, 0, len(records))
	for _, rec := range records {
		row := make(Record, len(rec.Keys))
		for k, v := range rec.AsMap() {
			row[k] = NormalizeValue(v)
		}
		out = append(out, row)
	}
	return out, nil
}

// Exec executes a write statement.
func (s *Neo4jStore) Exec(ctx context.Context, cypher string, params map[string]any) error {
	session := s.client.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: s.database,
		AccessMode:   neo4j.AccessModeWrite,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		return nil, res.Err()
	})
	if err != nil {
		return fmt.Errorf("write statement failed: %w", err)
	}
	return nil
}

// Stats returns node/relationship counts and the label sets.
func (s *Neo4jStore) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{CollectedAt: time.Now().UTC()}

	if records, _ := s.Query(ctx, "MATCH (n) RETURN count(n) AS count", nil); len(records) > 0 {
		if c, ok := records[0]["count"].(int64); ok {
			stats.NodeCount = c
		}
	}
	if records, _ := s.Query(ctx, "MATCH ()-[r]->() RETURN count(r) AS count", nil); len(records) > 0 {
		if c, ok := records[0]["count"].(int64); ok {
			stats.RelationshipCount = c
		}
	}
	if records, _ := s.Query(ctx, "CALL db.labels() YIELD label RETURN collect(label) AS labels", nil); len(records) > 0 {
		stats.NodeLabels = toStringSlice(records[0]["labels"])
	}
	if records, _ := s.Query(ctx, "CALL db.relationshipTypes() YIELD relationshipType RETURN collect(relationshipType) AS types", nil); len(records) > 0 {
		stats.RelationshipTypes = toStringSlice(records[0]["types"])
	}

	return stats, nil
}

// filmSchemaConstraints are the uniqueness constraints for the film ontology.
var filmSchemaConstraints = []string{
	"CREATE CONSTRAINT actor_id IF NOT EXISTS FOR (a:Actor) REQUIRE a.id IS UNIQUE",
	"CREATE CONSTRAINT director_id IF NOT EXISTS FOR (d:Director) REQUIRE d.id IS UNIQUE",
	"CREATE CONSTRAINT film_id IF NOT EXISTS FOR (f:Film) REQUIRE f.id IS UNIQUE",
	"CREATE CONSTRAINT serie_id IF NOT EXISTS FOR (s:Serie) REQUIRE s.id IS UNIQUE",
	"CREATE CONSTRAINT genre_id IF NOT EXISTS FOR (g:Genre) REQUIRE g.id IS UNIQUE",
}

// CreateConstraints creates the uniqueness constraints. Individual failures
// (typically "already exists" on older servers) are logged and skipped.
func (s *Neo4jStore) CreateConstraints(ctx context.Context) error {
	for _, constraint := range filmSchemaConstraints {
		if err := s.Exec(ctx, constraint, nil); err != nil {
			s.logger.Warn("constraint creation skipped", "error", err)
		}
	}
	return nil
}

// CreateVectorIndex creates a cosine vector index over node embeddings.
func (s *Neo4jStore) CreateVectorIndex(ctx context.Context, name, label string, dimensions int) error {
	cypher := fmt.Sprintf(`
		CREATE VECTOR INDEX %s IF NOT EXISTS
		FOR (n:%s)
		ON n.embedding
		OPTIONS {
			indexConfig: {
				`+"`vector.dimensions`"+`: %d,
				`+"`vector.similarity_function`"+`: 'cosine'
			}
		}
	`, name, label, dimensions)

	if err := s.Exec(ctx, cypher, nil); err != nil {
		return fmt.Errorf("vector index creation failed (requires Neo4j 5.11+): %w", err)
	}
	return nil
}

// VerifyConnectivity checks that the database is reachable.
func (s *Neo4jStore) VerifyConnectivity(ctx context.Context) error {
	if err := s.client.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("neo4j unreachable: %w", err)
	}
	return nil
}

// Provider implements GraphStore.
func (s *Neo4jStore) Provider() GraphProvider {
	return GraphProviderNeo4j
}

// Close releases the connection pool.
func (s *Neo4jStore) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}

func toStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if str, ok := item.(string); ok {
			out = append(out, str)
		}
	}
	return out
}
