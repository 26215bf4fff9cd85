package seed

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinegraph/cinegraph/pkg/driver"
)

func TestLoadEmbeddedDataset(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	assert.Len(t, ds.Films, 8)
	assert.Len(t, ds.Series, 5)
	assert.Len(t, ds.Actors, 12)
	assert.Len(t, ds.Directors, 8)
	assert.Len(t, ds.Genres, 7)

	assert.Equal(t, "Inception", ds.Films[0].Name)
	assert.Equal(t, 2010, ds.Films[0].Year)
	assert.Equal(t, "Leonardo DiCaprio", ds.Actors[0].Name)
}

func TestDatasetRelationshipsReferToKnownIDs(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	ids := make(map[string]struct{})
	for _, f := range ds.Films {
		ids[f.ID] = struct{}{}
	}
	for _, s := range ds.Series {
		ids[s.ID] = struct{}{}
	}
	for _, a := range ds.Actors {
		ids[a.ID] = struct{}{}
	}
	for _, d := range ds.Directors {
		ids[d.ID] = struct{}{}
	}
	for _, g := range ds.Genres {
		ids[g.ID] = struct{}{}
	}

	for _, app := range ds.Appearances {
		assert.Contains(t, ids, app.Actor)
		target := app.Film
		if app.Serie != "" {
			target = app.Serie
		}
		assert.Contains(t, ids, target)
	}
	for _, gm := range ds.GenreMemberships {
		assert.Contains(t, ids, gm.Genre)
	}
	for _, col := range ds.Collaborations {
		assert.Contains(t, ids, col.Actor)
		assert.Contains(t, ids, col.With)
	}
}

// recordingStore captures executed statements.
type recordingStore struct {
	execs []string
}

func (s *recordingStore) Query(ctx context.Context, cypher string, params map[string]any) ([]driver.Record, error) {
	return nil, nil
}
func (s *recordingStore) Exec(ctx context.Context, cypher string, params map[string]any) error {
	s.execs = append(s.execs, cypher)
	return nil
}
func (s *recordingStore) Stats(ctx context.Context) (*driver.Stats, error) {
	return &driver.Stats{CollectedAt: time.Now()}, nil
}
func (s *recordingStore) CreateConstraints(ctx context.Context) error { return nil }
func (s *recordingStore) CreateVectorIndex(ctx context.Context, name, label string, dims int) error {
	return nil
}
func (s *recordingStore) VerifyConnectivity(ctx context.Context) error { return nil }
func (s *recordingStore) Provider() driver.GraphProvider               { return driver.GraphProviderNeo4j }
func (s *recordingStore) Close(ctx context.Context) error              { return nil }

type countingEmbedder struct {
	calls int
}

func (e *countingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.1, 0.2}
	}
	e.calls += len(texts)
	return out, nil
}
func (e *countingEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	e.calls++
	return []float32{0.1, 0.2}, nil
}
func (e *countingEmbedder) Dimensions() int { return 2 }
func (e *countingEmbedder) Close() error    { return nil }

func TestSeederCreatesEveryNodeAndRelationship(t *testing.T) {
	store := &recordingStore{}
	emb := &countingEmbedder{}
	seeder := NewSeeder(store, emb, nil)

	require.NoError(t, seeder.Run(context.Background()))

	ds, err := Load()
	require.NoError(t, err)

	nodeCount := len(ds.Films) + len(ds.Series) + len(ds.Actors) + len(ds.Directors) + len(ds.Genres)
	relCount := len(ds.Appearances) + len(ds.Directions) + len(ds.GenreMemberships) + len(ds.Collaborations)

	// One clear statement, then one exec per node and per relationship.
	assert.Len(t, store.execs, 1+nodeCount+relCount)
	assert.Equal(t, nodeCount, emb.calls, "every node gets exactly one embedding")

	var creates, jouedans int
	for _, cypher := range store.execs {
		if strings.Contains(cypher, "CREATE") {
			creates++
		}
		if strings.Contains(cypher, "JOUE_DANS") {
			jouedans++
		}
	}
	assert.Equal(t, nodeCount+relCount, creates)
	assert.Equal(t, len(ds.Appearances), jouedans)
}

func TestSeederSkipsClearWhenDisabled(t *testing.T) {
	store := &recordingStore{}
	seeder := NewSeeder(store, &countingEmbedder{}, nil)
	seeder.ClearFirst = false

	require.NoError(t, seeder.Run(context.Background()))

	for _, cypher := range store.execs {
		assert.NotContains(t, cypher, "DETACH DELETE")
	}
}
