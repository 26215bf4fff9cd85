// Package seed loads the embedded sample dataset into the knowledge graph:
// films, series, actors, directors and genres, plus the four relationship
// kinds connecting them. Seeding is a CLI-only concern; the core never
// mutates the graph.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/cinegraph/cinegraph/pkg/driver"
	"github.com/cinegraph/cinegraph/pkg/embedder"
)

//go:embed dataset.yaml
var datasetYAML []byte

// Dataset is the embedded sample knowledge graph.
type Dataset struct {
	Films     []Film     `yaml:"films"`
	Series    []Serie    `yaml:"series"`
	Actors    []Person   `yaml:"actors"`
	Directors []Person   `yaml:"directors"`
	Genres    []Genre    `yaml:"genres"`

	Appearances      []Appearance      `yaml:"appearances"`
	Directions       []Direction       `yaml:"directions"`
	GenreMemberships []GenreMembership `yaml:"genre_memberships"`
	Collaborations   []Collaboration   `yaml:"collaborations"`
}

// Film is one film row.
type Film struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	Year     int     `yaml:"year"`
	Duration int     `yaml:"duration"`
	Rating   float64 `yaml:"rating"`
}

// Serie is one series row.
type Serie struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	Seasons  int     `yaml:"seasons"`
	Episodes int     `yaml:"episodes"`
	Rating   float64 `yaml:"rating"`
}

// Person is an actor or director row.
type Person struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Nationality string `yaml:"nationality"`
	Born        int    `yaml:"born"`
}

// Genre is one genre row.
type Genre struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Appearance links an actor to a film or serie (exactly one set).
type Appearance struct {
	Actor string `yaml:"actor"`
	Film  string `yaml:"film,omitempty"`
	Serie string `yaml:"serie,omitempty"`
}

// Direction links a director to a film or serie (exactly one set).
type Direction struct {
	Director string `yaml:"director"`
	Film     string `yaml:"film,omitempty"`
	Serie    string `yaml:"serie,omitempty"`
}

// GenreMembership links a film or serie to a genre.
type GenreMembership struct {
	Film  string `yaml:"film,omitempty"`
	Serie string `yaml:"serie,omitempty"`
	Genre string `yaml:"genre"`
}

// Collaboration links two actors who appeared together.
type Collaboration struct {
	Actor string `yaml:"actor"`
	With  string `yaml:"with"`
}

// Load parses the embedded dataset.
func Load() (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(datasetYAML, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse embedded dataset: %w", err)
	}
	return &ds, nil
}

// Seeder writes the dataset into a graph store, embedding each node's
// descriptive text along the way.
type Seeder struct {
	store    driver.GraphStore
	embedder embedder.Client
	logger   *slog.Logger

	// ClearFirst removes all existing nodes and relationships before
	// seeding.
	ClearFirst bool
	// VectorIndexName names the cosine index created over node embeddings.
	VectorIndexName string
}

// NewSeeder creates a seeder over the given store and embedder.
func NewSeeder(store driver.GraphStore, embedClient embedder.Client, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		store:           store,
		embedder:        embedClient,
		logger:          logger,
		ClearFirst:      true,
		VectorIndexName: "node_embeddings",
	}
}

// Run seeds the graph: constraints, nodes with embeddings, relationships,
// and finally the vector index. Vector index failure is non-fatal; older
// server versions simply fall back to the in-process candidate scan.
func (s *Seeder) Run(ctx context.Context) error {
	ds, err := Load()
	if err != nil {
		return err
	}

	s.logger.Info("creating schema constraints")
	if err := s.store.CreateConstraints(ctx); err != nil {
		return fmt.Errorf("failed to create constraints: %w", err)
	}

	if s.ClearFirst {
		s.logger.Info("clearing existing data")
		if err := s.store.Exec(ctx, "MATCH (n) DETACH DELETE n", nil); err != nil {
			return fmt.Errorf("failed to clear graph: %w", err)
		}
	}

	if err := s.createNodes(ctx, ds); err != nil {
		return err
	}
	if err := s.createRelationships(ctx, ds); err != nil {
		return err
	}

	dims := s.embedder.Dimensions()
	if err := s.store.CreateVectorIndex(ctx, s.VectorIndexName, "Film", dims); err != nil {
		s.logger.Warn("vector index creation skipped", "error", err)
	}

	s.logger.Info("seeding complete")
	return nil
}

func (s *Seeder) createNodes(ctx context.Context, ds *Dataset) error {
	s.logger.Info("creating nodes",
		"films", len(ds.Films),
		"series", len(ds.Series),
		"actors", len(ds.Actors),
		"directors", len(ds.Directors),
		"genres", len(ds.Genres))

	for _, f := range ds.Films {
		embedding, err := s.embedText(ctx, fmt.Sprintf("%s film %d", f.Name, f.Year))
		if err != nil {
			return err
		}
		err = s.store.Exec(ctx, `
			CREATE (f:Film {id: $id, name: $name, year: $year, duration: $duration, rating: $rating, embedding: $embedding})`,
			map[string]any{
				"id": f.ID, "name": f.Name, "year": f.Year,
				"duration": f.Duration, "rating": f.Rating, "embedding": embedding,
			})
		if err != nil {
			return fmt.Errorf("failed to create film %q: %w", f.ID, err)
		}
	}

	for _, sr := range ds.Series {
		embedding, err := s.embedText(ctx, fmt.Sprintf("%s series %d seasons", sr.Name, sr.Seasons))
		if err != nil {
			return err
		}
		err = s.store.Exec(ctx, `
			CREATE (s:Serie {id: $id, name: $name, seasons: $seasons, episodes: $episodes, rating: $rating, embedding: $embedding})`,
			map[string]any{
				"id": sr.ID, "name": sr.Name, "seasons": sr.Seasons,
				"episodes": sr.Episodes, "rating": sr.Rating, "embedding": embedding,
			})
		if err != nil {
			return fmt.Errorf("failed to create serie %q: %w", sr.ID, err)
		}
	}

	for _, a := range ds.Actors {
		embedding, err := s.embedText(ctx, fmt.Sprintf("%s actor %s", a.Name, a.Nationality))
		if err != nil {
			return err
		}
		err = s.store.Exec(ctx, `
			CREATE (a:Actor {id: $id, name: $name, nationality: $nationality, born: $born, embedding: $embedding})`,
			map[string]any{
				"id": a.ID, "name": a.Name, "nationality": a.Nationality,
				"born": a.Born, "embedding": embedding,
			})
		if err != nil {
			return fmt.Errorf("failed to create actor %q: %w", a.ID, err)
		}
	}

	for _, d := range ds.Directors {
		embedding, err := s.embedText(ctx, fmt.Sprintf("%s director %s", d.Name, d.Nationality))
		if err != nil {
			return err
		}
		err = s.store.Exec(ctx, `
			CREATE (d:Director {id: $id, name: $name, nationality: $nationality, born: $born, embedding: $embedding})`,
			map[string]any{
				"id": d.ID, "name": d.Name, "nationality": d.Nationality,
				"born": d.Born, "embedding": embedding,
			})
		if err != nil {
			return fmt.Errorf("failed to create director %q: %w", d.ID, err)
		}
	}

	for _, g := range ds.Genres {
		embedding, err := s.embedText(ctx, fmt.Sprintf("%s genre", g.Name))
		if err != nil {
			return err
		}
		err = s.store.Exec(ctx, `
			CREATE (g:Genre {id: $id, name: $name, embedding: $embedding})`,
			map[string]any{"id": g.ID, "name": g.Name, "embedding": embedding})
		if err != nil {
			return fmt.Errorf("failed to create genre %q: %w", g.ID, err)
		}
	}

	return nil
}

func (s *Seeder) createRelationships(ctx context.Context, ds *Dataset) error {
	s.logger.Info("creating relationships")

	for _, app := range ds.Appearances {
		targetLabel, targetID := "Film", app.Film
		if app.Serie != "" {
			targetLabel, targetID = "Serie", app.Serie
		}
		cypher := fmt.Sprintf(`
			MATCH (a:Actor {id: $actor}), (t:%s {id: $target})
			CREATE (a)-[:JOUE_DANS]->(t)`, targetLabel)
		if err := s.store.Exec(ctx, cypher, map[string]any{"actor": app.Actor, "target": targetID}); err != nil {
			return fmt.Errorf("failed to link actor %q to %q: %w", app.Actor, targetID, err)
		}
	}

	for _, dir := range ds.Directions {
		targetLabel, targetID := "Film", dir.Film
		if dir.Serie != "" {
			targetLabel, targetID = "Serie", dir.Serie
		}
		cypher := fmt.Sprintf(`
			MATCH (d:Director {id: $director}), (t:%s {id: $target})
			CREATE (d)-[:REALISE]->(t)`, targetLabel)
		if err := s.store.Exec(ctx, cypher, map[string]any{"director": dir.Director, "target": targetID}); err != nil {
			return fmt.Errorf("failed to link director %q to %q: %w", dir.Director, targetID, err)
		}
	}

	for _, gm := range ds.GenreMemberships {
		sourceLabel, sourceID := "Film", gm.Film
		if gm.Serie != "" {
			sourceLabel, sourceID = "Serie", gm.Serie
		}
		cypher := fmt.Sprintf(`
			MATCH (c:%s {id: $source}), (g:Genre {id: $genre})
			CREATE (c)-[:APPARTIENT_A_GENRE]->(g)`, sourceLabel)
		if err := s.store.Exec(ctx, cypher, map[string]any{"source": sourceID, "genre": gm.Genre}); err != nil {
			return fmt.Errorf("failed to link %q to genre %q: %w", sourceID, gm.Genre, err)
		}
	}

	for _, col := range ds.Collaborations {
		err := s.store.Exec(ctx, `
			MATCH (a1:Actor {id: $actor}), (a2:Actor {id: $with})
			CREATE (a1)-[:A_JOUÉ_AVEC]->(a2)`,
			map[string]any{"actor": col.Actor, "with": col.With})
		if err != nil {
			return fmt.Errorf("failed to link actors %q and %q: %w", col.Actor, col.With, err)
		}
	}

	return nil
}

func (s *Seeder) embedText(ctx context.Context, text string) ([]float32, error) {
	embedding, err := s.embedder.EmbedSingle(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed %q: %w", text, err)
	}
	return embedding, nil
}
