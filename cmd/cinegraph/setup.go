package cinegraph

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cinegraph/cinegraph/pkg/config"
	"github.com/cinegraph/cinegraph/pkg/seed"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Initialize the knowledge graph with the sample film dataset",
	Long: `Create schema constraints, load the embedded sample dataset (films, series,
actors, directors, genres and their relationships) with embeddings, and
create the vector index.`,
	RunE: runSetup,
}

var setupKeepExisting bool

func init() {
	rootCmd.AddCommand(setupCmd)
	setupCmd.Flags().BoolVar(&setupKeepExisting, "keep-existing", false, "Keep existing graph data instead of clearing it first")
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	store, err := newStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	embedClient, err := newEmbedder(cfg, logger)
	if err != nil {
		return err
	}
	defer embedClient.Close()

	seeder := seed.NewSeeder(store, embedClient, logger)
	seeder.ClearFirst = !setupKeepExisting

	logger.Info("setting up knowledge graph")
	if err := seeder.Run(ctx); err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to read graph stats: %w", err)
	}

	fmt.Println("\nGraph statistics:")
	fmt.Printf("  Nodes: %d\n", stats.NodeCount)
	fmt.Printf("  Relationships: %d\n", stats.RelationshipCount)
	fmt.Printf("  Node types: %v\n", stats.NodeLabels)
	fmt.Printf("  Relationship types: %v\n", stats.RelationshipTypes)
	fmt.Println("\nGraph setup complete.")
	return nil
}
