package cinegraph

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cinegraph/cinegraph/pkg/config"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question and print the answer",
	Long: `Ask a natural-language question over the knowledge graph without
starting the HTTP server. The full agent stack is wired for one query.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var askShowSteps bool

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().BoolVar(&askShowSteps, "steps", false, "Print the agent's tool-selection steps")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	agent, err := initializeAgent(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize cinegraph: %w", err)
	}
	defer agent.Close(ctx)

	query := strings.Join(args, " ")
	resp, err := agent.Ask(ctx, query)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	fmt.Println(resp.Response)
	if len(resp.ToolsUsed) > 0 {
		fmt.Printf("\nTools used: %s\n", strings.Join(resp.ToolsUsed, ", "))
	}
	if askShowSteps {
		for i, step := range resp.Steps {
			fmt.Printf("Step %d [%s]: %s (%s)\n", i+1, step.Step, strings.Join(step.Tools, ", "), step.Reasoning)
		}
	}
	return nil
}
