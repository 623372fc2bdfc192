package cmd

import (
	"fmt"

	"github.com/sellerpulse/sellerpulse/internal/assistant"
	"github.com/sellerpulse/sellerpulse/internal/config"
	"github.com/sellerpulse/sellerpulse/internal/llm"
	"github.com/sellerpulse/sellerpulse/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SellerPulse server",
	Long: `Start the SellerPulse server which provides:
- TSV report upload endpoints for orders and inventory
- Dashboard metrics as JSON
- A chat endpoint backed by the configured assistant`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	fmt.Println("🚀 SellerPulse Starting...")

	fmt.Println("📝 Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	asst, err := buildAssistant(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up assistant: %w", err)
	}

	fmt.Println("⚙️  Setting up server...")
	srv := server.NewServer(asst)

	fmt.Printf("🌐 Starting server on %s...\n", cfg.Server.Addr)
	if err := srv.Start(cfg.Server.Addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// buildAssistant selects the answering strategy from configuration. The
// rule-based assistant needs no provider; the AI one gets its generator
// here, credentials resolved once at construction.
func buildAssistant(cfg *config.Config) (assistant.Assistant, error) {
	switch cfg.Assistant.Mode {
	case "rules":
		return assistant.NewRuleAssistant(), nil
	case "ai":
		generator, err := llm.NewGenerator(&cfg.Assistant.Generator)
		if err != nil {
			return nil, err
		}
		fmt.Printf("🤖 Using %s assistant (%s)\n", cfg.Assistant.Generator.Provider, generator.Model())
		return assistant.NewAIAssistant(generator), nil
	default:
		return nil, fmt.Errorf("unsupported assistant mode: %s", cfg.Assistant.Mode)
	}
}
