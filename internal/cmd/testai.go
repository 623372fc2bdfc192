package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/sellerpulse/sellerpulse/internal/config"
	"github.com/sellerpulse/sellerpulse/internal/llm"
	"github.com/spf13/cobra"
)

var testAICmd = &cobra.Command{
	Use:   "test-ai",
	Short: "Test the AI completion provider connection",
	Long: `Test the configured completion provider. This helps verify API keys and
connectivity before switching the assistant to AI mode.`,
	RunE: testAIProvider,
}

func init() {
	rootCmd.AddCommand(testAICmd)
}

func testAIProvider(cmd *cobra.Command, args []string) error {
	fmt.Println("🧪 Testing AI provider connection...")

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Printf("🤖 Testing generator (%s/%s)...\n", cfg.Assistant.Generator.Provider, cfg.Assistant.Generator.Model)
	generator, err := llm.NewGenerator(&cfg.Assistant.Generator)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}

	response, err := generator.Complete(ctx, "What are my top 3 selling products?", map[string]any{
		"max_tokens": 200,
	})
	if err != nil {
		return fmt.Errorf("failed to generate response: %w", err)
	}

	fmt.Printf("   ✅ Generated response: %s\n", response)
	fmt.Println("\n🎉 AI provider is working correctly!")
	return nil
}
