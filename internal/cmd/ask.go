package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sellerpulse/sellerpulse/internal/config"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the assistant one question about your reports",
	Long: `Load the configured order and inventory reports and answer a single
question with the configured assistant (AI-backed or rule-based).

Example:
  sellerpulse ask "What are my top selling products?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&ordersPath, "orders", "", "path to the order report (TSV)")
	askCmd.Flags().StringVar(&inventoryPath, "inventory", "", "path to the inventory report (TSV)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	orders, inventory, err := loadReports()
	if err != nil {
		return err
	}

	asst, err := buildAssistant(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up assistant: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	question := strings.Join(args, " ")
	fmt.Println(asst.Ask(ctx, question, orders, inventory, time.Now()))
	return nil
}
