package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sellerpulse",
	Short: "SellerPulse - Amazon seller analytics and AI assistant",
	Long: `SellerPulse turns raw Amazon order and inventory reports into sales and
stock analytics, and answers questions about them through an AI assistant
or a built-in rule-based one.

Run it as a server for the dashboard API, or use the CLI commands to
analyze report files directly.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
