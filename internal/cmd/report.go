package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sellerpulse/sellerpulse/internal/analyze"
	"github.com/sellerpulse/sellerpulse/internal/config"
	"github.com/sellerpulse/sellerpulse/internal/report"
	"github.com/spf13/cobra"
)

var (
	ordersPath    string
	inventoryPath string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the dashboard summary for a pair of TSV reports",
	Long: `Parse an order report and an inventory report and print the derived
analytics: revenue, sales windows, stock runway, reorder suggestions,
cancellations and trends.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&ordersPath, "orders", "", "path to the order report (TSV)")
	reportCmd.Flags().StringVar(&inventoryPath, "inventory", "", "path to the inventory report (TSV)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	orders, inventory, err := loadReports()
	if err != nil {
		return err
	}

	ov := analyze.BuildOverview(orders, inventory, time.Now())

	fmt.Println("📦 Orders")
	fmt.Printf("   Total: %d  Shipped: %d  Cancelled: %d (%.1f%%)\n",
		ov.TotalOrders, ov.ShippedOrders, ov.CancelledOrders, ov.CancellationRate)
	fmt.Printf("   Revenue: %s  Avg order: %s  Last 7d: %s\n",
		analyze.FormatINR(ov.TotalRevenue), analyze.FormatINR(ov.AvgOrderValue), analyze.FormatINR(ov.Last7DayRevenue))
	fmt.Printf("   %d items across %d unique products\n", ov.TotalUnits, ov.UniqueProducts)

	fmt.Println("🏷️  Inventory")
	fmt.Printf("   SKUs: %d  Units: %d  Value: %s\n",
		ov.TotalSKUs, ov.InventoryUnits, analyze.FormatINR(ov.InventoryValue))
	fmt.Printf("   Low stock: %d (%d critical)  Stagnant: %d\n",
		ov.LowStockCount, ov.CriticalCount, ov.StagnantCount)
	fmt.Printf("   30-day turnover: %.1f%% (%s)\n", ov.TurnoverRate, ov.TurnoverRating)

	fmt.Println("🔥 Top sellers (30 days)")
	for i, p := range ov.TopSelling {
		fmt.Printf("   %d. %s (%s): %d units, %d in stock\n", i+1, p.Name, p.ASIN, p.UnitsSold30, p.Stock)
	}

	if len(ov.Reorders) > 0 {
		fmt.Printf("⚠️  %d items need replenishment in the next %d days\n", len(ov.Reorders), analyze.RunwayThresholdDays)
		for _, r := range ov.Reorders {
			days := fmt.Sprintf("%d days left", r.DaysRemaining)
			fmt.Printf("   %s (%s): stock %d, %s, order %d\n", r.Name, r.ASIN, r.CurrentStock, days, r.SuggestedOrder)
		}
	} else {
		fmt.Println("✅ No reorders needed")
	}

	fmt.Printf("📈 Weekly growth: %+.1f%%\n", ov.WeeklyGrowth)

	return nil
}

// loadReports reads the order and inventory TSV files, falling back to the
// configured default paths when flags are not set.
func loadReports() ([]report.OrderRecord, []report.InventoryItem, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if ordersPath == "" {
		ordersPath = cfg.Reports.Orders
	}
	if inventoryPath == "" {
		inventoryPath = cfg.Reports.Inventory
	}

	ordersText, err := os.ReadFile(ordersPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read order report: %w", err)
	}
	inventoryText, err := os.ReadFile(inventoryPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read inventory report: %w", err)
	}

	orders := report.OrdersFromRecords(report.ParseReport(string(ordersText)))
	items := report.ItemsFromRecords(report.ParseReport(string(inventoryText)))
	return orders, items, nil
}
