package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sellerpulse/sellerpulse/internal/analyze"
	"github.com/sellerpulse/sellerpulse/internal/report"
)

const fallbackAnswer = "I'm sorry, I don't understand that question. Please try one of the suggested questions or rephrase your query."

// RuleAssistant answers questions by keyword matching against a fixed set
// of intents. It needs no credentials and no network.
type RuleAssistant struct{}

func NewRuleAssistant() *RuleAssistant {
	return &RuleAssistant{}
}

// Ask matches the lower-cased question against the intent list in order;
// the first hit wins. Unmatched questions get the fixed fallback reply.
func (a *RuleAssistant) Ask(_ context.Context, question string, orders []report.OrderRecord, inventory []report.InventoryItem, now time.Time) string {
	shipped, cancelled := analyze.Partition(orders)
	q := strings.ToLower(question)

	switch {
	case strings.Contains(q, "top selling"):
		return a.topSellingAnswer(shipped)
	case strings.Contains(q, "low in stock"):
		return a.lowStockAnswer(inventory)
	case strings.Contains(q, "revenue"):
		return a.revenueAnswer(shipped, now)
	case strings.Contains(q, "cancelled"):
		return a.cancelledAnswer(cancelled)
	default:
		return fallbackAnswer
	}
}

func (a *RuleAssistant) topSellingAnswer(shipped []report.OrderRecord) string {
	totals := analyze.ProductTotals(shipped)
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Units > totals[j].Units
	})
	if len(totals) > 3 {
		totals = totals[:3]
	}

	lines := make([]string, 0, len(totals))
	for i, p := range totals {
		lines = append(lines, fmt.Sprintf("%d. %s (%s): %d units sold - %s",
			i+1, p.Name, p.ASIN, p.Units, analyze.FormatINR(p.Revenue)))
	}
	return "Here are your top 3 selling products:\n" + strings.Join(lines, "\n")
}

func (a *RuleAssistant) lowStockAnswer(inventory []report.InventoryItem) string {
	low := analyze.LowStock(inventory, analyze.LowStockThreshold)

	sampled := low
	if len(sampled) > 3 {
		sampled = sampled[:3]
	}
	lines := make([]string, 0, len(sampled))
	for _, item := range sampled {
		lines = append(lines, fmt.Sprintf("- %s (%s): %d units remaining",
			item.ProductName, item.ASIN, item.Quantity))
	}
	return fmt.Sprintf("You have %d items that are low in stock (less than 10 units).\n%s",
		len(low), strings.Join(lines, "\n"))
}

func (a *RuleAssistant) revenueAnswer(shipped []report.OrderRecord, now time.Time) string {
	weekRevenue := analyze.RevenueSince(shipped, now, 7)
	return fmt.Sprintf("Your total revenue for this week is %s", analyze.FormatINR(weekRevenue))
}

func (a *RuleAssistant) cancelledAnswer(cancelled []report.OrderRecord) string {
	reasons := analyze.TopCancellationReasons(cancelled, 3)

	lines := make([]string, 0, len(reasons))
	for _, r := range reasons {
		lines = append(lines, fmt.Sprintf("- %s: %d orders", r.Reason, r.Count))
	}
	return fmt.Sprintf("You have %d cancelled orders.\nTop cancellation reasons:\n%s",
		len(cancelled), strings.Join(lines, "\n"))
}

// Compile-time interface check
var _ Assistant = (*RuleAssistant)(nil)
