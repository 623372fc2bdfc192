package analyze

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sellerpulse/sellerpulse/internal/report"
)

const sampleSize = 3

// ContextBuilder renders the business snapshot into the system context
// string handed to the completion API. The text is opaque to the model
// side: nothing downstream parses it back.
type ContextBuilder struct{}

func NewContextBuilder() *ContextBuilder {
	return &ContextBuilder{}
}

// BuildChatContext assembles the assistant system prompt: role
// instructions, summary metrics, and literal samples of the raw records.
// Currency is written as a rupee sign with plain two-decimal numbers so
// the model sees unambiguous values.
func (cb *ContextBuilder) BuildChatContext(orders []report.OrderRecord, inventory []report.InventoryItem, now time.Time) string {
	shipped, cancelled := Partition(orders)
	low := LowStock(inventory, LowStockThreshold)

	totalRevenue := TotalRevenue(shipped)
	inventoryValue := InventoryValue(inventory)
	last30 := OrdersSince(shipped, now, 30)

	var b strings.Builder

	b.WriteString("You are an AI assistant for an Amazon seller dashboard. You help sellers analyze their sales and inventory data.\n")
	b.WriteString("You should be professional, concise, and helpful. Always format currency in Indian Rupees (₹).\n")
	b.WriteString("When analyzing data, focus on providing actionable insights that can help the seller improve their business.\n\n")

	b.WriteString("Current Business Metrics:\n")
	b.WriteString(fmt.Sprintf("- Total Orders: %d\n", len(orders)))
	b.WriteString(fmt.Sprintf("- Shipped Orders: %d\n", len(shipped)))
	b.WriteString(fmt.Sprintf("- Cancelled Orders: %d\n", len(cancelled)))
	b.WriteString(fmt.Sprintf("- Total Revenue: ₹%.2f\n\n", totalRevenue))

	b.WriteString("Inventory Status:\n")
	b.WriteString(fmt.Sprintf("- Total SKUs: %d\n", len(inventory)))
	b.WriteString(fmt.Sprintf("- Low Stock Items: %d\n", len(low)))
	b.WriteString(fmt.Sprintf("- Total Inventory Value: ₹%.2f\n\n", inventoryValue))

	b.WriteString("Recent Performance:\n")
	b.WriteString(fmt.Sprintf("- Last 30 Days Sales: %d orders\n", last30))
	b.WriteString(fmt.Sprintf("- Average Daily Sales: %.1f orders\n\n", float64(last30)/30))

	b.WriteString("Recent Orders Sample:\n")
	b.WriteString(marshalSample(head(orders, sampleSize)))
	b.WriteString("\n\n")

	b.WriteString("Low Stock Items Sample:\n")
	b.WriteString(marshalSample(head(low, sampleSize)))
	b.WriteString("\n\n")

	b.WriteString("Instructions:\n")
	b.WriteString("1. Keep responses concise and focused\n")
	b.WriteString("2. Use bullet points for lists\n")
	b.WriteString("3. Format all currency values in Indian Rupees (₹)\n")
	b.WriteString("4. Provide specific, data-driven insights\n")
	b.WriteString("5. Suggest actionable recommendations when relevant")

	return b.String()
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func marshalSample(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(data)
}
