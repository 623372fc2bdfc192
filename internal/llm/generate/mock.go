package generate

import (
	"context"
	"strings"
	"time"

	"github.com/sellerpulse/sellerpulse/internal/types"
)

// MockGenerator returns canned seller-assistant replies without any
// network call. Useful for local development and tests.
type MockGenerator struct {
	model string
	delay time.Duration
}

func NewMockGenerator(model string) *MockGenerator {
	return &MockGenerator{model: model, delay: 200 * time.Millisecond}
}

func (g *MockGenerator) Complete(ctx context.Context, prompt string, opts map[string]any) (string, error) {
	// Simulate API latency
	select {
	case <-time.After(g.delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	question := strings.ToLower(prompt)

	switch {
	case strings.Contains(question, "top selling") || strings.Contains(question, "best"):
		return "Based on your 30-day sales data, your top sellers are the products with the highest d30 unit counts.\n• Focus restock budget on the top 3 ASINs\n• Consider bundling slower movers with them", nil
	case strings.Contains(question, "stock") || strings.Contains(question, "inventory"):
		return "Your inventory snapshot shows several items below the 10 unit threshold.\n• Reorder items with under a week of projected runway first\n• Review stagnant SKUs with no sales in 30 days", nil
	case strings.Contains(question, "revenue") || strings.Contains(question, "sales"):
		return "Revenue is concentrated in your shipped orders from the last 7 days.\n• Week-over-week growth is the number to watch\n• Average order value suggests room for multi-unit listings", nil
	case strings.Contains(question, "cancel"):
		return "Your cancellation rate is driven by a small set of reasons.\n• Address the top reason first, it usually covers most cancellations\n• Orders without a recorded reason are grouped under Unknown", nil
	default:
		return "I looked at your current business metrics. Ask me about top selling products, low stock, revenue, or cancellations for specifics.", nil
	}
}

func (g *MockGenerator) Model() string {
	return g.model + "-mock"
}

// Compile-time interface check
var _ types.Generator = (*MockGenerator)(nil)
