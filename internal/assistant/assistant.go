package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/sellerpulse/sellerpulse/internal/report"
)

// Greeting opens every chat transcript.
const Greeting = "Hello! I'm your Amazon Seller Assistant. How can I help you today?"

// SuggestedQuestions are the canned prompts surfaced next to the chat
// input. The first four hit rule-based intents; the rest need the AI
// assistant for a real answer.
var SuggestedQuestions = []string{
	"What are my top selling products?",
	"How many items are low in stock?",
	"What's my total revenue this week?",
	"Show me cancelled orders analysis",
	"Analyze my inventory turnover",
	"What are the sales trends?",
}

// Assistant answers a free-text question against the current record sets.
// Implementations always return displayable text; failures surface as
// user-facing messages, never as errors.
type Assistant interface {
	Ask(ctx context.Context, question string, orders []report.OrderRecord, inventory []report.InventoryItem, now time.Time) string
}

// IsDegraded reports whether a reply should be shown as an error. Error
// replies are ordinary strings with no structured flag, so the check is a
// plain-text sniff.
func IsDegraded(reply string) bool {
	lower := strings.ToLower(reply)
	return strings.Contains(lower, "error") || strings.Contains(lower, "configuration")
}
