package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sellerpulse/sellerpulse/internal/analyze"
	"github.com/sellerpulse/sellerpulse/internal/report"
	"github.com/sellerpulse/sellerpulse/internal/types"
)

const (
	configErrorAnswer = "Configuration Error: The AI service is not properly configured. Please check that your API key is correctly set and restart the application."
	rateLimitAnswer   = "Rate limit exceeded. Please try again in a few moments."
	forbiddenAnswer   = "Access denied. Please check your API key permissions."
	emptyReplyAnswer  = "I apologize, but I was unable to generate a response. Please try rephrasing your question."
)

var (
	dollarAmount      = regexp.MustCompile(`\$(\d+)`)
	excessiveNewlines = regexp.MustCompile(`\n{3,}`)
)

// AIAssistant answers questions through an external completion provider,
// priming it with the serialized business context as the system prompt.
type AIAssistant struct {
	generator types.Generator
	builder   *analyze.ContextBuilder
}

func NewAIAssistant(generator types.Generator) *AIAssistant {
	return &AIAssistant{
		generator: generator,
		builder:   analyze.NewContextBuilder(),
	}
}

// Ask sends one completion request and returns displayable text. Provider
// failures come back as user-facing messages; the record sets stay valid
// for further questions either way.
func (a *AIAssistant) Ask(ctx context.Context, question string, orders []report.OrderRecord, inventory []report.InventoryItem, now time.Time) string {
	systemContext := a.builder.BuildChatContext(orders, inventory, now)

	reply, err := a.generator.Complete(ctx, question, map[string]any{
		"system":      systemContext,
		"max_tokens":  1024,
		"temperature": 0.7,
		"top_p":       0.8,
	})
	if err != nil {
		return describeFailure(err)
	}

	if strings.TrimSpace(reply) == "" {
		return emptyReplyAnswer
	}
	return postProcess(reply)
}

// postProcess normalizes model output for display: the expected currency
// glyph in place of a bare dollar sign, and no runs of blank lines.
func postProcess(reply string) string {
	reply = dollarAmount.ReplaceAllString(reply, "₹$1")
	reply = excessiveNewlines.ReplaceAllString(reply, "\n\n")
	return reply
}

// describeFailure maps known provider errors onto the fixed user-facing
// messages; anything else is wrapped generically.
func describeFailure(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key"):
		return configErrorAnswer
	case strings.Contains(msg, "429"):
		return rateLimitAnswer
	case strings.Contains(msg, "403"):
		return forbiddenAnswer
	default:
		return fmt.Sprintf("I encountered an error: %s. Please try again or contact support if the issue persists.", msg)
	}
}

// Compile-time interface check
var _ Assistant = (*AIAssistant)(nil)
