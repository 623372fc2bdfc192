package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sellerpulse/sellerpulse/internal/types"
)

type stubGenerator struct {
	reply  string
	err    error
	prompt string
	opts   map[string]any
}

func (s *stubGenerator) Complete(_ context.Context, prompt string, opts map[string]any) (string, error) {
	s.prompt = prompt
	s.opts = opts
	return s.reply, s.err
}

func (s *stubGenerator) Model() string { return "stub" }

var _ types.Generator = (*stubGenerator)(nil)

func TestAIAssistantSendsContextAsSystemPrompt(t *testing.T) {
	gen := &stubGenerator{reply: "All good."}
	a := NewAIAssistant(gen)

	answer := a.Ask(context.Background(), "How is my business doing?", testOrders(), testInventory(), testNow)
	assert.Equal(t, "All good.", answer)
	assert.Equal(t, "How is my business doing?", gen.prompt)

	system, _ := gen.opts["system"].(string)
	assert.Contains(t, system, "Current Business Metrics:")
	assert.Contains(t, system, "- Total Orders: 4")
	assert.Equal(t, 1024, gen.opts["max_tokens"])
}

func TestAIAssistantPostProcessing(t *testing.T) {
	gen := &stubGenerator{reply: "Your top item earned $4500 this month.\n\n\n\nConsider restocking."}
	a := NewAIAssistant(gen)

	answer := a.Ask(context.Background(), "revenue?", nil, nil, testNow)
	assert.Equal(t, "Your top item earned ₹4500 this month.\n\nConsider restocking.", answer)
}

func TestAIAssistantEmptyReply(t *testing.T) {
	gen := &stubGenerator{reply: "   \n"}
	a := NewAIAssistant(gen)

	answer := a.Ask(context.Background(), "anything?", nil, nil, testNow)
	assert.Equal(t, emptyReplyAnswer, answer)
}

func TestAIAssistantFailureMessages(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{errors.New("API key not found in config or environment variable PERPLEXITY_API_KEY"), configErrorAnswer},
		{errors.New("Perplexity API error 429: too many requests"), rateLimitAnswer},
		{errors.New("Perplexity API error 403: forbidden"), forbiddenAnswer},
	}

	for _, tc := range cases {
		a := NewAIAssistant(&stubGenerator{err: tc.err})
		answer := a.Ask(context.Background(), "q", nil, nil, testNow)
		assert.Equal(t, tc.want, answer)
	}
}

func TestAIAssistantGenericFailure(t *testing.T) {
	a := NewAIAssistant(&stubGenerator{err: errors.New("connection refused")})
	answer := a.Ask(context.Background(), "q", nil, nil, testNow)

	assert.True(t, strings.HasPrefix(answer, "I encountered an error: connection refused."))
	assert.True(t, IsDegraded(answer))
}

func TestIsDegraded(t *testing.T) {
	assert.True(t, IsDegraded("Configuration Error: something"))
	assert.True(t, IsDegraded("I encountered an ERROR: boom"))
	assert.False(t, IsDegraded("Your sales look healthy."))
}
