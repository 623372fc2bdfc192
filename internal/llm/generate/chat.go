package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/sellerpulse/sellerpulse/internal/types"
)

const defaultSystem = "You are an assistant for an Amazon seller dashboard, helping sellers analyze their sales and inventory data."

// ChatGenerator speaks the OpenAI-style chat-completions protocol. Both
// Perplexity and OpenAI expose it, only the endpoint differs.
type ChatGenerator struct {
	name     string
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	TopP        float64       `json:"top_p,omitempty"`
	Stop        []string      `json:"stop,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// NewPerplexityGenerator creates a generator against the Perplexity API.
func NewPerplexityGenerator(model string, apiKeyEnv string, directAPIKey string) (*ChatGenerator, error) {
	return newChatGenerator("Perplexity", "https://api.perplexity.ai/chat/completions", model, apiKeyEnv, directAPIKey)
}

// NewOpenAIGenerator creates a generator against the OpenAI API.
func NewOpenAIGenerator(model string, apiKeyEnv string, directAPIKey string) (*ChatGenerator, error) {
	return newChatGenerator("OpenAI", "https://api.openai.com/v1/chat/completions", model, apiKeyEnv, directAPIKey)
}

func newChatGenerator(name, endpoint, model, apiKeyEnv, directAPIKey string) (*ChatGenerator, error) {
	apiKey, err := resolveAPIKey(apiKeyEnv, directAPIKey)
	if err != nil {
		return nil, err
	}

	return &ChatGenerator{
		name:     name,
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

func (g *ChatGenerator) Complete(ctx context.Context, prompt string, opts map[string]any) (string, error) {
	maxTokens := 1024
	if val, ok := opts["max_tokens"].(int); ok && val > 0 {
		maxTokens = val
	}

	temperature := 0.7
	if val, ok := opts["temperature"].(float64); ok {
		temperature = val
	}

	system := defaultSystem
	if val, ok := opts["system"].(string); ok && val != "" {
		system = val
	}

	req := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	if val, ok := opts["top_p"].(float64); ok {
		req.TopP = val
	}
	if val, ok := opts["stop"].([]string); ok {
		req.Stop = val
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", g.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", g.apiKey))

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%s API error %d: %s", g.name, resp.StatusCode, string(body))
	}

	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return response.Choices[0].Message.Content, nil
}

func (g *ChatGenerator) Model() string {
	return g.model
}

// resolveAPIKey prefers the key set directly in config, falling back to the
// named environment variable.
func resolveAPIKey(apiKeyEnv, directAPIKey string) (string, error) {
	apiKey := directAPIKey
	if apiKey == "" && apiKeyEnv != "" {
		apiKey = os.Getenv(apiKeyEnv)
	}
	if apiKey == "" {
		return "", fmt.Errorf("API key not found in config or environment variable %s", apiKeyEnv)
	}
	return apiKey, nil
}

// Compile-time interface check
var _ types.Generator = (*ChatGenerator)(nil)
