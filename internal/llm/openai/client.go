package openai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"docanalyzer/internal/config"
)

const (
	defaultModel = "gpt-4o-mini"
	maxTokens    = 4096
)

// Client implements port.ModelClient using the OpenAI Chat Completions API.
type Client struct {
	api   *goopenai.Client
	model string
}

// NewClient creates an OpenAI-backed model client.
func NewClient(cfg *config.LLMConfig) *Client {
	return newClient(cfg, "")
}

// NewClientWithBaseURL creates a client pointing at a custom API base URL
// (for testing or OpenAI-compatible gateways).
func NewClientWithBaseURL(cfg *config.LLMConfig, baseURL string) *Client {
	return newClient(cfg, baseURL)
}

func newClient(cfg *config.LLMConfig, baseURL string) *Client {
	model := cfg.DefaultModel
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	apiCfg := goopenai.DefaultConfig(cfg.APIKey)
	if baseURL != "" {
		apiCfg.BaseURL = baseURL
	}
	apiCfg.HTTPClient = &http.Client{Timeout: timeout}

	return &Client{
		api:   goopenai.NewClientWithConfig(apiCfg),
		model: model,
	}
}

// Model returns the OpenAI model name.
func (c *Client) Model() string { return c.model }

// Generate sends prompt with a JSON-object response format.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:               c.model,
		MaxCompletionTokens: maxTokens,
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("calling openai API: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from API: no choices")
	}

	if resp.Choices[0].FinishReason == goopenai.FinishReasonLength {
		return "", fmt.Errorf("output truncated (finish_reason: length): response exceeded output token limit")
	}

	return resp.Choices[0].Message.Content, nil
}
