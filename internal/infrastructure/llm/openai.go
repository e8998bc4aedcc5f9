package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"ContentPipeline/internal/config"
	"ContentPipeline/internal/ports"
)

// Client implements ports.ModelClient on top of the openai-go SDK, so any
// OpenAI-compatible inference endpoint can serve the pipeline.
type Client struct {
	client      openai.Client
	model       string
	maxTokens   int64
	temperature float64
}

var _ ports.ModelClient = (*Client)(nil)

// NewClient builds a model client from configuration.
func NewClient(cfg config.ModelConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("model api key missing")
	}
	if cfg.Model == "" {
		return nil, errors.New("model name missing")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}, nil
}

// Complete submits the prompt as a single user message and returns the first
// choice's text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if c.maxTokens > 0 {
		params.MaxTokens = openai.Int(c.maxTokens)
	}
	if c.temperature > 0 {
		params.Temperature = openai.Float(c.temperature)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("model completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
