package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"
)

// Claude 3.5 Sonnet pricing per 1k tokens.
const (
	anthropicInputCostPer1k  = 0.003
	anthropicOutputCostPer1k = 0.015
)

// AnthropicClient calls the Anthropic Messages API.
type AnthropicClient struct {
	client      *anthropic.Client
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

// NewAnthropicClient creates a client for the Anthropic Messages API.
func NewAnthropicClient(apiKey, model string, maxTokens int, temperature float64, logger *zap.Logger) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}

	return &AnthropicClient{
		client:      anthropic.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger.Named("llm.anthropic"),
	}, nil
}

// Complete implements Client.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (*CompletionResult, error) {
	c.logger.Debug("LLM request",
		zap.String("model", c.model),
		zap.Int("prompt_len", len(prompt)),
		zap.Float64("temperature", c.temperature))

	start := time.Now()
	temp := float32(c.temperature)

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(c.model),
		MaxTokens:   c.maxTokens,
		Temperature: &temp,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(prompt),
		},
	})
	if err != nil {
		c.logger.Error("LLM request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, fmt.Errorf("anthropic completion: %w", err)
	}

	content := resp.GetFirstContentText()
	if content == "" {
		return nil, fmt.Errorf("empty completion from anthropic")
	}

	inputTokens := resp.Usage.InputTokens
	outputTokens := resp.Usage.OutputTokens

	c.logger.Info("LLM request completed",
		zap.Int("prompt_tokens", inputTokens),
		zap.Int("completion_tokens", outputTokens),
		zap.Duration("elapsed", time.Since(start)))

	return &CompletionResult{
		Content:          content,
		PromptTokens:     inputTokens,
		CompletionTokens: outputTokens,
		TotalTokens:      inputTokens + outputTokens,
		EstimatedCost:    anthropicCost(inputTokens, outputTokens),
	}, nil
}

// Provider implements Client.
func (c *AnthropicClient) Provider() string { return "anthropic" }

// Model implements Client.
func (c *AnthropicClient) Model() string { return c.model }

func anthropicCost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)/1000*anthropicInputCostPer1k +
		float64(outputTokens)/1000*anthropicOutputCostPer1k
}

// Ensure AnthropicClient implements Client at compile time.
var _ Client = (*AnthropicClient)(nil)
