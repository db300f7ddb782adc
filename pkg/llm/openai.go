package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// GPT-4 Turbo pricing per 1k tokens.
const (
	openAIInputCostPer1k  = 0.01
	openAIOutputCostPer1k = 0.03
)

// openAISystemMessage frames every request; the structured-output contract
// lives in the prompt itself.
const openAISystemMessage = "You are a database analyst expert. Always respond with valid JSON."

// OpenAIClient calls the OpenAI chat completions API.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

// NewOpenAIClient creates a client for the OpenAI chat completions API.
func NewOpenAIClient(apiKey, model string, maxTokens int, temperature float64, logger *zap.Logger) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}

	return &OpenAIClient{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger.Named("llm.openai"),
	}, nil
}

// Complete implements Client.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (*CompletionResult, error) {
	c.logger.Debug("LLM request",
		zap.String("model", c.model),
		zap.Int("prompt_len", len(prompt)),
		zap.Float64("temperature", c.temperature))

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openAISystemMessage},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: float32(c.temperature),
	})
	if err != nil {
		c.logger.Error("LLM request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, fmt.Errorf("openai completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in openai response")
	}

	c.logger.Info("LLM request completed",
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))

	return &CompletionResult{
		Content:          resp.Choices[0].Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
		EstimatedCost:    openAICost(resp.Usage.PromptTokens, resp.Usage.CompletionTokens),
	}, nil
}

// Provider implements Client.
func (c *OpenAIClient) Provider() string { return "openai" }

// Model implements Client.
func (c *OpenAIClient) Model() string { return c.model }

func openAICost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)/1000*openAIInputCostPer1k +
		float64(outputTokens)/1000*openAIOutputCostPer1k
}

// Ensure OpenAIClient implements Client at compile time.
var _ Client = (*OpenAIClient)(nil)
