// Package llm provides language model clients for SQL synthesis.
package llm

import "context"

// CompletionResult is a single text completion plus its token accounting.
type CompletionResult struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	EstimatedCost    float64
}

// Client is the capability the pipeline depends on: send one text prompt,
// receive one text completion. Provider-specific request and response shapes
// never leak past implementations of this interface.
type Client interface {
	// Complete sends the prompt and returns the completion with usage stats.
	Complete(ctx context.Context, prompt string) (*CompletionResult, error)

	// Provider returns the provider name ("anthropic" or "openai").
	Provider() string

	// Model returns the configured model name.
	Model() string
}
