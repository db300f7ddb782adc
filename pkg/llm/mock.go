package llm

import "context"

// MockClient is a configurable mock for testing components that talk to a
// language model. Set CompleteFunc to control behavior; call counts are
// tracked for verification.
type MockClient struct {
	// CompleteFunc is called when Complete is invoked.
	// If nil, returns an empty result and nil error.
	CompleteFunc func(ctx context.Context, prompt string) (*CompletionResult, error)

	// ModelName is returned by Model. Defaults to "mock-model".
	ModelName string

	// CompleteCalls counts invocations of Complete.
	CompleteCalls int

	// LastPrompt holds the prompt from the most recent Complete call.
	LastPrompt string
}

// NewMockClient creates a new mock with sensible defaults.
func NewMockClient() *MockClient {
	return &MockClient{ModelName: "mock-model"}
}

// Complete implements Client.
func (m *MockClient) Complete(ctx context.Context, prompt string) (*CompletionResult, error) {
	m.CompleteCalls++
	m.LastPrompt = prompt
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	return &CompletionResult{}, nil
}

// Provider implements Client.
func (m *MockClient) Provider() string { return "mock" }

// Model implements Client.
func (m *MockClient) Model() string {
	if m.ModelName == "" {
		return "mock-model"
	}
	return m.ModelName
}

// Reset clears call tracking.
func (m *MockClient) Reset() {
	m.CompleteCalls = 0
	m.LastPrompt = ""
}

// Ensure MockClient implements Client at compile time.
var _ Client = (*MockClient)(nil)
