package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected string
	}{
		{
			name:     "bare object",
			response: `{"sql": "SELECT 1"}`,
			expected: `{"sql": "SELECT 1"}`,
		},
		{
			name:     "json code fence",
			response: "```json\n{\"sql\": \"SELECT 1\"}\n```",
			expected: `{"sql": "SELECT 1"}`,
		},
		{
			name:     "plain code fence",
			response: "```\n{\"sql\": \"SELECT 1\"}\n```",
			expected: `{"sql": "SELECT 1"}`,
		},
		{
			name:     "prose before object",
			response: `Here is the query you asked for: {"sql": "SELECT 1"} Hope that helps!`,
			expected: `{"sql": "SELECT 1"}`,
		},
		{
			name:     "braces inside strings",
			response: `{"sql": "SELECT '{' FROM t", "title": "a } b"}`,
			expected: `{"sql": "SELECT '{' FROM t", "title": "a } b"}`,
		},
		{
			name:     "escaped quotes inside strings",
			response: `{"title": "she said \"hi\""}`,
			expected: `{"title": "she said \"hi\""}`,
		},
		{
			name:     "array response",
			response: `[1, 2, 3]`,
			expected: `[1, 2, 3]`,
		},
		{
			name:     "nested objects",
			response: `{"a": {"b": {"c": 1}}}`,
			expected: `{"a": {"b": {"c": 1}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.response)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExtractJSONErrors(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"no json at all", "I cannot answer that."},
		{"unbalanced object", `{"sql": "SELECT 1"`},
		{"empty response", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractJSON(tt.response)
			assert.Error(t, err)
		})
	}
}

func TestParseJSONResponse(t *testing.T) {
	type answer struct {
		SQL   string `json:"sql"`
		Title string `json:"title"`
	}

	got, err := ParseJSONResponse[answer]("```json\n{\"sql\": \"SELECT 1\", \"title\": \"One\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1", got.SQL)
	assert.Equal(t, "One", got.Title)

	_, err = ParseJSONResponse[answer]("not json")
	assert.Error(t, err)
}

func TestCostEstimates(t *testing.T) {
	// 1000 input + 1000 output tokens at published per-1k prices.
	assert.InDelta(t, 0.018, anthropicCost(1000, 1000), 1e-9)
	assert.InDelta(t, 0.04, openAICost(1000, 1000), 1e-9)
	assert.Zero(t, anthropicCost(0, 0))
}
