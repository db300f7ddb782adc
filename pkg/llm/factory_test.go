package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kenalhq/insight-engine/pkg/config"
)

func TestNewFromConfig(t *testing.T) {
	logger := zap.NewNop()

	t.Run("anthropic", func(t *testing.T) {
		client, err := NewFromConfig(&config.AIConfig{
			Provider:        "anthropic",
			AnthropicAPIKey: "sk-ant-test",
			AnthropicModel:  "claude-3-5-sonnet-20241022",
		}, logger)
		require.NoError(t, err)
		assert.Equal(t, "anthropic", client.Provider())
		assert.Equal(t, "claude-3-5-sonnet-20241022", client.Model())
	})

	t.Run("openai", func(t *testing.T) {
		client, err := NewFromConfig(&config.AIConfig{
			Provider:     "openai",
			OpenAIAPIKey: "sk-test",
			OpenAIModel:  "gpt-4-turbo-preview",
		}, logger)
		require.NoError(t, err)
		assert.Equal(t, "openai", client.Provider())
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := NewFromConfig(&config.AIConfig{
			Provider:       "anthropic",
			AnthropicModel: "claude-3-5-sonnet-20241022",
		}, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no AI API keys configured")
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewFromConfig(&config.AIConfig{Provider: "bedrock"}, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown AI provider")
	})
}
