// Package services holds the smart card pipeline stages and orchestration.
package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kenalhq/insight-engine/pkg/apperrors"
	"github.com/kenalhq/insight-engine/pkg/llm"
	"github.com/kenalhq/insight-engine/pkg/models"
	"github.com/kenalhq/insight-engine/pkg/prompts"
)

// QuerySynthesizer turns a natural language request plus a schema snapshot
// into a SQL statement and chart hints.
type QuerySynthesizer interface {
	Synthesize(ctx context.Context, userPrompt string, snapshot *models.SchemaSnapshot) (*models.SynthesizedQuery, *models.TokenUsage, error)
}

type querySynthesizer struct {
	client llm.Client
	logger *zap.Logger
}

// NewQuerySynthesizer creates a synthesizer over the configured provider.
func NewQuerySynthesizer(client llm.Client, logger *zap.Logger) QuerySynthesizer {
	return &querySynthesizer{
		client: client,
		logger: logger.Named("synthesizer"),
	}
}

// Synthesize builds the prompt document, calls the provider once and parses
// the JSON answer. Provider failures, unparseable responses and missing
// fields all collapse into a single synthesis error.
func (s *querySynthesizer) Synthesize(ctx context.Context, userPrompt string, snapshot *models.SchemaSnapshot) (*models.SynthesizedQuery, *models.TokenUsage, error) {
	prompt := prompts.BuildSmartCardPrompt(userPrompt, snapshot)

	s.logger.Debug("converting natural language to SQL",
		zap.String("provider", s.client.Provider()),
		zap.String("model", s.client.Model()),
		zap.Int("prompt_len", len(prompt)))

	completion, err := s.client.Complete(ctx, prompt)
	if err != nil {
		s.logger.Error("LLM call failed", zap.Error(err))
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrSynthesis, err)
	}

	synthesized, err := llm.ParseJSONResponse[models.SynthesizedQuery](completion.Content)
	if err != nil {
		s.logger.Error("could not parse LLM response as JSON",
			zap.Error(err),
			zap.String("response_head", head(completion.Content, 200)))
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrSynthesis, err)
	}

	if strings.TrimSpace(synthesized.SQL) == "" {
		s.logger.Error("LLM response missing sql field")
		return nil, nil, fmt.Errorf("%w: response missing sql", apperrors.ErrSynthesis)
	}

	s.logger.Info("SQL synthesized",
		zap.String("chart_type", string(synthesized.ChartType)),
		zap.String("title", synthesized.Title),
		zap.Int("total_tokens", completion.TotalTokens))

	usage := &models.TokenUsage{
		InputTokens:   completion.PromptTokens,
		OutputTokens:  completion.CompletionTokens,
		TotalTokens:   completion.TotalTokens,
		EstimatedCost: completion.EstimatedCost,
	}

	return &synthesized, usage, nil
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
