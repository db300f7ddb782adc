package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kenalhq/insight-engine/pkg/apperrors"
	"github.com/kenalhq/insight-engine/pkg/datasource"
	"github.com/kenalhq/insight-engine/pkg/models"
	"github.com/kenalhq/insight-engine/pkg/sqlguard"
)

// SchemaProvider supplies the current schema snapshot, refreshing as needed.
// Implemented by schema.Cache.
type SchemaProvider interface {
	Get(ctx context.Context) (*models.SchemaSnapshot, error)
}

// SmartDashboardService runs the natural-language-to-dashboard-card pipeline.
type SmartDashboardService interface {
	// ProcessSmartRequest sequences schema discovery, SQL synthesis,
	// execution and card assembly. It never returns an error: every failure
	// is normalized into the response envelope.
	ProcessSmartRequest(ctx context.Context, req *models.SmartRequest) *models.SmartResponse
}

type smartDashboardService struct {
	schemas     SchemaProvider
	synthesizer QuerySynthesizer
	executor    datasource.QueryExecutor
	logger      *zap.Logger
	now         func() time.Time
}

// NewSmartDashboardService creates the pipeline orchestrator. The now
// function is injectable for deterministic timing in tests; pass nil for
// time.Now.
func NewSmartDashboardService(
	schemas SchemaProvider,
	synthesizer QuerySynthesizer,
	executor datasource.QueryExecutor,
	logger *zap.Logger,
	now func() time.Time,
) SmartDashboardService {
	if now == nil {
		now = time.Now
	}
	return &smartDashboardService{
		schemas:     schemas,
		synthesizer: synthesizer,
		executor:    executor,
		logger:      logger.Named("smart_dashboard"),
		now:         now,
	}
}

// ProcessSmartRequest implements SmartDashboardService.
func (s *smartDashboardService) ProcessSmartRequest(ctx context.Context, req *models.SmartRequest) *models.SmartResponse {
	start := s.now()

	fail := func(err error) *models.SmartResponse {
		s.logger.Warn("smart request failed",
			zap.Error(err),
			zap.Duration("elapsed", s.now().Sub(start)))
		return &models.SmartResponse{
			Success:          false,
			Error:            err.Error(),
			ProcessingTimeMs: s.now().Sub(start).Milliseconds(),
		}
	}

	userPrompt := strings.TrimSpace(req.UserPrompt)
	if userPrompt == "" {
		return fail(apperrors.ErrEmptyPrompt)
	}

	s.logger.Info("processing smart request",
		zap.Int("prompt_len", len(userPrompt)),
		zap.String("user_id", req.UserID))

	// Stage 1: schema discovery (via cache).
	snapshot, err := s.schemas.Get(ctx)
	if err != nil {
		return fail(err)
	}

	// Stage 2: SQL synthesis.
	synth, usage, err := s.synthesizer.Synthesize(ctx, userPrompt, snapshot)
	if err != nil {
		return fail(err)
	}

	// Stage 3: guard, then execute. The model is asked for read-only SQL
	// but never trusted to deliver it.
	safeSQL, err := sqlguard.ValidateReadOnly(synth.SQL)
	if err != nil {
		return fail(fmt.Errorf("%w: %v", apperrors.ErrUnsafeSQL, err))
	}
	synth.SQL = safeSQL

	result, err := s.executor.ExecuteQuery(ctx, safeSQL)
	if err != nil {
		return fail(err)
	}

	// Stage 4: card assembly.
	card, err := AssembleCard(result, synth, userPrompt, s.now())
	if err != nil {
		return fail(err)
	}

	elapsed := s.now().Sub(start)
	s.logger.Info("smart request completed",
		zap.String("card_id", card.ID),
		zap.String("chart_type", string(card.Content.Chart.Type)),
		zap.Int("rows", result.RowCount()),
		zap.Duration("elapsed", elapsed))

	return &models.SmartResponse{
		Success:          true,
		CardConfig:       card,
		SQLQuery:         safeSQL,
		Explanation:      explanation(card, result.RowCount()),
		ProcessingTimeMs: elapsed.Milliseconds(),
		TokenUsage:       usage,
		RealTimeStatus: &models.RealTimeStatus{
			IsRealTime:      true,
			RefreshInterval: card.Content.Data.RefreshInterval,
			LastUpdated:     s.now().UTC().Format(time.RFC3339),
			DataSource:      "live_database",
		},
	}
}

func explanation(card *models.DashboardCard, rowCount int) string {
	return fmt.Sprintf("Generated SQL query and %s chart with %d data points",
		card.Content.Chart.Type, rowCount)
}
