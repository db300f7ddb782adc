package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kenalhq/insight-engine/pkg/datasource"
	"github.com/kenalhq/insight-engine/pkg/llm"
	"github.com/kenalhq/insight-engine/pkg/models"
)

// mockSchemaProvider is a configurable SchemaProvider for tests.
type mockSchemaProvider struct {
	GetFunc  func(ctx context.Context) (*models.SchemaSnapshot, error)
	GetCalls int
}

func (m *mockSchemaProvider) Get(ctx context.Context) (*models.SchemaSnapshot, error) {
	m.GetCalls++
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	return snapshotFixture(), nil
}

func snapshotFixture() *models.SchemaSnapshot {
	return &models.SchemaSnapshot{
		Tables: map[string]*models.TableInfo{
			"kd_users": {
				Columns: []models.ColumnInfo{
					{Name: "gender", Type: models.ColumnTypeText},
					{Name: "id", Type: models.ColumnTypeUUID},
				},
				SampleData: []map[string]any{{"gender": "Male", "id": "a3bb189e-8bf9-3888-9912-ace4e6543002"}},
			},
		},
		CapturedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

// mockSynthesizer is a configurable QuerySynthesizer for tests.
type mockSynthesizer struct {
	SynthesizeFunc  func(ctx context.Context, userPrompt string, snapshot *models.SchemaSnapshot) (*models.SynthesizedQuery, *models.TokenUsage, error)
	SynthesizeCalls int
}

func (m *mockSynthesizer) Synthesize(ctx context.Context, userPrompt string, snapshot *models.SchemaSnapshot) (*models.SynthesizedQuery, *models.TokenUsage, error) {
	m.SynthesizeCalls++
	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, userPrompt, snapshot)
	}
	return synthFixture(), &models.TokenUsage{}, nil
}

var _ QuerySynthesizer = (*mockSynthesizer)(nil)

func TestProcessSmartRequestEmptyPrompt(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
	}{
		{"empty", ""},
		{"whitespace only", "   \t\n  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schemas := &mockSchemaProvider{}
			synth := &mockSynthesizer{}
			executor := &datasource.MockExecutor{}

			svc := NewSmartDashboardService(schemas, synth, executor, zap.NewNop(), nil)
			resp := svc.ProcessSmartRequest(context.Background(), &models.SmartRequest{UserPrompt: tt.prompt})

			assert.False(t, resp.Success)
			assert.Equal(t, "user prompt is required", resp.Error)
			assert.Nil(t, resp.CardConfig)

			// Rejection happens before any collaborator is touched.
			assert.Zero(t, schemas.GetCalls)
			assert.Zero(t, synth.SynthesizeCalls)
			assert.Zero(t, executor.ExecuteQueryCalls)
		})
	}
}

func TestProcessSmartRequestEndToEnd(t *testing.T) {
	schemas := &mockSchemaProvider{}
	synth := &mockSynthesizer{
		SynthesizeFunc: func(ctx context.Context, userPrompt string, snapshot *models.SchemaSnapshot) (*models.SynthesizedQuery, *models.TokenUsage, error) {
			return &models.SynthesizedQuery{
					SQL:         "SELECT gender, COUNT(*) AS count FROM kd_users WHERE deleted_at IS NULL GROUP BY gender;",
					ChartType:   models.ChartTypeBar,
					Title:       "Users by Gender",
					Description: "Gender distribution of registered users",
				}, &models.TokenUsage{
					InputTokens:   1200,
					OutputTokens:  180,
					TotalTokens:   1380,
					EstimatedCost: 0.0063,
				}, nil
		},
	}
	executor := &datasource.MockExecutor{
		ExecuteQueryFunc: func(ctx context.Context, sqlQuery string) (*datasource.QueryResult, error) {
			return &datasource.QueryResult{
				Columns: []string{"gender", "count"},
				Rows: []map[string]any{
					{"gender": "Male", "count": int64(700)},
					{"gender": "Female", "count": int64(650)},
				},
			}, nil
		},
	}

	svc := NewSmartDashboardService(schemas, synth, executor, zap.NewNop(), nil)
	resp := svc.ProcessSmartRequest(context.Background(), &models.SmartRequest{
		UserPrompt: "show me user distribution by gender",
		UserID:     "admin-1",
	})

	require.True(t, resp.Success, "unexpected error: %s", resp.Error)
	require.NotNil(t, resp.CardConfig)

	// Two categorical rows, no month label: the override picks pie.
	assert.Equal(t, models.ChartTypePie, resp.CardConfig.Content.Chart.Type)

	points, ok := resp.CardConfig.Content.SmartData.([]models.ChartPoint)
	require.True(t, ok)
	require.Len(t, points, 2)
	assert.Equal(t, "Male", points[0].Category)
	assert.Equal(t, int64(700), points[0].Value)
	assert.Equal(t, "Female", points[1].Label)
	assert.Equal(t, int64(650), points[1].Count)

	// The executed statement is the normalized one, semicolon stripped.
	assert.Equal(t, "SELECT gender, COUNT(*) AS count FROM kd_users WHERE deleted_at IS NULL GROUP BY gender", executor.LastSQL)
	assert.Equal(t, executor.LastSQL, resp.SQLQuery)

	assert.Equal(t, "Generated SQL query and pie chart with 2 data points", resp.Explanation)

	require.NotNil(t, resp.TokenUsage)
	assert.Equal(t, 1380, resp.TokenUsage.TotalTokens)
	assert.InDelta(t, 0.0063, resp.TokenUsage.EstimatedCost, 1e-9)

	require.NotNil(t, resp.RealTimeStatus)
	assert.True(t, resp.RealTimeStatus.IsRealTime)
	assert.Equal(t, 300, resp.RealTimeStatus.RefreshInterval)
	assert.Equal(t, "live_database", resp.RealTimeStatus.DataSource)
}

func TestProcessSmartRequestSchemaFailure(t *testing.T) {
	schemas := &mockSchemaProvider{
		GetFunc: func(ctx context.Context) (*models.SchemaSnapshot, error) {
			return nil, errors.New("failed to discover database schema")
		},
	}
	synth := &mockSynthesizer{}
	executor := &datasource.MockExecutor{}

	svc := NewSmartDashboardService(schemas, synth, executor, zap.NewNop(), nil)
	resp := svc.ProcessSmartRequest(context.Background(), &models.SmartRequest{UserPrompt: "anything"})

	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "failed to discover database schema")
	assert.Zero(t, synth.SynthesizeCalls)
	assert.Zero(t, executor.ExecuteQueryCalls)
}

func TestProcessSmartRequestSynthesisFailureSkipsExecution(t *testing.T) {
	schemas := &mockSchemaProvider{}
	synth := &mockSynthesizer{
		SynthesizeFunc: func(ctx context.Context, userPrompt string, snapshot *models.SchemaSnapshot) (*models.SynthesizedQuery, *models.TokenUsage, error) {
			return nil, nil, errors.New("failed to convert natural language to SQL: provider returned 500")
		},
	}
	executor := &datasource.MockExecutor{}

	svc := NewSmartDashboardService(schemas, synth, executor, zap.NewNop(), nil)
	resp := svc.ProcessSmartRequest(context.Background(), &models.SmartRequest{UserPrompt: "count users"})

	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "failed to convert natural language to SQL")
	assert.Zero(t, executor.ExecuteQueryCalls, "executor must not run when synthesis fails")
}

func TestProcessSmartRequestRejectsUnsafeSQL(t *testing.T) {
	schemas := &mockSchemaProvider{}
	synth := &mockSynthesizer{
		SynthesizeFunc: func(ctx context.Context, userPrompt string, snapshot *models.SchemaSnapshot) (*models.SynthesizedQuery, *models.TokenUsage, error) {
			return &models.SynthesizedQuery{SQL: "DELETE FROM kd_users"}, &models.TokenUsage{}, nil
		},
	}
	executor := &datasource.MockExecutor{}

	svc := NewSmartDashboardService(schemas, synth, executor, zap.NewNop(), nil)
	resp := svc.ProcessSmartRequest(context.Background(), &models.SmartRequest{UserPrompt: "delete everyone"})

	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "only SELECT statements are allowed")
	assert.Zero(t, executor.ExecuteQueryCalls)
}

func TestProcessSmartRequestEmptyQueryResult(t *testing.T) {
	schemas := &mockSchemaProvider{}
	synth := &mockSynthesizer{}
	executor := &datasource.MockExecutor{
		ExecuteQueryFunc: func(ctx context.Context, sqlQuery string) (*datasource.QueryResult, error) {
			return &datasource.QueryResult{Columns: []string{"count"}, Rows: []map[string]any{}}, nil
		},
	}

	svc := NewSmartDashboardService(schemas, synth, executor, zap.NewNop(), nil)
	resp := svc.ProcessSmartRequest(context.Background(), &models.SmartRequest{UserPrompt: "users in atlantis"})

	assert.False(t, resp.Success)
	assert.Equal(t, "no data returned from query", resp.Error)
	assert.Nil(t, resp.CardConfig)
}

func TestProcessSmartRequestMeasuresElapsedTime(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	now := func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * 50 * time.Millisecond)
	}

	svc := NewSmartDashboardService(&mockSchemaProvider{}, &mockSynthesizer{}, &datasource.MockExecutor{
		ExecuteQueryFunc: func(ctx context.Context, sqlQuery string) (*datasource.QueryResult, error) {
			return &datasource.QueryResult{
				Columns: []string{"total"},
				Rows:    []map[string]any{{"total": int64(5)}},
			}, nil
		},
	}, zap.NewNop(), now)

	resp := svc.ProcessSmartRequest(context.Background(), &models.SmartRequest{UserPrompt: "count users"})

	require.True(t, resp.Success, "unexpected error: %s", resp.Error)
	assert.Greater(t, resp.ProcessingTimeMs, int64(0))
}

func TestSynthesizerWrapsProviderErrors(t *testing.T) {
	client := llm.NewMockClient()
	client.CompleteFunc = func(ctx context.Context, prompt string) (*llm.CompletionResult, error) {
		return nil, errors.New("status 500")
	}

	s := NewQuerySynthesizer(client, zap.NewNop())
	_, _, err := s.Synthesize(context.Background(), "count users", snapshotFixture())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to convert natural language to SQL")
	assert.Equal(t, 1, client.CompleteCalls)
}

func TestSynthesizerParsesFencedJSON(t *testing.T) {
	client := llm.NewMockClient()
	client.CompleteFunc = func(ctx context.Context, prompt string) (*llm.CompletionResult, error) {
		return &llm.CompletionResult{
			Content: "```json\n" +
				`{"sql": "SELECT COUNT(*) FROM kd_users", "chartType": "stat", "title": "Total Users", "description": "All registered users"}` +
				"\n```",
			PromptTokens:     900,
			CompletionTokens: 60,
			TotalTokens:      960,
			EstimatedCost:    0.0036,
		}, nil
	}

	s := NewQuerySynthesizer(client, zap.NewNop())
	synth, usage, err := s.Synthesize(context.Background(), "how many users", snapshotFixture())
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(*) FROM kd_users", synth.SQL)
	assert.Equal(t, models.ChartTypeStat, synth.ChartType)
	assert.Equal(t, "Total Users", synth.Title)
	assert.Equal(t, 960, usage.TotalTokens)

	// The prompt document carries the schema and the user's request.
	assert.Contains(t, client.LastPrompt, "kd_users")
	assert.Contains(t, client.LastPrompt, "how many users")
}

func TestSynthesizerRejectsResponseWithoutSQL(t *testing.T) {
	client := llm.NewMockClient()
	client.CompleteFunc = func(ctx context.Context, prompt string) (*llm.CompletionResult, error) {
		return &llm.CompletionResult{Content: `{"chartType": "bar", "title": "No Query"}`}, nil
	}

	s := NewQuerySynthesizer(client, zap.NewNop())
	_, _, err := s.Synthesize(context.Background(), "count users", snapshotFixture())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing sql")
}
