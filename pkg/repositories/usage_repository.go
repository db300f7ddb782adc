// Package repositories provides data access for engine-owned tables.
package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kenalhq/insight-engine/pkg/database"
	"github.com/kenalhq/insight-engine/pkg/models"
)

// UsageRepository persists smart request usage records.
type UsageRepository interface {
	Record(ctx context.Context, rec *models.UsageRecord) error
	ListRecent(ctx context.Context, limit int) ([]*models.UsageRecord, error)
}

type usageRepository struct {
	db *database.DB
}

// NewUsageRepository creates a new UsageRepository.
func NewUsageRepository(db *database.DB) UsageRepository {
	return &usageRepository{db: db}
}

var _ UsageRepository = (*usageRepository)(nil)

// Record inserts one usage row. Assigns ID and CreatedAt if unset.
func (r *usageRepository) Record(ctx context.Context, rec *models.UsageRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO insight_ai_usage (
			id, user_id, prompt, sql_query, chart_type, success, error,
			processing_time_ms, input_tokens, output_tokens, estimated_cost,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(ctx, query,
		rec.ID,
		nullString(rec.UserID),
		rec.Prompt,
		nullString(rec.SQLQuery),
		nullString(rec.ChartType),
		rec.Success,
		nullString(rec.Error),
		rec.ProcessingTimeMs,
		rec.InputTokens,
		rec.OutputTokens,
		rec.EstimatedCost,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record usage: %w", err)
	}

	return nil
}

// ListRecent returns the newest usage rows, up to limit.
func (r *usageRepository) ListRecent(ctx context.Context, limit int) ([]*models.UsageRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, user_id, prompt, sql_query, chart_type, success, error,
		       processing_time_ms, input_tokens, output_tokens, estimated_cost,
		       created_at
		FROM insight_ai_usage
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list usage: %w", err)
	}
	defer rows.Close()

	var records []*models.UsageRecord
	for rows.Next() {
		var rec models.UsageRecord
		var userID, sqlQuery, chartType, errMsg *string

		if err := rows.Scan(
			&rec.ID, &userID, &rec.Prompt, &sqlQuery, &chartType,
			&rec.Success, &errMsg, &rec.ProcessingTimeMs,
			&rec.InputTokens, &rec.OutputTokens, &rec.EstimatedCost,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan usage row: %w", err)
		}

		rec.UserID = deref(userID)
		rec.SQLQuery = deref(sqlQuery)
		rec.ChartType = deref(chartType)
		rec.Error = deref(errMsg)
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating usage rows: %w", err)
	}

	return records, nil
}

// nullString maps "" to NULL for optional text columns.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
