package models

import (
	"time"

	"github.com/google/uuid"
)

// UsageRecord is one persisted smart request, kept for cost tracking and
// audit. Recording is best-effort: a failed insert never fails the request.
type UsageRecord struct {
	ID               uuid.UUID `json:"id"`
	UserID           string    `json:"user_id,omitempty"`
	Prompt           string    `json:"prompt"`
	SQLQuery         string    `json:"sql_query,omitempty"`
	ChartType        string    `json:"chart_type,omitempty"`
	Success          bool      `json:"success"`
	Error            string    `json:"error,omitempty"`
	ProcessingTimeMs int64     `json:"processing_time_ms"`
	InputTokens      int       `json:"input_tokens"`
	OutputTokens     int       `json:"output_tokens"`
	EstimatedCost    float64   `json:"estimated_cost"`
	CreatedAt        time.Time `json:"created_at"`
}
