package schema

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/kenalhq/insight-engine/pkg/models"
)

func TestInferColumnType(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected models.ColumnType
	}{
		{"nil value", nil, models.ColumnTypeUnknown},
		{"plain string", "Malaysia", models.ColumnTypeText},
		{"iso timestamp string", "2024-03-15T10:30:00Z", models.ColumnTypeTimestamp},
		{"date-only string", "2024-03-15", models.ColumnTypeTimestamp},
		{"uuid string", "a3bb189e-8bf9-3888-9912-ace4e6543002", models.ColumnTypeUUID},
		{"uuid-length non-uuid string", "this string is exactly 36 chars long", models.ColumnTypeText},
		{"time.Time", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), models.ColumnTypeTimestamp},
		{"uuid.UUID", uuid.New(), models.ColumnTypeUUID},
		{"int", 42, models.ColumnTypeInteger},
		{"int64", int64(42), models.ColumnTypeInteger},
		{"whole float64", float64(7), models.ColumnTypeInteger},
		{"fractional float64", 3.14, models.ColumnTypeNumeric},
		{"bool", true, models.ColumnTypeBoolean},
		{"json object", map[string]any{"k": "v"}, models.ColumnTypeJSON},
		{"json array", []any{1, 2}, models.ColumnTypeJSON},
		{"unhandled type", struct{}{}, models.ColumnTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InferColumnType(tt.value))
		})
	}
}
