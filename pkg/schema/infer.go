// Package schema discovers the KENAL database structure by sampling live rows.
package schema

import (
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/kenalhq/insight-engine/pkg/models"
)

var (
	// timestampPrefixPattern matches a leading YYYY-MM-DD date.
	timestampPrefixPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

	// uuidPattern matches a canonical 36-character UUID string.
	uuidPattern = regexp.MustCompile(`^[a-f0-9-]{36}$`)
)

// InferColumnType classifies a single sampled value by its runtime shape.
// Inference is best-effort: it looks at one value, so a non-representative
// sample can misclassify a column.
func InferColumnType(value any) models.ColumnType {
	if value == nil {
		return models.ColumnTypeUnknown
	}

	switch v := value.(type) {
	case string:
		if timestampPrefixPattern.MatchString(v) {
			return models.ColumnTypeTimestamp
		}
		if len(v) == 36 && uuidPattern.MatchString(v) {
			return models.ColumnTypeUUID
		}
		return models.ColumnTypeText
	case time.Time:
		return models.ColumnTypeTimestamp
	case uuid.UUID, [16]byte:
		return models.ColumnTypeUUID
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return models.ColumnTypeInteger
	case float32:
		if v == float32(int64(v)) {
			return models.ColumnTypeInteger
		}
		return models.ColumnTypeNumeric
	case float64:
		if v == float64(int64(v)) {
			return models.ColumnTypeInteger
		}
		return models.ColumnTypeNumeric
	case bool:
		return models.ColumnTypeBoolean
	case map[string]any, []any:
		return models.ColumnTypeJSON
	default:
		return models.ColumnTypeUnknown
	}
}
