package prompts

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kenalhq/insight-engine/pkg/models"
)

func snapshotFixture() *models.SchemaSnapshot {
	return &models.SchemaSnapshot{
		Tables: map[string]*models.TableInfo{
			"kd_users": {
				Columns: []models.ColumnInfo{
					{Name: "element_number", Type: models.ColumnTypeInteger, Description: "KENAL personality element (1-9)"},
					{Name: "gender", Type: models.ColumnTypeText},
					{Name: "deleted_at", Type: models.ColumnTypeTimestamp, Nullable: true},
				},
				SampleData: []map[string]any{
					{"element_number": 7, "gender": "Male", "deleted_at": nil, "id": "a3bb189e"},
				},
			},
			"kd_identity": {
				Columns: []models.ColumnInfo{
					{Name: "user_id", Type: models.ColumnTypeUUID},
				},
				SampleData: []map[string]any{{"user_id": "b4cc289e"}},
			},
		},
		CapturedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildSmartCardPrompt(t *testing.T) {
	prompt := BuildSmartCardPrompt("show users by gender", snapshotFixture())

	assert.Contains(t, prompt, `USER REQUEST: "show users by gender"`)
	assert.Contains(t, prompt, "TABLE: kd_users")
	assert.Contains(t, prompt, "TABLE: kd_identity")
	assert.Contains(t, prompt, "element_number (integer) - KENAL personality element (1-9)")
	assert.Contains(t, prompt, "deleted_at (timestamp) nullable")
	assert.Contains(t, prompt, "BUSINESS CONTEXT:")
	assert.Contains(t, prompt, "RESPONSE FORMAT (JSON only):")
	assert.Contains(t, prompt, `"chartType": "bar|line|pie|doughnut|stat|table"`)
	assert.Contains(t, prompt, "exactly one read-only SELECT statement")
}

func TestBuildSmartCardPromptIsDeterministic(t *testing.T) {
	first := BuildSmartCardPrompt("count users", snapshotFixture())
	second := BuildSmartCardPrompt("count users", snapshotFixture())
	assert.Equal(t, first, second)

	// Tables appear in sorted order regardless of map iteration.
	assert.Less(t, strings.Index(first, "TABLE: kd_identity"), strings.Index(first, "TABLE: kd_users"))
}

func TestRenderSchemaDescriptionLimitsSampleFields(t *testing.T) {
	desc := RenderSchemaDescription(snapshotFixture())

	assert.Contains(t, desc, "SAMPLE DATA:")
	// kd_users has four sample fields; only the first three sorted keys show.
	assert.Contains(t, desc, "deleted_at:")
	assert.Contains(t, desc, "element_number: 7")
	assert.Contains(t, desc, "gender: Male")
	assert.NotContains(t, desc, "id: a3bb189e")
}
