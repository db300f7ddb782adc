// Package prompts builds the prompt documents sent to the language model.
package prompts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kenalhq/insight-engine/pkg/models"
)

// sampleFieldLimit is how many fields of the first sample row are shown per
// table. Enough for the model to see value shapes without bloating tokens.
const sampleFieldLimit = 3

// BuildSmartCardPrompt creates the full prompt for converting a natural
// language request into SQL plus a visualization config. It embeds the
// discovered schema, KENAL business context, strict JSON output instructions
// and query-construction rules.
func BuildSmartCardPrompt(userPrompt string, snapshot *models.SchemaSnapshot) string {
	var prompt strings.Builder

	prompt.WriteString("You are a KENAL database analyst. Convert this natural language request to SQL and visualization config.\n\n")
	prompt.WriteString(fmt.Sprintf("USER REQUEST: %q\n\n", userPrompt))

	prompt.WriteString("KENAL DATABASE SCHEMA:\n")
	prompt.WriteString(RenderSchemaDescription(snapshot))

	prompt.WriteString(`BUSINESS CONTEXT:
- KENAL is a personality assessment platform
- kd_users = ALL registered users
- kd_identity = Users who COMPLETED personality assessment (subset of kd_users)
- Users can chat via kd_conversations and kd_messages
- element_number (1-9) represents personality elements

CRITICAL: Respond with ONLY valid JSON. No explanatory text before or after.

RESPONSE FORMAT (JSON only):
{
  "sql": "SELECT statement here",
  "chartType": "bar|line|pie|doughnut|stat|table",
  "title": "Chart title",
  "description": "What this shows",
  "reasoning": "Why this SQL and chart type"
}

CHART TYPE SELECTION GUIDE:
- PIE/DOUGHNUT: distribution, breakdown, composition, percentage; parts of a whole with 2-8 categories
- BAR: comparison, ranking, top X, grouping by category
- LINE: trend, over time, growth, timeline; time series with dates/months on the X-axis
- STAT: total, count, sum, average; a single numeric value
- TABLE: list, details, records; a detailed multi-column view

SQL GENERATION RULES:
1. Use real column names from the schema above
2. Include proper WHERE clauses for data quality (exclude nulls if needed)
3. Use appropriate aggregations (COUNT, SUM, AVG, etc.)
4. Add LIMIT for large result sets
5. Use JOIN for multi-table queries when needed
6. Generate exactly one read-only SELECT statement, never INSERT/UPDATE/DELETE
7. For time series, use DATE_TRUNC for proper grouping
8. Always ORDER BY for rankings/top X queries
9. RESPOND WITH ONLY JSON - NO EXPLANATORY TEXT

Generate SQL and visualization config:`)

	return prompt.String()
}

// RenderSchemaDescription renders every known table as prompt text: columns
// with inferred type, nullability and business description, plus the first
// sample row's first few fields.
func RenderSchemaDescription(snapshot *models.SchemaSnapshot) string {
	var desc strings.Builder

	tableNames := make([]string, 0, len(snapshot.Tables))
	for name := range snapshot.Tables {
		tableNames = append(tableNames, name)
	}
	sort.Strings(tableNames)

	for _, tableName := range tableNames {
		info := snapshot.Tables[tableName]

		desc.WriteString(fmt.Sprintf("\nTABLE: %s\n", tableName))
		desc.WriteString("COLUMNS:\n")
		for _, col := range info.Columns {
			desc.WriteString(fmt.Sprintf("  - %s (%s)", col.Name, col.Type))
			if col.Nullable {
				desc.WriteString(" nullable")
			}
			if col.Description != "" {
				desc.WriteString(" - " + col.Description)
			}
			desc.WriteString("\n")
		}

		if len(info.SampleData) > 0 {
			desc.WriteString("SAMPLE DATA:\n")
			sample := info.SampleData[0]

			keys := make([]string, 0, len(sample))
			for key := range sample {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			if len(keys) > sampleFieldLimit {
				keys = keys[:sampleFieldLimit]
			}
			for _, key := range keys {
				desc.WriteString(fmt.Sprintf("  %s: %v\n", key, sample[key]))
			}
		}
		desc.WriteString("\n")
	}

	return desc.String()
}
