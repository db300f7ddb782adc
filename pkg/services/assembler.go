package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kenalhq/insight-engine/pkg/apperrors"
	"github.com/kenalhq/insight-engine/pkg/datasource"
	"github.com/kenalhq/insight-engine/pkg/models"
)

// pieRowLimit is the largest categorical result rendered as a pie chart.
const pieRowLimit = 5

// cardRefreshIntervalSeconds is the refresh hint embedded in every card.
const cardRefreshIntervalSeconds = 300

// AssembleCard converts raw query rows plus the synthesizer's hints into a
// renderable dashboard card.
//
// The chart type in the returned card is re-derived from the actual row
// shape and may differ from the synthesizer's suggestion: the model chooses
// the query, the deterministic heuristic chooses the chart.
func AssembleCard(result *datasource.QueryResult, synth *models.SynthesizedQuery, userPrompt string, now time.Time) (*models.DashboardCard, error) {
	if result.RowCount() == 0 {
		return nil, apperrors.ErrNoData
	}

	var smartData any
	chartType := synth.ChartType

	if isScalarResult(result) {
		key := result.Columns[0]
		value := result.Rows[0][key]

		// A single value is always a stat card, whatever the model said.
		smartData = map[string]any{
			"count": value,
			"value": value,
			key:     value,
		}
		chartType = models.ChartTypeStat
	} else {
		detected := DetectColumns(result.Columns)

		points := make([]models.ChartPoint, 0, result.RowCount())
		for _, row := range result.Rows {
			label := row[detected.LabelColumn]
			value := row[detected.ValueColumn]
			points = append(points, models.ChartPoint{
				Category: label,
				Value:    value,
				Label:    label,
				Count:    value,
			})
		}
		smartData = points

		chartType = overrideChartType(result.RowCount(), detected.LabelColumn)
	}

	card := &models.DashboardCard{
		ID:       fmt.Sprintf("ai_%d_%s", now.UnixMilli(), uuid.NewString()[:8]),
		Title:    synth.Title,
		Type:     componentType(chartType),
		Position: models.CardPosition{X: 0, Y: 0},
		Size:     cardSize(chartType),
	}

	card.Content.Basic.Description = synth.Description
	card.Content.Data = models.CardData{
		Source:          "dynamic_sql",
		Query:           synth.SQL,
		RefreshInterval: cardRefreshIntervalSeconds,
		Processing:      "smart_ai_generated",
	}
	card.Content.SmartData = smartData
	card.Content.Chart = models.ChartConfig{
		Type:    chartType,
		Options: chartOptions(chartType),
		Colors:  chartPalette,
	}
	card.Content.AI = models.AIProvenance{
		Prompt:                 userPrompt,
		Insights:               "AI-generated analysis: " + synth.Description,
		VisualizationReasoning: fmt.Sprintf("Chart type '%s' chosen based on data structure and content", chartType),
		SQLQuery:               synth.SQL,
		GeneratedAt:            now.UTC().Format(time.RFC3339),
	}

	return card, nil
}

// isScalarResult reports whether the result is exactly one row with exactly
// one column (a COUNT, SUM or similar).
func isScalarResult(result *datasource.QueryResult) bool {
	return result.RowCount() == 1 && len(result.Rows[0]) == 1 && len(result.Columns) == 1
}

// overrideChartType re-derives the chart type from the row shape, ignoring
// the synthesizer's suggestion:
//   - small categorical result that is not monthly -> pie
//   - label column naming a month or date -> line
//   - everything else -> bar
func overrideChartType(rowCount int, labelColumn string) models.ChartType {
	label := strings.ToLower(labelColumn)

	switch {
	case rowCount <= pieRowLimit && !strings.Contains(label, "month"):
		return models.ChartTypePie
	case strings.Contains(label, "month") || strings.Contains(label, "date"):
		return models.ChartTypeLine
	default:
		return models.ChartTypeBar
	}
}
