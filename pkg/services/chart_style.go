package services

import "github.com/kenalhq/insight-engine/pkg/models"

// chartPalette is the fixed 10-color palette cycled by index. Colors are not
// semantically mapped to categories.
var chartPalette = []string{
	"#1976d2", "#dc004e", "#ff9800", "#4caf50",
	"#9c27b0", "#f44336", "#607d8b", "#795548",
	"#009688", "#e91e63",
}

// chartOptions returns the static rendering options for a chart type.
func chartOptions(chartType models.ChartType) map[string]any {
	base := map[string]any{
		"responsive":          true,
		"maintainAspectRatio": false,
		"plugins": map[string]any{
			"legend":  map[string]any{"display": true, "position": "top"},
			"tooltip": map[string]any{"mode": "index", "intersect": false},
		},
	}

	switch chartType {
	case models.ChartTypeLine:
		base["scales"] = map[string]any{
			"y": map[string]any{"beginAtZero": true},
			"x": map[string]any{"type": "category"},
		}
		base["elements"] = map[string]any{
			"point": map[string]any{"radius": 4},
		}
		return base
	case models.ChartTypeBar:
		base["scales"] = map[string]any{
			"y": map[string]any{"beginAtZero": true},
			"x": map[string]any{"type": "category"},
		}
		return base
	case models.ChartTypePie, models.ChartTypeDoughnut:
		return map[string]any{
			"responsive":          true,
			"maintainAspectRatio": false,
			"plugins": map[string]any{
				"legend": map[string]any{"position": "bottom"},
			},
		}
	default:
		return base
	}
}

// cardSize returns the layout hint for a chart type.
func cardSize(chartType models.ChartType) models.CardSize {
	if chartType == models.ChartTypeStat {
		return models.CardSize{Width: 4, Height: 3}
	}
	return models.CardSize{Width: 6, Height: 4}
}

// componentType maps chart types onto dashboard component types: the four
// plotted charts render inside the generic chart component, stat and table
// are components of their own.
func componentType(chartType models.ChartType) string {
	switch chartType {
	case models.ChartTypeBar, models.ChartTypeLine, models.ChartTypePie, models.ChartTypeDoughnut:
		return "chart"
	default:
		return string(chartType)
	}
}
