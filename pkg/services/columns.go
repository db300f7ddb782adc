package services

import "strings"

// labelColumnHints is the priority-ordered substring list for locating the
// category/label column of a result set.
var labelColumnHints = []string{
	"name", "category", "type", "country", "gender", "element", "group", "month",
}

// valueColumnHints is the priority-ordered substring list for locating the
// numeric value column of a result set.
var valueColumnHints = []string{
	"count", "total", "sum", "avg", "value",
}

// DetectedColumns names the label and value columns chosen for charting.
type DetectedColumns struct {
	LabelColumn string
	ValueColumn string
}

// DetectColumns picks the label and value columns from a result's column
// names by substring matching against the hint lists. Falls back to the
// first column for labels, and the second (then first) column for values.
func DetectColumns(columns []string) DetectedColumns {
	if len(columns) == 0 {
		return DetectedColumns{}
	}

	label := matchHint(columns, labelColumnHints)
	if label == "" {
		label = columns[0]
	}

	value := matchHint(columns, valueColumnHints)
	if value == "" {
		if len(columns) > 1 {
			value = columns[1]
		} else {
			value = columns[0]
		}
	}

	return DetectedColumns{LabelColumn: label, ValueColumn: value}
}

// matchHint returns the first column containing any hint, scanning hints in
// priority order.
func matchHint(columns []string, hints []string) string {
	for _, hint := range hints {
		for _, col := range columns {
			if strings.Contains(strings.ToLower(col), hint) {
				return col
			}
		}
	}
	return ""
}
