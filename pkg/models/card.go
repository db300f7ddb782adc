package models

// ChartType is the visualization type for a dashboard card.
type ChartType string

const (
	ChartTypeBar      ChartType = "bar"
	ChartTypeLine     ChartType = "line"
	ChartTypePie      ChartType = "pie"
	ChartTypeDoughnut ChartType = "doughnut"
	ChartTypeStat     ChartType = "stat"
	ChartTypeTable    ChartType = "table"
)

// SynthesizedQuery is the language model's structured answer to a prompt.
type SynthesizedQuery struct {
	SQL         string    `json:"sql"`
	ChartType   ChartType `json:"chartType"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Reasoning   string    `json:"reasoning,omitempty"`
}

// CardPosition is a layout hint for the dashboard grid.
type CardPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CardSize is a layout hint in grid units.
type CardSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CardData describes where the card's data comes from and how it refreshes.
type CardData struct {
	Source          string `json:"source"`
	Query           string `json:"query"`
	RefreshInterval int    `json:"refresh_interval"`
	Processing      string `json:"processing"`
}

// ChartConfig holds the rendering configuration chosen by the card assembler.
// The assembler, not the language model, owns the final chart type.
type ChartConfig struct {
	Type    ChartType      `json:"type"`
	Options map[string]any `json:"options"`
	Colors  []string       `json:"colors"`
}

// AIProvenance records how the card was generated, for audit and debugging.
type AIProvenance struct {
	Prompt                 string `json:"prompt"`
	Insights               string `json:"insights"`
	VisualizationReasoning string `json:"visualization_reasoning"`
	SQLQuery               string `json:"sql_query"`
	GeneratedAt            string `json:"generated_at"`
}

// CardContent groups the renderable payload of a dashboard card.
type CardContent struct {
	Basic struct {
		Description string `json:"description"`
	} `json:"basic"`
	Data      CardData     `json:"data"`
	SmartData any          `json:"smartData"`
	Chart     ChartConfig  `json:"chart"`
	AI        AIProvenance `json:"ai"`
}

// DashboardCard is the pipeline's final output artifact: one self-contained,
// renderable unit of analytics output plus its provenance metadata.
type DashboardCard struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Type     string       `json:"type"`
	Position CardPosition `json:"position"`
	Size     CardSize     `json:"size"`
	Content  CardContent  `json:"content"`
}

// ChartPoint is one normalized data point for single-dimension charts.
// Category/Value and Label/Count are aliases of the same pair; both are kept
// so renderers can bind to either name.
type ChartPoint struct {
	Category any `json:"category"`
	Value    any `json:"value"`
	Label    any `json:"label"`
	Count    any `json:"count"`
}
