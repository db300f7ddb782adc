package models

// SmartRequest is a single natural-language card generation request.
type SmartRequest struct {
	UserPrompt string `json:"userPrompt"`
	UserID     string `json:"userId,omitempty"`
}

// TokenUsage reports language model token consumption for one request.
type TokenUsage struct {
	InputTokens   int     `json:"inputTokens"`
	OutputTokens  int     `json:"outputTokens"`
	TotalTokens   int     `json:"totalTokens"`
	EstimatedCost float64 `json:"estimatedCost"`
}

// RealTimeStatus describes the freshness of the data behind a generated card.
type RealTimeStatus struct {
	IsRealTime      bool   `json:"isRealTime"`
	RefreshInterval int    `json:"refreshInterval"`
	LastUpdated     string `json:"lastUpdated"`
	DataSource      string `json:"dataSource"`
}

// SmartResponse is the uniform envelope returned for every smart request.
// Failures never escape the pipeline as errors; they land here.
type SmartResponse struct {
	Success          bool            `json:"success"`
	CardConfig       *DashboardCard  `json:"cardConfig,omitempty"`
	SQLQuery         string          `json:"sqlQuery,omitempty"`
	Explanation      string          `json:"explanation,omitempty"`
	Error            string          `json:"error,omitempty"`
	ProcessingTimeMs int64           `json:"processingTimeMs"`
	TokenUsage       *TokenUsage     `json:"tokenUsage,omitempty"`
	RealTimeStatus   *RealTimeStatus `json:"realTimeStatus,omitempty"`
}
