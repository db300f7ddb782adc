package models

import "time"

// ColumnType classifies a column based on runtime inspection of sampled values.
type ColumnType string

const (
	ColumnTypeTimestamp ColumnType = "timestamp"
	ColumnTypeUUID      ColumnType = "uuid"
	ColumnTypeText      ColumnType = "text"
	ColumnTypeInteger   ColumnType = "integer"
	ColumnTypeNumeric   ColumnType = "numeric"
	ColumnTypeBoolean   ColumnType = "boolean"
	ColumnTypeJSON      ColumnType = "json"
	ColumnTypeUnknown   ColumnType = "unknown"
)

// ColumnInfo describes a single column inferred from sample rows.
type ColumnInfo struct {
	Name        string     `json:"name"`
	Type        ColumnType `json:"type"`
	Nullable    bool       `json:"nullable"`
	Description string     `json:"description,omitempty"`
}

// Relationship is a foreign-key hint between tables.
// Discovery does not populate these yet; the slice stays empty.
type Relationship struct {
	Table         string `json:"table"`
	Column        string `json:"column"`
	ForeignTable  string `json:"foreign_table"`
	ForeignColumn string `json:"foreign_column"`
}

// TableInfo holds one table's inferred structure.
type TableInfo struct {
	Columns       []ColumnInfo     `json:"columns"`
	Relationships []Relationship   `json:"relationships"`
	SampleData    []map[string]any `json:"sample_data"`
}

// SchemaSnapshot is the engine's current understanding of the KENAL database.
// A snapshot is immutable once built; refresh replaces it wholesale.
type SchemaSnapshot struct {
	Tables     map[string]*TableInfo `json:"tables"`
	CapturedAt time.Time             `json:"captured_at"`

	// TableErrors records per-table discovery failures that were tolerated.
	// Kept for observability; an entry here does not invalidate the snapshot.
	TableErrors map[string]string `json:"table_errors,omitempty"`
}
