// Package datasource provides access to the live KENAL database.
package datasource

import "context"

// QueryResult holds rows from one executed statement. Columns preserves the
// select-list order, which map keys cannot.
type QueryResult struct {
	Columns []string
	Rows    []map[string]any
}

// RowCount returns the number of rows in the result.
func (r *QueryResult) RowCount() int {
	return len(r.Rows)
}

// RowSampler fetches sample rows used for runtime schema inference.
type RowSampler interface {
	// SampleRows returns up to limit rows from the table as plain key/value
	// maps. An empty slice means the table exists but holds no data.
	SampleRows(ctx context.Context, table string, limit int) ([]map[string]any, error)
}

// QueryExecutor runs a SQL statement and returns its rows verbatim.
type QueryExecutor interface {
	// ExecuteQuery runs the statement exactly once. No retry, no rewriting.
	ExecuteQuery(ctx context.Context, sqlQuery string) (*QueryResult, error)
}
