package datasource

import "context"

// MockSampler is a configurable RowSampler for tests.
type MockSampler struct {
	// SampleRowsFunc is called when SampleRows is invoked.
	// If nil, returns an empty slice and nil error.
	SampleRowsFunc func(ctx context.Context, table string, limit int) ([]map[string]any, error)

	// SampleRowsCalls counts invocations across all tables.
	SampleRowsCalls int
}

// SampleRows implements RowSampler.
func (m *MockSampler) SampleRows(ctx context.Context, table string, limit int) ([]map[string]any, error) {
	m.SampleRowsCalls++
	if m.SampleRowsFunc != nil {
		return m.SampleRowsFunc(ctx, table, limit)
	}
	return []map[string]any{}, nil
}

// MockExecutor is a configurable QueryExecutor for tests.
type MockExecutor struct {
	// ExecuteQueryFunc is called when ExecuteQuery is invoked.
	// If nil, returns an empty result and nil error.
	ExecuteQueryFunc func(ctx context.Context, sqlQuery string) (*QueryResult, error)

	// ExecuteQueryCalls counts invocations.
	ExecuteQueryCalls int

	// LastSQL holds the statement from the most recent call.
	LastSQL string
}

// ExecuteQuery implements QueryExecutor.
func (m *MockExecutor) ExecuteQuery(ctx context.Context, sqlQuery string) (*QueryResult, error) {
	m.ExecuteQueryCalls++
	m.LastSQL = sqlQuery
	if m.ExecuteQueryFunc != nil {
		return m.ExecuteQueryFunc(ctx, sqlQuery)
	}
	return &QueryResult{Rows: []map[string]any{}}, nil
}

// Compile-time interface checks.
var (
	_ RowSampler    = (*MockSampler)(nil)
	_ QueryExecutor = (*MockExecutor)(nil)
)
