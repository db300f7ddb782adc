package apperrors

import "errors"

var (
	// ErrEmptyPrompt indicates the user submitted an empty or whitespace-only prompt.
	ErrEmptyPrompt = errors.New("user prompt is required")

	// ErrSchemaDiscovery indicates no tables could be discovered from the database.
	ErrSchemaDiscovery = errors.New("failed to discover database schema")

	// ErrSynthesis indicates the language model failed to produce a usable query.
	ErrSynthesis = errors.New("failed to convert natural language to SQL")

	// ErrNoData indicates a query executed successfully but returned zero rows.
	ErrNoData = errors.New("no data returned from query")

	// ErrUnsafeSQL indicates a generated statement was rejected by the SQL guard.
	ErrUnsafeSQL = errors.New("generated SQL rejected by safety checks")
)
