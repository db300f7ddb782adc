package datasource

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Postgres samples and executes queries against the hosted KENAL database
// through a shared pgx pool.
type Postgres struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres wraps an existing pool. The caller owns the pool's lifecycle.
func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) *Postgres {
	return &Postgres{
		pool:   pool,
		logger: logger.Named("datasource"),
	}
}

// SampleRows implements RowSampler.
func (p *Postgres) SampleRows(ctx context.Context, table string, limit int) ([]map[string]any, error) {
	// Table names come from a fixed internal list, but quote them anyway.
	query := fmt.Sprintf("SELECT * FROM %s LIMIT %d", pgx.Identifier{table}.Sanitize(), limit)

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sample rows from %s: %w", table, err)
	}
	defer rows.Close()

	result, err := collectRows(rows)
	if err != nil {
		return nil, err
	}
	return result.Rows, nil
}

// ExecuteQuery implements QueryExecutor.
func (p *Postgres) ExecuteQuery(ctx context.Context, sqlQuery string) (*QueryResult, error) {
	p.logger.Debug("executing query", zap.Int("sql_len", len(sqlQuery)))

	rows, err := p.pool.Query(ctx, sqlQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	return collectRows(rows)
}

// collectRows drains a pgx result set preserving select-list column order.
func collectRows(rows pgx.Rows) (*QueryResult, error) {
	fieldDescs := rows.FieldDescriptions()
	columns := make([]string, len(fieldDescs))
	for i, fd := range fieldDescs {
		columns[i] = string(fd.Name)
	}

	collected := make([]map[string]any, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read row values: %w", err)
		}

		rowMap := make(map[string]any, len(columns))
		for i, col := range columns {
			rowMap[col] = values[i]
		}
		collected = append(collected, rowMap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return &QueryResult{Columns: columns, Rows: collected}, nil
}

// Compile-time interface checks.
var (
	_ RowSampler    = (*Postgres)(nil)
	_ QueryExecutor = (*Postgres)(nil)
)
