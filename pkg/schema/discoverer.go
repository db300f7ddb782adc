package schema

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/kenalhq/insight-engine/pkg/apperrors"
	"github.com/kenalhq/insight-engine/pkg/datasource"
	"github.com/kenalhq/insight-engine/pkg/models"
)

// kenalTables is the fixed set of tables the engine knows about.
var kenalTables = []string{
	"kd_users",
	"kd_identity",
	"kd_conversations",
	"kd_messages",
	"kd_problem_updates",
}

// promptSampleRows is how many sample rows are kept on the snapshot for
// prompt enrichment. Kept rows are never used for query logic.
const promptSampleRows = 2

// Discoverer builds schema snapshots by sampling live rows instead of
// reading DDL. Empty tables produce no entry, so they stay invisible to
// the language model.
type Discoverer struct {
	sampler    datasource.RowSampler
	sampleRows int
	logger     *zap.Logger
}

// NewDiscoverer creates a discoverer that fetches sampleRows rows per table.
func NewDiscoverer(sampler datasource.RowSampler, sampleRows int, logger *zap.Logger) *Discoverer {
	if sampleRows <= 0 {
		sampleRows = 3
	}
	return &Discoverer{
		sampler:    sampler,
		sampleRows: sampleRows,
		logger:     logger.Named("schema"),
	}
}

// Discover probes every known table and assembles a snapshot.
// Individual table failures are tolerated and recorded on the snapshot;
// discovering zero tables is a hard error.
func (d *Discoverer) Discover(ctx context.Context, now time.Time) (*models.SchemaSnapshot, error) {
	snapshot := &models.SchemaSnapshot{
		Tables:      make(map[string]*models.TableInfo),
		CapturedAt:  now,
		TableErrors: make(map[string]string),
	}

	for _, table := range kenalTables {
		rows, err := d.sampler.SampleRows(ctx, table, d.sampleRows)
		if err != nil {
			d.logger.Warn("table not accessible, skipping",
				zap.String("table", table),
				zap.Error(err))
			snapshot.TableErrors[table] = err.Error()
			continue
		}

		if len(rows) == 0 {
			d.logger.Warn("table exists but has no data, skipping",
				zap.String("table", table))
			continue
		}

		snapshot.Tables[table] = d.analyzeTable(table, rows)
		d.logger.Debug("table analyzed",
			zap.String("table", table),
			zap.Int("columns", len(snapshot.Tables[table].Columns)))
	}

	if len(snapshot.Tables) == 0 {
		d.logger.Error("no accessible tables found in database")
		return nil, apperrors.ErrSchemaDiscovery
	}

	tableNames := make([]string, 0, len(snapshot.Tables))
	for name := range snapshot.Tables {
		tableNames = append(tableNames, name)
	}
	sort.Strings(tableNames)
	d.logger.Info("database schema discovered", zap.Strings("tables", tableNames))

	return snapshot, nil
}

// analyzeTable infers column structure from the first sample row and
// nullability from all of them.
func (d *Discoverer) analyzeTable(table string, rows []map[string]any) *models.TableInfo {
	first := rows[0]

	// Map iteration order is random; sort column names so prompt text is
	// stable across discoveries.
	names := make([]string, 0, len(first))
	for name := range first {
		names = append(names, name)
	}
	sort.Strings(names)

	columns := make([]models.ColumnInfo, 0, len(names))
	for _, name := range names {
		nullable := false
		for _, row := range rows {
			if row[name] == nil {
				nullable = true
				break
			}
		}

		columns = append(columns, models.ColumnInfo{
			Name:        name,
			Type:        InferColumnType(first[name]),
			Nullable:    nullable,
			Description: describeColumn(table, name),
		})
	}

	sample := rows
	if len(sample) > promptSampleRows {
		sample = sample[:promptSampleRows]
	}

	return &models.TableInfo{
		Columns:       columns,
		Relationships: []models.Relationship{},
		SampleData:    sample,
	}
}
