package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maternalrisk/backend/internal/domain"
	"github.com/maternalrisk/backend/internal/repository"
)

// schema creates nfhs_indicators: one row per (record_id, indicator), NULL value for a missing cell
//
//go:embed sql/ddl.sql
var schema string

const selectIndicators = `
	SELECT record_id, region, indicator, value
	FROM nfhs_indicators
	ORDER BY record_id, indicator
`

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// IndicatorRepository implements domain.IndicatorSource on a PostgreSQL table
type IndicatorRepository struct {
	pool *pgxpool.Pool
	db   querier
}

// NewIndicatorRepository creates a new PostgreSQL indicator repository
func NewIndicatorRepository(pool *pgxpool.Pool) *IndicatorRepository {
	return &IndicatorRepository{pool: pool, db: pool}
}

// Name implements domain.IndicatorSource
func (r *IndicatorRepository) Name() string {
	return "postgres:nfhs_indicators"
}

// LoadRecords reads the long-format indicator table and folds it into region records
func (r *IndicatorRepository) LoadRecords(ctx context.Context) ([]domain.RegionRecord, error) {
	rows, err := r.db.Query(ctx, selectIndicators)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query indicators: %w", err)
	}
	defer rows.Close()

	var results []repository.IndicatorRow
	for rows.Next() {
		var row repository.IndicatorRow
		if err := rows.Scan(&row.RecordID, &row.Region, &row.Indicator, &row.Value); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan indicator row: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate indicator rows: %w", err)
	}

	return repository.AssembleRecords(results), nil
}

// Init creates the indicator schema if it does not exist yet
func (r *IndicatorRepository) Init(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: failed to create schema: %w", err)
	}
	return nil
}

// Import replaces the contents of the indicator table with records in one transaction
func (r *IndicatorRepository) Import(ctx context.Context, records []domain.RegionRecord) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin import: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM nfhs_indicators`); err != nil {
		return fmt.Errorf("postgres: failed to clear indicators: %w", err)
	}

	rows := repository.FlattenRecords(records)
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"nfhs_indicators"},
		[]string{"record_id", "region", "indicator", "value"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return []any{rows[i].RecordID, rows[i].Region, rows[i].Indicator, rows[i].Value}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to copy indicators: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit import: %w", err)
	}
	return nil
}

// Health checks database connectivity
func (r *IndicatorRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
