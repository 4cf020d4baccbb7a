package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/maternalrisk/backend/internal/domain"
	"github.com/maternalrisk/backend/internal/repository"
)

//go:embed sql/*
var f embed.FS

const selectIndicators = `
	SELECT record_id, region, indicator, value
	FROM nfhs_indicators
	ORDER BY record_id, indicator
`

// IndicatorRepository implements domain.IndicatorSource on a SQLite file
type IndicatorRepository struct {
	path string
}

// NewIndicatorRepository creates a repository for the database at path
func NewIndicatorRepository(path string) *IndicatorRepository {
	return &IndicatorRepository{path: path}
}

// Open opens the database file for writing, creating it if needed
func Open(path string) (*sql.DB, error) {
	if path == "" {
		return nil, errors.New("sqlite: database path not specified")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database %s: %w", path, err)
	}
	return db, nil
}

// Init creates the indicator schema if it does not exist yet
func Init(ctx context.Context, db *sql.DB) error {
	b, err := f.ReadFile("sql/ddl.sql")
	if err != nil {
		return fmt.Errorf("sqlite: failed to read schema file: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(b)); err != nil {
		return fmt.Errorf("sqlite: failed to create schema: %w", err)
	}
	return nil
}

// Import replaces the contents of the long-format table with records in one transaction
func Import(ctx context.Context, db *sql.DB, records []domain.RegionRecord) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: failed to begin import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM nfhs_indicators`); err != nil {
		return fmt.Errorf("sqlite: failed to clear indicators: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO nfhs_indicators (record_id, region, indicator, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sqlite: failed to prepare import: %w", err)
	}
	defer stmt.Close()

	for _, row := range repository.FlattenRecords(records) {
		if _, err := stmt.ExecContext(ctx, row.RecordID, row.Region, row.Indicator, row.Value); err != nil {
			return fmt.Errorf("sqlite: failed to import %s/%s: %w", row.Region, row.Indicator, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: failed to commit import: %w", err)
	}
	return nil
}

// openReadOnly opens an existing database without creating it
func openReadOnly(path string) (*sql.DB, error) {
	if path == "" {
		return nil, errors.New("sqlite: database path not specified")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("sqlite: database %s is not available: %w", path, err)
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database %s: %w", path, err)
	}
	return db, nil
}

// Name implements domain.IndicatorSource
func (r *IndicatorRepository) Name() string {
	return "sqlite:" + r.path
}

// LoadRecords implements domain.IndicatorSource
func (r *IndicatorRepository) LoadRecords(ctx context.Context) ([]domain.RegionRecord, error) {
	db, err := openReadOnly(r.path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, selectIndicators)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to query indicators: %w", err)
	}
	defer rows.Close()

	var results []repository.IndicatorRow
	for rows.Next() {
		var (
			row   repository.IndicatorRow
			value sql.NullString
		)
		if err := rows.Scan(&row.RecordID, &row.Region, &row.Indicator, &value); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan indicator row: %w", err)
		}
		if value.Valid {
			v := value.String
			row.Value = &v
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: failed to iterate indicator rows: %w", err)
	}

	return repository.AssembleRecords(results), nil
}
