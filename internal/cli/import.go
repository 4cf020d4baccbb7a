package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/maternalrisk/backend/internal/config"
	"github.com/maternalrisk/backend/internal/domain"
	"github.com/maternalrisk/backend/internal/repository/csvfile"
	"github.com/maternalrisk/backend/internal/repository/postgres"
	"github.com/maternalrisk/backend/internal/repository/sqlite"
)

func newImportCmd(rt *runtime) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load the NFHS factsheet CSV into a SQLite or PostgreSQL indicator source",
		Long: "import reads the CSV given by --dataset, creates the nfhs_indicators table if needed " +
			"and replaces its contents.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			csvSource := csvfile.NewSource(rt.cfg.DatasetPath, rt.cfg.RegionColumn)
			records, err := csvSource.LoadRecords(ctx)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", domain.ErrDataUnavailable, csvSource.Name(), err)
			}

			var dest string
			switch target {
			case config.SourceSQLite:
				dest, err = rt.cfg.SQLitePath, importSQLite(ctx, rt.cfg.SQLitePath, records)
			case config.SourcePostgres:
				dest, err = "postgres", rt.importPostgres(ctx, records)
			default:
				return fmt.Errorf("import: unknown target %q, want %s or %s", target, config.SourceSQLite, config.SourcePostgres)
			}
			if err != nil {
				return err
			}

			rt.log.WithField("records", len(records)).WithField("target", dest).Info("Indicator dataset imported")
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d records into %s\n", len(records), dest)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", config.SourceSQLite, "Import target: sqlite or postgres")

	return cmd
}

func importSQLite(ctx context.Context, path string, records []domain.RegionRecord) error {
	db, err := sqlite.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := sqlite.Init(ctx, db); err != nil {
		return err
	}
	return sqlite.Import(ctx, db, records)
}

func (rt *runtime) importPostgres(ctx context.Context, records []domain.RegionRecord) error {
	if rt.cfg.DatabaseURL == "" {
		return errors.New("import: DATABASE_URL is required for the postgres target")
	}
	pool, err := pgxpool.New(ctx, rt.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("import: could not create postgres pool: %w", err)
	}
	rt.onClose(pool.Close)

	repo := postgres.NewIndicatorRepository(pool)
	if err := repo.Init(ctx); err != nil {
		return err
	}
	return repo.Import(ctx, records)
}
