// Package bootstrap builds the dataset source and classifier selected by configuration.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/maternalrisk/backend/internal/config"
	"github.com/maternalrisk/backend/internal/domain"
	"github.com/maternalrisk/backend/internal/repository/csvfile"
	"github.com/maternalrisk/backend/internal/repository/memory"
	"github.com/maternalrisk/backend/internal/repository/postgres"
	"github.com/maternalrisk/backend/internal/repository/sqlite"
	"github.com/maternalrisk/backend/internal/service"
)

// Source is a configured indicator source with its optional health probe and cleanup
type Source struct {
	domain.IndicatorSource
	Health func(ctx context.Context) error
	Close  func()
}

// NewSource builds the indicator source named by cfg.DatasetSource
func NewSource(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*Source, error) {
	switch cfg.DatasetSource {
	case config.SourcePostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: could not create postgres pool: %w", err)
		}
		repo := postgres.NewIndicatorRepository(pool)
		log.Info("Using PostgreSQL indicator source")
		return &Source{IndicatorSource: repo, Health: repo.Health, Close: pool.Close}, nil

	case config.SourceSQLite:
		log.WithField("path", cfg.SQLitePath).Info("Using SQLite indicator source")
		return &Source{IndicatorSource: sqlite.NewIndicatorRepository(cfg.SQLitePath), Close: func() {}}, nil

	case config.SourceCSV:
		log.WithField("path", cfg.DatasetPath).Info("Using CSV indicator source")
		return &Source{IndicatorSource: csvfile.NewSource(cfg.DatasetPath, cfg.RegionColumn), Close: func() {}}, nil

	case config.SourceMemory:
		log.Warn("Using built-in demo indicator data")
		return &Source{IndicatorSource: memory.NewRepository(memory.DemoRecords()), Close: func() {}}, nil

	default:
		return nil, fmt.Errorf("bootstrap: unknown dataset source %q", cfg.DatasetSource)
	}
}

// Classifier is a configured classifier with its optional health probe
type Classifier struct {
	domain.Classifier
	Health func(ctx context.Context) error
}

// NewClassifier builds the classifier named by cfg.Classifier
func NewClassifier(cfg *config.Config) (*Classifier, error) {
	switch cfg.Classifier {
	case config.ClassifierLocal:
		paths := service.DefaultModelPaths
		if cfg.ModelPath != "" {
			paths = []string{cfg.ModelPath}
		}
		model, err := service.LoadLogisticModel(paths...)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		return &Classifier{Classifier: model}, nil

	case config.ClassifierRemote:
		bridge := service.NewMLBridge(cfg.MLServiceURL, cfg.MLTimeout)
		return &Classifier{Classifier: bridge, Health: bridge.Health}, nil

	default:
		return nil, fmt.Errorf("bootstrap: unknown classifier %q", cfg.Classifier)
	}
}
