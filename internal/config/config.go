package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
	SourceMemory   = "memory"

	ClassifierRemote = "remote"
	ClassifierLocal  = "local"
)

// Config holds the runtime settings of the server and the CLI
type Config struct {
	Port      string
	Env       string
	LogLevel  string
	LogFormat string

	DatasetSource  string
	DatasetPath    string
	RegionColumn   string
	DatabaseURL    string
	SQLitePath     string
	PreloadDataset bool

	Classifier   string
	MLServiceURL string
	MLTimeout    time.Duration
	ModelPath    string
}

// Load reads an optional .env file and then the environment.
// It reports whether a .env file was found.
func Load(files ...string) (*Config, bool, error) {
	found := godotenv.Load(files...) == nil

	cfg, err := FromEnv()
	return cfg, found, err
}

// FromEnv builds the configuration from environment variables only
func FromEnv() (*Config, error) {
	timeout, err := time.ParseDuration(getEnv("ML_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("config: invalid ML_TIMEOUT: %w", err)
	}

	preload, err := strconv.ParseBool(getEnv("PRELOAD_DATASET", "true"))
	if err != nil {
		return nil, fmt.Errorf("config: invalid PRELOAD_DATASET: %w", err)
	}

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		Env:       getEnv("GO_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		DatasetSource:  strings.ToLower(getEnv("DATASET_SOURCE", SourceCSV)),
		DatasetPath:    getEnv("DATASET_PATH", "data/NFHS_Factsheet.csv"),
		RegionColumn:   getEnv("REGION_COLUMN", "States/UTs"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		SQLitePath:     getEnv("SQLITE_PATH", "data/nfhs.db"),
		PreloadDataset: preload,

		Classifier:   strings.ToLower(getEnv("CLASSIFIER", ClassifierRemote)),
		MLServiceURL: getEnv("ML_SERVICE_URL", "http://localhost:8000"),
		MLTimeout:    timeout,
		ModelPath:    getEnv("MODEL_PATH", ""),
	}

	return cfg, cfg.Validate()
}

// Validate checks the enumerated settings
func (c *Config) Validate() error {
	switch c.DatasetSource {
	case SourceCSV, SourceSQLite, SourceMemory:
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required when DATASET_SOURCE=%s", SourcePostgres)
		}
	default:
		return fmt.Errorf("config: unknown DATASET_SOURCE %q", c.DatasetSource)
	}

	switch c.Classifier {
	case ClassifierRemote, ClassifierLocal:
	default:
		return fmt.Errorf("config: unknown CLASSIFIER %q", c.Classifier)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
