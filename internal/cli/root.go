package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/maternalrisk/backend/internal/bootstrap"
	"github.com/maternalrisk/backend/internal/config"
	"github.com/maternalrisk/backend/internal/logging"
	"github.com/maternalrisk/backend/internal/service"
)

type options struct {
	logLevel   string
	source     string
	dataset    string
	sqlitePath string
	classifier string
	modelPath  string
	mlURL      string
}

// runtime is what every subcommand needs, built once in PersistentPreRunE
type runtime struct {
	cfg     *config.Config
	log     *logrus.Logger
	store   *service.DatasetStore
	riskSvc *service.RiskService
	closers []func()
}

// onClose registers fn to run after the command returns
func (rt *runtime) onClose(fn func()) {
	rt.closers = append(rt.closers, fn)
}

func (rt *runtime) close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
	rt.closers = nil
}

// Execute runs the riskctl command tree
func Execute() {
	root, rt := newRootCmd()
	if err := execute(root, rt); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// execute runs root and releases what setup opened, also when the command fails
func execute(root *cobra.Command, rt *runtime) error {
	defer rt.close()
	return root.Execute()
}

// NewRootCmd builds the riskctl root command
func NewRootCmd() *cobra.Command {
	root, _ := newRootCmd()
	return root
}

func newRootCmd() (*cobra.Command, *runtime) {
	opts := &options{}
	rt := &runtime{}

	root := &cobra.Command{
		Use:           "riskctl",
		Short:         "Maternal health risk scoring from the command line.",
		Long:          "riskctl scores maternal health risk from vitals, lifestyle metrics and NFHS region indicators.",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.setup(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.logLevel, "loglevel", "l", "warn", "Set log level. Available: debug, info, warn, error")
	flags.StringVar(&opts.source, "source", "", "Indicator source: csv, sqlite, postgres or memory (default from DATASET_SOURCE)")
	flags.StringVar(&opts.dataset, "dataset", "", "Path to the NFHS factsheet CSV (default from DATASET_PATH)")
	flags.StringVar(&opts.sqlitePath, "sqlite", "", "Path to the SQLite indicator database (default from SQLITE_PATH)")
	flags.StringVar(&opts.classifier, "classifier", "", "Classifier: remote or local (default from CLASSIFIER)")
	flags.StringVar(&opts.modelPath, "model", "", "Path to the local logistic model JSON (default from MODEL_PATH)")
	flags.StringVar(&opts.mlURL, "ml-url", "", "Base URL of the model server (default from ML_SERVICE_URL)")

	root.AddCommand(newRegionsCmd(rt), newScoreCmd(rt), newImportCmd(rt))

	return root, rt
}

func (rt *runtime) setup(cmd *cobra.Command, opts *options) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	rt.cfg = cfg
	rt.log, err = logging.NewWithWriter(cmd.ErrOrStderr(), opts.logLevel, "text")
	if err != nil {
		return err
	}

	// Import reads the CSV and opens its own target.
	if cmd.Name() == "import" {
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	source, err := bootstrap.NewSource(ctx, cfg, rt.log)
	if err != nil {
		return err
	}
	rt.onClose(source.Close)

	rt.store = service.NewDatasetStore(source, rt.log, nil)

	// Listing regions never needs the classifier.
	if cmd.Name() != "score" {
		return nil
	}
	classifier, err := bootstrap.NewClassifier(cfg)
	if err != nil {
		return err
	}
	rt.riskSvc = service.NewRiskService(classifier, rt.store, rt.log, nil)

	return nil
}

func (o *options) apply(cfg *config.Config) {
	if o.source != "" {
		cfg.DatasetSource = o.source
	}
	if o.dataset != "" {
		cfg.DatasetPath = o.dataset
	}
	if o.sqlitePath != "" {
		cfg.SQLitePath = o.sqlitePath
	}
	if o.classifier != "" {
		cfg.Classifier = o.classifier
	}
	if o.modelPath != "" {
		cfg.ModelPath = o.modelPath
	}
	if o.mlURL != "" {
		cfg.MLServiceURL = o.mlURL
	}
}
