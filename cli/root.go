// Package cli provides the command-line interface for the borough recommender.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"borough-recommender/config"
	"borough-recommender/models"
	"borough-recommender/storage"
	"borough-recommender/utils"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	verbose bool

	cfg    *config.Config
	logger *utils.Logger
)

var rootCmd = &cobra.Command{
	Use:   "boroughs",
	Short: "Recommend London boroughs from rent budget and lifestyle preferences",
	Long: `Boroughs recommends London boroughs to live in.

Boroughs are first filtered by accommodation type and monthly rent range,
then ranked by how well their local venues match a ranked list of
lifestyle groups (green spaces, shopping, public transport, ...).`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logger = utils.NewLoggerWith(level, cfg.LogFormat, cmd.ErrOrStderr())
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(groupsCmd)
}

// openLoader returns the configured table source. The returned close func
// must be called once loading is done.
func openLoader(ctx context.Context, c *config.Config, log *utils.Logger) (storage.DatasetLoader, func() error, error) {
	switch c.DataSource {
	case config.SourceFiles, "":
		return storage.NewFileLoader(c, log), func() error { return nil }, nil
	case config.SourcePostgres:
		store, err := storage.NewPostgresStore(ctx, c.DSN(), c.MaxRetries, log)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown data source %q (want %q or %q)",
			c.DataSource, config.SourceFiles, config.SourcePostgres)
	}
}

func loadDataset(ctx context.Context) (*models.Dataset, error) {
	loader, closeLoader, err := openLoader(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := closeLoader(); err != nil {
			logger.Warn("[cli] Close data source: %v", err)
		}
	}()

	ds, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	logger.Info("[cli] Loaded %d rent records, %d venues, %d boroughs from %s",
		len(ds.Rents()), len(ds.Venues()), ds.Density().Len(), cfg.DataSource)
	return ds, nil
}
