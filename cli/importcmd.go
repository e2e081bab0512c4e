package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"borough-recommender/storage"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load the table files into PostgreSQL",
	Long: `Read the rent, venue and density files from DATA_DIR and replace the
tables stored in PostgreSQL. Afterwards DATA_SOURCE=postgres serves from
the database.`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ds, err := storage.NewFileLoader(cfg, logger).Load(ctx)
	if err != nil {
		return fmt.Errorf("load files: %w", err)
	}

	store, err := storage.NewPostgresStore(ctx, cfg.DSN(), cfg.MaxRetries, logger)
	if err != nil {
		logger.Error("[cli] Make sure PostgreSQL is running: docker compose up -d")
		return fmt.Errorf("connect to database: %w", err)
	}
	var w storage.DatasetWriter = store
	defer w.Close()

	if err := w.WriteDataset(ctx, ds); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rent records, %d venues and %d density rows\n",
		len(ds.Rents()), len(ds.Venues()), ds.Density().Len())
	return nil
}
