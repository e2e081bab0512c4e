package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"borough-recommender/services"
	"borough-recommender/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the recommendation form and JSON API",
	Long: `Load the rent, venue and density tables and serve the web UI.

Listens on HTTP_ADDR (default :8050) until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ds, err := loadDataset(ctx)
	if err != nil {
		return err
	}

	srv, err := web.NewServer(cfg, services.NewRecommender(ds, logger), logger)
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}
	return srv.Start(ctx)
}
