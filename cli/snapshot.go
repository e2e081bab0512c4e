package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"borough-recommender/services"
	"borough-recommender/web"
)

var (
	snapshotFlags requestFlags
	snapshotName  string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render the recommendation map to a PNG",
	Long: `Run a recommendation and capture its map with headless Chrome.

The PNG is written to SNAPSHOT_DIR. Set CHROME_BIN if Chrome or Chromium
is not on PATH.

Example:
  boroughs snapshot -c Studio --rent-max 900 -r "Going out,Eating out" --venues -f going-out.png`,
	Args: cobra.NoArgs,
	RunE: runSnapshot,
}

func init() {
	snapshotFlags.register(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&snapshotName, "file", "f", "recommendation.png", "output file name inside SNAPSHOT_DIR")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	ds, err := loadDataset(ctx)
	if err != nil {
		return err
	}

	rec, err := services.NewRecommender(ds, logger).Run(ctx, snapshotFlags.request(cmd))
	if err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	view := services.NewMapBuilder(ds, cfg.VenueSampleStride).Build(rec)

	geojson, err := os.ReadFile(cfg.DataPath(cfg.GeoJSONFile))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read boundaries: %w", err)
		}
		logger.Warn("[cli] No borough boundaries at %s, map will have markers only", cfg.DataPath(cfg.GeoJSONFile))
	}

	page, err := web.RenderMapPage(view, geojson)
	if err != nil {
		return err
	}

	path, err := services.NewSnapshotter(cfg, logger).WriteFile(ctx, page, snapshotName)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n%d boroughs, map saved to %s\n",
		services.Summarize(rec.Request), len(rec.Matches), path)
	return nil
}
