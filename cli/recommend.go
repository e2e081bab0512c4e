package cli

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"borough-recommender/models"
	"borough-recommender/services"
	"borough-recommender/storage"
)

var (
	recommendFlags requestFlags
	recommendOut   string
	recommendJSON  bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank boroughs for a budget and lifestyle preferences",
	Long: `Filter boroughs by accommodation type and rent range, then rank them by
venue density weighted by your preference order.

Examples:
  boroughs recommend -c Studio --rent-min 400 --rent-max 800 -r "Green spaces,Shopping"
  boroughs recommend -c "One Bedroom,Two Bedroom" --rent-max 1600 -r "Public Transport" -n 3 --out recs.csv
  boroughs recommend -c Room -r Groceries --json`,
	Args: cobra.NoArgs,
	RunE: runRecommend,
}

func init() {
	recommendFlags.register(recommendCmd)
	recommendCmd.Flags().StringVarP(&recommendOut, "out", "o", "", "write results to a CSV file")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "print the recommendation as JSON")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	ds, err := loadDataset(ctx)
	if err != nil {
		return err
	}

	req := recommendFlags.request(cmd)
	recommender := services.NewRecommender(ds, logger)
	rec, err := recommender.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("recommend: %w", err)
	}

	if recommendOut != "" {
		w, err := storage.NewCSVWriter(recommendOut)
		if err != nil {
			return err
		}
		if err := exportRecommendation(w, rec); err != nil {
			return err
		}
		logger.Info("[cli] Wrote %d matches to %s", len(rec.Matches), recommendOut)
	}

	out := cmd.OutOrStdout()
	if recommendJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	categories, err := services.ParseCategories(req.Categories)
	if err != nil {
		return err
	}
	insights := services.NewInsightService(logger)
	report := insights.Generate(recommender.Filter().MatchingRecords(categories, req.RentMin, req.RentMax))

	fmt.Fprintln(out, services.Summarize(req))
	insights.Print(out, rec, report)
	return nil
}

func exportRecommendation(w storage.RecommendationWriter, rec *models.Recommendation) error {
	if err := w.WriteRecommendation(rec); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
