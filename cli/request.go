package cli

import (
	"github.com/spf13/cobra"

	"borough-recommender/models"
)

// requestFlags are shared by commands that run a recommendation.
type requestFlags struct {
	categories []string
	rentMin    float64
	rentMax    float64
	ranking    []string
	topN       int
	venues     bool
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.categories, "categories", "c", nil, `accommodation types, e.g. "Studio,One Bedroom"`)
	cmd.Flags().Float64Var(&f.rentMin, "rent-min", 0, "minimum monthly rent in £")
	cmd.Flags().Float64Var(&f.rentMax, "rent-max", 0, "maximum monthly rent in £ (default: rent slider maximum)")
	cmd.Flags().StringSliceVarP(&f.ranking, "rank", "r", nil, `venue groups, most important first, e.g. "Green spaces,Shopping"`)
	cmd.Flags().IntVarP(&f.topN, "top", "n", 0, "number of boroughs (default: DEFAULT_RECOMMENDATIONS)")
	cmd.Flags().BoolVar(&f.venues, "venues", false, "include sampled venue markers on the map")
}

func (f *requestFlags) request(cmd *cobra.Command) models.Request {
	req := models.Request{
		Categories: f.categories,
		RentMin:    f.rentMin,
		RentMax:    f.rentMax,
		Ranking:    f.ranking,
		TopN:       f.topN,
		PlotVenues: f.venues,
	}
	if !cmd.Flags().Changed("rent-max") {
		req.RentMax = float64(cfg.RentSliderMax)
	}
	if req.TopN == 0 {
		req.TopN = cfg.DefaultRecommendations
	}
	return req
}
