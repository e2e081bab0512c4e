package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"borough-recommender/metrics"
	"borough-recommender/models"
	"borough-recommender/utils"
	"borough-recommender/validation"
)

// Recommender scores candidate boroughs against a preference vector.
type Recommender struct {
	dataset *models.Dataset
	filter  *RentFilter
	logger  *utils.Logger
	now     func() time.Time
}

// NewRecommender creates a Recommender over a loaded dataset.
func NewRecommender(dataset *models.Dataset, logger *utils.Logger) *Recommender {
	return &Recommender{
		dataset: dataset,
		filter:  NewRentFilter(dataset.Rents(), logger),
		logger:  logger,
		now:     time.Now,
	}
}

// Filter exposes the rent filter bound to the same dataset.
func (r *Recommender) Filter() *RentFilter { return r.filter }

// Dataset returns the tables the recommender scores against.
func (r *Recommender) Dataset() *models.Dataset { return r.dataset }

// Recommend scores each candidate as the dot product of its density row with
// prefs, sorts descending (ties keep density-table order) and keeps the top
// N. Returned scores are rescaled to percentages of the kept subset.
func (r *Recommender) Recommend(candidates []string, prefs models.PreferenceVector, topN int) ([]models.Match, error) {
	if topN < 1 {
		return nil, ErrInvalidTopN
	}

	wanted := make(map[string]struct{}, len(candidates))
	for _, b := range candidates {
		wanted[b] = struct{}{}
	}

	density := r.dataset.Density()
	matches := make([]models.Match, 0, len(candidates))
	for i := 0; i < density.Len(); i++ {
		row := density.Row(i)
		if _, ok := wanted[row.Borough]; !ok {
			continue
		}
		delete(wanted, row.Borough)
		matches = append(matches, models.Match{
			Borough: row.Borough,
			Score:   floats.Dot(prefs[:], row.Scores[:]),
		})
	}
	for b := range wanted {
		r.logger.Debug("[recommender] Candidate %q has no density row, skipped", b)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > topN {
		matches = matches[:topN]
	}

	var total float64
	for _, m := range matches {
		total += m.Score
	}
	if total > 0 {
		for i := range matches {
			matches[i].Score = 100 * matches[i].Score / total
		}
	}

	return matches, nil
}

// Run validates a request and executes filter, preference and scoring
// stages. An empty candidate set yields an empty recommendation even when the
// ranking is empty.
func (r *Recommender) Run(ctx context.Context, req models.Request) (*models.Recommendation, error) {
	start := r.now()
	defer func() {
		metrics.RecommendationDuration.Observe(time.Since(start).Seconds())
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec, err := r.run(req)
	switch {
	case err != nil:
		metrics.RecommendationsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	case len(rec.Matches) == 0:
		metrics.RecommendationsTotal.WithLabelValues("empty").Inc()
	default:
		metrics.RecommendationsTotal.WithLabelValues("ok").Inc()
	}

	r.logger.Info("[recommender] %s: %d candidates, %d matches",
		rec.ID, len(rec.Candidates), len(rec.Matches))
	return rec, nil
}

func (r *Recommender) run(req models.Request) (*models.Recommendation, error) {
	if err := validation.ValidateStruct(&req); err != nil {
		return nil, err
	}

	categories, err := ParseCategories(req.Categories)
	if err != nil {
		return nil, err
	}
	ranking, err := ParseRanking(req.Ranking)
	if err != nil {
		return nil, err
	}

	rec := &models.Recommendation{
		ID:        uuid.NewString(),
		Request:   req,
		Matches:   []models.Match{},
		CreatedAt: r.now(),
	}

	rec.Candidates = r.filter.FilterBoroughs(categories, req.RentMin, req.RentMax)
	metrics.RecommendationCandidates.Observe(float64(len(rec.Candidates)))
	if len(rec.Candidates) == 0 {
		return rec, nil
	}

	prefs, err := BuildPreferences(ranking)
	if err != nil {
		return nil, fmt.Errorf("build preferences: %w", err)
	}
	rec.Preferences = prefs

	matches, err := r.Recommend(rec.Candidates, prefs, req.TopN)
	if err != nil {
		return nil, err
	}
	rec.Matches = matches
	return rec, nil
}
