package services

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"borough-recommender/models"
	"borough-recommender/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate summarises the rent records that passed the filter.
func (s *InsightService) Generate(records []models.RentRecord) *models.RentInsight {
	report := &models.RentInsight{
		RecordsByCategory: make(map[models.AccommodationType]int),
		MedianByBorough:   make(map[string]float64),
	}

	if len(records) == 0 {
		return report
	}

	report.MatchedRecords = len(records)
	report.LowestQuartile = math.Inf(1)
	report.HighestQuartile = math.Inf(-1)

	medians := make([]float64, 0, len(records))
	perBorough := make(map[string][]float64)
	for _, r := range records {
		report.RecordsByCategory[r.Category]++
		if r.LowerQuartile < report.LowestQuartile {
			report.LowestQuartile = r.LowerQuartile
		}
		if r.UpperQuartile > report.HighestQuartile {
			report.HighestQuartile = r.UpperQuartile
		}
		if r.Median != nil {
			medians = append(medians, *r.Median)
			perBorough[r.Borough] = append(perBorough[r.Borough], *r.Median)
		}
	}
	report.CandidateBoroughs = len(perBorough)

	if mean, err := stats.Mean(medians); err == nil {
		report.MeanMedianRent = round2(mean)
	}
	if median, err := stats.Median(medians); err == nil {
		report.MedianMedianRent = round2(median)
	}

	cheapest, priciest := math.Inf(1), math.Inf(-1)
	for borough, values := range perBorough {
		m, err := stats.Median(values)
		if err != nil {
			s.logger.Debug("[insights] No median for %s: %v", borough, err)
			continue
		}
		report.MedianByBorough[borough] = round2(m)
		if m < cheapest || (m == cheapest && borough < report.CheapestBorough) {
			cheapest = m
			report.CheapestBorough = borough
		}
		if m > priciest || (m == priciest && borough < report.PriciestBorough) {
			priciest = m
			report.PriciestBorough = borough
		}
	}

	return report
}

// Print writes the report and the ranked matches as a terminal table.
func (s *InsightService) Print(w io.Writer, rec *models.Recommendation, r *models.RentInsight) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  LONDON BOROUGH RECOMMENDATIONS\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Top Matches\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(rec.Matches) == 0 {
		fmt.Fprintf(w, "  No borough matches the selected criteria\n")
	} else {
		for i, m := range rec.Matches {
			bar := strings.Repeat("█", int(m.Score/5))
			fmt.Fprintf(w, "  \033[1m%d.\033[0m %-26s %6.2f%% %s\n",
				i+1, truncate(m.Borough, 26), m.Score, bar)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Rent Statistics (per month)\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if r.MatchedRecords == 0 {
		fmt.Fprintf(w, "  No rent data in range\n")
	} else {
		fmt.Fprintf(w, "  Matching records   : \033[1m%d\033[0m in %d boroughs\n", r.MatchedRecords, r.CandidateBoroughs)
		fmt.Fprintf(w, "  Mean median rent   : \033[1;32m£%.2f\033[0m\n", r.MeanMedianRent)
		fmt.Fprintf(w, "  Median median rent : \033[1;32m£%.2f\033[0m\n", r.MedianMedianRent)
		fmt.Fprintf(w, "  Quartile span      : \033[1;32m£%.0f - £%.0f\033[0m\n", r.LowestQuartile, r.HighestQuartile)
		fmt.Fprintf(w, "  Cheapest borough   : %s\n", r.CheapestBorough)
		fmt.Fprintf(w, "  Priciest borough   : %s\n", r.PriciestBorough)
	}
	fmt.Fprintln(w)

	if len(r.RecordsByCategory) > 0 {
		fmt.Fprintf(w, "\033[1;33m  Records by Category\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		type catCount struct {
			cat   models.AccommodationType
			count int
		}
		var cats []catCount
		for c, n := range r.RecordsByCategory {
			cats = append(cats, catCount{c, n})
		}
		sort.Slice(cats, func(i, j int) bool {
			if cats[i].count != cats[j].count {
				return cats[i].count > cats[j].count
			}
			return cats[i].cat < cats[j].cat
		})
		for _, cc := range cats {
			fmt.Fprintf(w, "  %-20s %s (%d)\n", cc.cat, strings.Repeat("█", cc.count), cc.count)
		}
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
