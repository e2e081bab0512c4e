package services

import (
	"fmt"

	"borough-recommender/models"
	"borough-recommender/utils"
)

// RentFilter selects boroughs whose rent statistics fit a budget.
type RentFilter struct {
	rents  []models.RentRecord
	logger *utils.Logger
}

// NewRentFilter creates a RentFilter over a read-only rent table.
func NewRentFilter(rents []models.RentRecord, logger *utils.Logger) *RentFilter {
	return &RentFilter{rents: rents, logger: logger}
}

// FilterBoroughs returns the distinct boroughs, in rent-table order, having at
// least one record whose category is selected, whose median is known and
// whose interquartile range overlaps [rentMin, rentMax]. An inverted range is
// corrected by raising rentMax to rentMin.
func (f *RentFilter) FilterBoroughs(categories []models.AccommodationType, rentMin, rentMax float64) []string {
	boroughs := make([]string, 0)
	if len(categories) == 0 {
		return boroughs
	}

	if rentMin > rentMax {
		f.logger.Debug("[filter] Inverted rent range %.0f-%.0f, clamping max to min", rentMin, rentMax)
		rentMax = rentMin
	}

	selected := make(map[models.AccommodationType]struct{}, len(categories))
	for _, c := range categories {
		selected[c] = struct{}{}
	}

	seen := make(map[string]struct{})
	for _, r := range f.rents {
		if _, ok := selected[r.Category]; !ok {
			continue
		}
		if r.Median == nil || !r.Overlaps(rentMin, rentMax) {
			continue
		}
		if _, dup := seen[r.Borough]; dup {
			continue
		}
		seen[r.Borough] = struct{}{}
		boroughs = append(boroughs, r.Borough)
	}

	f.logger.Debug("[filter] %d categories, rent %.0f-%.0f: %d boroughs",
		len(categories), rentMin, rentMax, len(boroughs))
	return boroughs
}

// MatchingRecords returns the records FilterBoroughs would accept.
func (f *RentFilter) MatchingRecords(categories []models.AccommodationType, rentMin, rentMax float64) []models.RentRecord {
	if rentMin > rentMax {
		rentMax = rentMin
	}
	var out []models.RentRecord
	for _, r := range f.rents {
		if r.Median == nil || !r.Overlaps(rentMin, rentMax) {
			continue
		}
		for _, c := range categories {
			if r.Category == c {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// ParseCategories converts raw category names into AccommodationTypes.
func ParseCategories(names []string) ([]models.AccommodationType, error) {
	out := make([]models.AccommodationType, 0, len(names))
	for _, n := range names {
		c, err := models.ParseAccommodationType(n)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, n)
		}
		out = append(out, c)
	}
	return out, nil
}
