package services

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"borough-recommender/models"
)

// BuildPreferences turns a ranking into a normalised weight vector. Position
// i of N gets raw weight N-i, unranked groups get 0, and the result is divided
// by the sum of raw weights.
func BuildPreferences(ranking []models.VenueGroup) (models.PreferenceVector, error) {
	var prefs models.PreferenceVector
	if len(ranking) == 0 {
		return prefs, ErrEmptyRanking
	}

	n := len(ranking)
	seen := make(map[models.VenueGroup]struct{}, n)
	for i, g := range ranking {
		if !g.Valid() {
			return models.PreferenceVector{}, fmt.Errorf("%w: %d", ErrUnknownGroup, int(g))
		}
		if _, dup := seen[g]; dup {
			return models.PreferenceVector{}, fmt.Errorf("%w: %s", ErrDuplicateGroup, g)
		}
		seen[g] = struct{}{}
		prefs[g] = float64(n - i)
	}

	floats.Scale(1/floats.Sum(prefs[:]), prefs[:])
	return prefs, nil
}

// ParseRanking converts raw group names into VenueGroups, keeping order.
func ParseRanking(names []string) ([]models.VenueGroup, error) {
	out := make([]models.VenueGroup, 0, len(names))
	for _, n := range names {
		g, err := models.ParseVenueGroup(n)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, n)
		}
		out = append(out, g)
	}
	return out, nil
}
