package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"borough-recommender/models"
)

func TestBuildPreferencesTwoGroups(t *testing.T) {
	prefs, err := BuildPreferences([]models.VenueGroup{models.GreenSpaces, models.Shopping})
	require.NoError(t, err)

	assert.InDelta(t, 2.0/3, prefs.Weight(models.GreenSpaces), 1e-12)
	assert.InDelta(t, 1.0/3, prefs.Weight(models.Shopping), 1e-12)
	assert.Zero(t, prefs.Weight(models.EatingOut))
}

func TestBuildPreferencesFullRanking(t *testing.T) {
	prefs, err := BuildPreferences(models.AllVenueGroups())
	require.NoError(t, err)

	assert.InDelta(t, 1.0, floats.Sum(prefs[:]), 1e-9)
	// 9+8+...+1 = 45
	assert.InDelta(t, 9.0/45, prefs.Weight(models.EatingOut), 1e-12)
	assert.InDelta(t, 1.0/45, prefs.Weight(models.Shopping), 1e-12)
	for i := 1; i < len(prefs); i++ {
		assert.Greater(t, prefs[i-1], prefs[i])
	}
}

func TestBuildPreferencesSingleGroup(t *testing.T) {
	prefs, err := BuildPreferences([]models.VenueGroup{models.Groceries})
	require.NoError(t, err)
	assert.Equal(t, 1.0, prefs.Weight(models.Groceries))
}

func TestBuildPreferencesErrors(t *testing.T) {
	_, err := BuildPreferences(nil)
	assert.ErrorIs(t, err, ErrEmptyRanking)

	_, err = BuildPreferences([]models.VenueGroup{models.Shopping, models.GoingOut, models.Shopping})
	assert.ErrorIs(t, err, ErrDuplicateGroup)

	_, err = BuildPreferences([]models.VenueGroup{models.VenueGroup(42)})
	assert.ErrorIs(t, err, ErrUnknownGroup)
}

func TestParseRanking(t *testing.T) {
	got, err := ParseRanking([]string{"green spaces", "Public Transport"})
	require.NoError(t, err)
	assert.Equal(t, []models.VenueGroup{models.GreenSpaces, models.PublicTransport}, got)

	_, err = ParseRanking([]string{"Nightlife"})
	assert.ErrorIs(t, err, ErrUnknownGroup)
}
