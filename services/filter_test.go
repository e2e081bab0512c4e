package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"borough-recommender/models"
	"borough-recommender/utils"
)

func TestFilterBoroughs(t *testing.T) {
	f := NewRentFilter(sampleDataset(t).Rents(), utils.Nop())

	tests := []struct {
		name       string
		categories []models.AccommodationType
		min, max   float64
		want       []string
	}{
		{"studios in budget", []models.AccommodationType{models.Studio}, 400, 800, []string{"Hackney", "Camden", "Barnet", "Lambeth"}},
		{"no categories", nil, 0, 5000, []string{}},
		{"narrow range", []models.AccommodationType{models.Studio}, 900, 1000, []string{"Camden"}},
		{"several categories dedupe boroughs", []models.AccommodationType{models.Studio, models.Room}, 550, 650, []string{"Hackney", "Barnet"}},
		{"missing median never matches", []models.AccommodationType{models.Room}, 500, 700, []string{"Hackney"}},
		{"inverted range clamps max to min", []models.AccommodationType{models.Studio}, 1300, 500, []string{"Westminster"}},
		{"nothing overlaps", []models.AccommodationType{models.Studio}, 5000, 6000, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.FilterBoroughs(tt.categories, tt.min, tt.max)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterBoroughsWideningRangeNeverDropsBoroughs(t *testing.T) {
	f := NewRentFilter(sampleDataset(t).Rents(), utils.Nop())
	cats := []models.AccommodationType{models.Studio, models.Room}

	narrow := f.FilterBoroughs(cats, 600, 700)
	wide := f.FilterBoroughs(cats, 300, 1500)
	for _, b := range narrow {
		assert.Contains(t, wide, b)
	}
}

func TestMatchingRecordsAgreesWithFilter(t *testing.T) {
	f := NewRentFilter(sampleDataset(t).Rents(), utils.Nop())
	cats := []models.AccommodationType{models.Studio}

	records := f.MatchingRecords(cats, 400, 800)
	boroughs := f.FilterBoroughs(cats, 400, 800)

	require.Len(t, records, 4)
	for _, r := range records {
		assert.Contains(t, boroughs, r.Borough)
		assert.Equal(t, models.Studio, r.Category)
	}
}

func TestParseCategories(t *testing.T) {
	got, err := ParseCategories([]string{"studio", " Two Bedroom "})
	require.NoError(t, err)
	assert.Equal(t, []models.AccommodationType{models.Studio, models.TwoBedroom}, got)

	_, err = ParseCategories([]string{"Penthouse"})
	assert.ErrorIs(t, err, ErrUnknownCategory)
}
