package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"borough-recommender/models"
	"borough-recommender/utils"
)

func ptr(v float64) *float64 { return &v }

func rent(borough string, cat models.AccommodationType, lq, median, uq float64) models.RentRecord {
	return models.RentRecord{
		Borough:       borough,
		Category:      cat,
		Count:         10,
		LowerQuartile: lq,
		Median:        ptr(median),
		UpperQuartile: uq,
	}
}

func densityRow(borough string, scores map[models.VenueGroup]float64) models.DensityRow {
	row := models.DensityRow{Borough: borough}
	for g, s := range scores {
		row.Scores[g] = s
	}
	return row
}

// sampleDataset is five boroughs. Four have studios in the 400-800 range;
// Westminster is out of budget but would otherwise win.
func sampleDataset(t *testing.T) *models.Dataset {
	t.Helper()

	rents := []models.RentRecord{
		rent("Hackney", models.Studio, 600, 700, 800),
		rent("Camden", models.Studio, 700, 850, 1000),
		rent("Barnet", models.Studio, 450, 550, 650),
		rent("Lambeth", models.Studio, 300, 380, 420),
		rent("Westminster", models.Studio, 1200, 1500, 2000),
		rent("Hackney", models.Room, 400, 500, 600),
		{Borough: "Westminster", Category: models.Room, LowerQuartile: 500, UpperQuartile: 700},
		rent("Hackney", models.AllCategories, 900, 1400, 1800),
		rent("Westminster", models.AllCategories, 1500, 2200, 3000),
	}

	density, err := models.NewDensityTable([]models.DensityRow{
		densityRow("Barnet", map[models.VenueGroup]float64{models.GreenSpaces: 0.9, models.Shopping: 0.1}),
		densityRow("Camden", map[models.VenueGroup]float64{models.GreenSpaces: 0.3, models.Shopping: 0.9}),
		densityRow("Hackney", map[models.VenueGroup]float64{models.GreenSpaces: 0.6, models.Shopping: 0.6}),
		densityRow("Lambeth", map[models.VenueGroup]float64{models.GreenSpaces: 0.1, models.Shopping: 0.3}),
		densityRow("Westminster", map[models.VenueGroup]float64{models.GreenSpaces: 1, models.Shopping: 1}),
	})
	require.NoError(t, err)

	venues := []models.VenueRecord{
		{Borough: "Hackney", BoroughLatitude: 51.54, BoroughLongitude: -0.05, Name: "London Fields", Latitude: 51.541, Longitude: -0.058, Group: models.GreenSpaces},
		{Borough: "Hackney", BoroughLatitude: 51.54, BoroughLongitude: -0.05, Name: "Broadway Market", Latitude: 51.536, Longitude: -0.061, Group: models.Shopping},
		{Borough: "Hackney", BoroughLatitude: 51.54, BoroughLongitude: -0.05, Name: "Rio Cinema", Latitude: 51.548, Longitude: -0.075, Group: models.Entertainment},
		{Borough: "Barnet", BoroughLatitude: 51.65, BoroughLongitude: -0.20, Name: "Hampstead Heath Extension", Latitude: 51.58, Longitude: -0.18, Group: models.GreenSpaces},
		{Borough: "Barnet", BoroughLatitude: 51.65, BoroughLongitude: -0.20, Name: "Brent Cross", Latitude: 51.576, Longitude: -0.223, Group: models.Shopping},
		{Borough: "Camden", BoroughLatitude: 51.55, BoroughLongitude: -0.16, Name: "Camden Market", Latitude: 51.541, Longitude: -0.146, Group: models.Shopping},
		{Borough: "Westminster", BoroughLatitude: 51.50, BoroughLongitude: -0.14, Name: "Hyde Park", Latitude: 51.507, Longitude: -0.165, Group: models.GreenSpaces},
	}

	return models.NewDataset(rents, venues, density)
}

func sampleRecommender(t *testing.T) *Recommender {
	t.Helper()
	return NewRecommender(sampleDataset(t), utils.Nop())
}
