package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"borough-recommender/models"
)

func TestBuildInsert(t *testing.T) {
	got := buildInsert("borough_density", []string{"position", "borough", "venue_group", "score"}, 2)
	want := "INSERT INTO borough_density (position, borough, venue_group, score) VALUES ($1,$2,$3,$4),($5,$6,$7,$8)"
	assert.Equal(t, want, got)
}

func TestAssembleDensityKeepsPositionOrder(t *testing.T) {
	cells := []densityCell{
		{Position: 0, Borough: "Hackney", Group: "Going out", Score: 30},
		{Position: 0, Borough: "Hackney", Group: "Green spaces", Score: 10},
		{Position: 1, Borough: "Barnet", Group: "Green spaces", Score: 40},
	}
	table, err := assembleDensity(cells)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	assert.Equal(t, "Hackney", table.Row(0).Borough)
	assert.Equal(t, 30.0, table.Row(0).Scores[models.GoingOut])
	assert.Equal(t, 10.0, table.Row(0).Scores[models.GreenSpaces])
	assert.Equal(t, "Barnet", table.Row(1).Borough)
	assert.Equal(t, 40.0, table.Row(1).Scores[models.GreenSpaces])
}

func TestAssembleDensityRejectsUnknownGroup(t *testing.T) {
	_, err := assembleDensity([]densityCell{{Position: 0, Borough: "Hackney", Group: "Casinos"}})
	assert.ErrorContains(t, err, "unknown venue group")
}
