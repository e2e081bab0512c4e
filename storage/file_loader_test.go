package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"borough-recommender/models"
	"borough-recommender/utils"
)

const rentsCSV = `Borough,Category,Count of rents,Mean,Lower quartile,Median,Upper quartile
Camden,Studio,120,"£1,150",950,"1,100",1300
Camden,All categories,900,1900,1400,1800,2400
Barnet,Studio,40,800,700,..,900
Barnet,Room,60,600,500,550,650
Hackney,Studio,80,900,x,850,1000

`

const venuesCSV = `Borough,BoroughLat,BoroughLon,Venue,Venue Latitude,Venue Longitude,Venue Category,Group
Camden,51.529,-0.125,Regent's Park,51.531,-0.156,Park,Green spaces
Camden,51.529,-0.125,Camden Market,51.541,-0.146,Market,Shopping
Barnet,51.625,-0.152,Barnet Odeon,51.62,-0.17,Cinema,Entertainment
`

const groupsCSV = `,Borough,Eating out,Entertainment,Going out,Green spaces,Groceries,Health and Sports,Other,Public Transport,Shopping
0,Camden,20,10,15,10,5,5,5,10,20
1,Barnet,10,5,5,40,10,10,5,5,10
`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileLoaderCSV(t *testing.T) {
	dir := t.TempDir()
	l := &FileLoader{
		RentPath:   writeFixture(t, dir, "rents.csv", rentsCSV),
		VenuesPath: writeFixture(t, dir, "venues.csv", venuesCSV),
		GroupsPath: writeFixture(t, dir, "groups.csv", groupsCSV),
		logger:     utils.Nop(),
		workers:    3,
	}

	ds, err := l.Load(context.Background())
	require.NoError(t, err)

	rents := ds.Rents()
	require.Len(t, rents, 4, "Hackney row has a suppressed quartile and is dropped")
	assert.Equal(t, "Camden", rents[0].Borough)
	assert.Equal(t, models.Studio, rents[0].Category)
	assert.Equal(t, 120, rents[0].Count)
	require.NotNil(t, rents[0].Mean)
	assert.Equal(t, 1150.0, *rents[0].Mean)
	require.NotNil(t, rents[0].Median)
	assert.Equal(t, 1100.0, *rents[0].Median)
	assert.Nil(t, rents[2].Median, "'..' is a suppressed median")

	venues := ds.Venues()
	require.Len(t, venues, 3)
	assert.Equal(t, models.GreenSpaces, venues[0].Group)
	assert.Equal(t, "Regent's Park", venues[0].Name)
	assert.InDelta(t, 51.529, venues[0].BoroughLatitude, 1e-9)

	density := ds.Density()
	require.Equal(t, 2, density.Len())
	assert.Equal(t, "Camden", density.Row(0).Borough)
	barnet, ok := density.Lookup("Barnet")
	require.True(t, ok)
	assert.Equal(t, 40.0, barnet.Scores[models.GreenSpaces])
}

func TestFileLoaderMissingFile(t *testing.T) {
	dir := t.TempDir()
	l := &FileLoader{
		RentPath:   filepath.Join(dir, "nope.csv"),
		VenuesPath: writeFixture(t, dir, "venues.csv", venuesCSV),
		GroupsPath: writeFixture(t, dir, "groups.csv", groupsCSV),
		logger:     utils.Nop(),
		workers:    1,
	}
	_, err := l.Load(context.Background())
	assert.ErrorContains(t, err, "rents")
}

func TestParseDensityValidation(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want string
	}{
		{"unknown column", "Borough,Eating out,Casinos\nCamden,1,2\n", "unknown venue group"},
		{"missing group", "Borough,Eating out\nCamden,1\n", "missing column"},
		{"duplicate borough", groupHeader + "\nCamden,1,1,1,1,1,1,1,1,1\nCamden,1,1,1,1,1,1,1,1,1\n", "duplicate borough"},
		{"negative score", groupHeader + "\nCamden,-1,1,1,1,1,1,1,1,1\n", "negative"},
		{"bad number", groupHeader + "\nCamden,lots,1,1,1,1,1,1,1,1\n", "not a number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := readCSVRows(strings.NewReader(tt.csv))
			require.NoError(t, err)
			_, err = parseDensity(rows)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

const groupHeader = "Borough,Eating out,Entertainment,Going out,Green spaces,Groceries,Health and Sports,Other,Public Transport,Shopping"

func TestParseRentsRejectsInvertedQuartiles(t *testing.T) {
	rows, err := readCSVRows(strings.NewReader("Borough,Category,Lower quartile,Median,Upper quartile\nCamden,Studio,1300,1100,950\n"))
	require.NoError(t, err)
	_, err = parseRents(rows, utils.Nop())
	assert.ErrorContains(t, err, "above upper quartile")
}

func TestParseRentsUnknownCategory(t *testing.T) {
	rows, err := readCSVRows(strings.NewReader("Borough,Category,Lower quartile,Median,Upper quartile\nCamden,Castle,1,2,3\n"))
	require.NoError(t, err)
	_, err = parseRents(rows, utils.Nop())
	assert.ErrorContains(t, err, "line 2")
}

func TestReadXLSXRowsSkipsTitleRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rents.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Private rental market summary statistics"},
		{},
		{"Borough", "Category", "Count of rents", "Mean", "Lower quartile", "Median", "Upper quartile"},
		{"Camden", "Studio", 120, 1150, 950, 1100, 1300},
	}
	for i, r := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellName, &r))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	got, err := readRows(path, "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Borough", got[0][0])

	records, err := parseRents(got, utils.Nop())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 950.0, records[0].LowerQuartile)
}
