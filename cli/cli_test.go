package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"borough-recommender/config"
	"borough-recommender/models"
	"borough-recommender/utils"
)

const (
	rentsCSV = `Borough,Category,Count of rents,Mean,Lower quartile,Median,Upper quartile
Camden,Studio,120,1150,950,1100,1300
Barnet,Studio,40,800,700,..,900
Barnet,Room,60,600,500,550,650
`
	venuesCSV = `Borough,BoroughLat,BoroughLon,Venue,Venue Latitude,Venue Longitude,Venue Category,Group
Camden,51.529,-0.125,Camden Market,51.541,-0.146,Market,Shopping
Barnet,51.625,-0.152,Barnet Odeon,51.62,-0.17,Cinema,Entertainment
`
	groupsCSV = `,Borough,Eating out,Entertainment,Going out,Green spaces,Groceries,Health and Sports,Other,Public Transport,Shopping
0,Camden,20,10,15,10,5,5,5,10,20
1,Barnet,10,5,5,40,10,10,5,5,10
`
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func withDataDir(t *testing.T) string {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"ldn_rents.csv":       rentsCSV,
		"ldn_venues_raw.csv":  venuesCSV,
		"ldn_groups_norm.csv": groupsCSV,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	t.Setenv("DATA_DIR", dir)
	t.Setenv("DATA_SOURCE", config.SourceFiles)
	t.Setenv("LOG_LEVEL", "disabled")
	return dir
}

func TestGroupsCommand(t *testing.T) {
	out := execute(t, "groups")
	assert.Contains(t, out, "Health and Sports")
	assert.Contains(t, out, models.PublicTransport.Color())
	assert.Contains(t, out, "One Bedroom")
	assert.NotContains(t, out, "All categories")
}

func TestRecommendCommand(t *testing.T) {
	dir := withDataDir(t)
	csvPath := filepath.Join(dir, "out", "recs.csv")

	out := execute(t, "recommend",
		"-c", "Studio,Room",
		"--rent-max", "2000",
		"-r", "Green spaces,Shopping",
		"-n", "2",
		"--out", csvPath,
		"--json",
	)

	var rec models.Recommendation
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, []string{"Camden", "Barnet"}, rec.Candidates)
	assert.Equal(t, []string{"Barnet", "Camden"}, rec.Boroughs())

	written, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(written)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], ",1,Barnet,")
}

func TestOpenLoaderRejectsUnknownSource(t *testing.T) {
	_, _, err := openLoader(context.Background(), &config.Config{DataSource: "s3"}, utils.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown data source "s3"`)
}

func TestOpenLoaderFiles(t *testing.T) {
	dir := withDataDir(t)
	c := config.Load()
	require.Equal(t, dir, c.DataDir)

	loader, closeLoader, err := openLoader(context.Background(), c, utils.Nop())
	require.NoError(t, err)
	defer closeLoader()

	ds, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Density().Len())
}
