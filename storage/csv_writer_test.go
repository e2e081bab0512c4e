package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"borough-recommender/models"
)

func TestCSVWriterWritesRankedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "recs.csv")
	w, err := NewCSVWriter(path)
	require.NoError(t, err)

	rec := &models.Recommendation{
		ID:        "rec-1",
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Matches: []models.Match{
			{Borough: "Hackney", Score: 60},
			{Borough: "Camden", Score: 40},
		},
	}
	require.NoError(t, w.WriteRecommendation(rec))
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := readCSVRows(f)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"recommendation_id", "rank", "borough", "match", "created_at"}, rows[0])
	assert.Equal(t, []string{"rec-1", "1", "Hackney", "60.000", "2024-03-01T12:00:00Z"}, rows[1])
	assert.Equal(t, "Camden", rows[2][2])
}
