package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"borough-recommender/models"
)

func TestSummarize(t *testing.T) {
	got := Summarize(studioRequest(3))
	want := "Accommodation types: Studio \n" +
		"Rent range: 400£ to 800£ per month.\n" +
		"Preference ranking: \n\t1. Green spaces\n\t2. Shopping"
	assert.Equal(t, want, got)
}

func TestSummarizeFractionalRentAndNoRanking(t *testing.T) {
	got := Summarize(models.Request{
		Categories: []string{"Room", "Studio"},
		RentMin:    412.5,
		RentMax:    900,
	})
	assert.Equal(t, "Accommodation types: Room, Studio \nRent range: 412.50£ to 900£ per month.\nPreference ranking: \n\t", got)
}
