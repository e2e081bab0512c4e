package services

import (
	"sort"

	"borough-recommender/models"
)

// Default map framing for Greater London.
const (
	LondonLatitude  = 51.5074
	LondonLongitude = -0.1278
	DefaultZoom     = 10
)

// BoroughMarker marks a recommended borough on the map.
type BoroughMarker struct {
	Borough   string  `json:"borough"`
	Rank      int     `json:"rank"`
	Score     float64 `json:"match"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// VenueMarker is a venue drawn inside a recommended borough.
type VenueMarker struct {
	Name      string  `json:"name"`
	Borough   string  `json:"borough"`
	Group     string  `json:"group"`
	Color     string  `json:"color"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// MapView is everything a client needs to draw the results map.
type MapView struct {
	Center     [2]float64         `json:"center"`
	Zoom       int                `json:"zoom"`
	Choropleth map[string]float64 `json:"choropleth"`
	Boroughs   []BoroughMarker    `json:"boroughs"`
	Venues     []VenueMarker      `json:"venues"`
	Legend     map[string]string  `json:"legend,omitempty"`
}

// MapBuilder derives map layers from the venue and rent tables.
type MapBuilder struct {
	dataset *models.Dataset
	stride  int
}

// NewMapBuilder creates a MapBuilder that keeps every stride-th venue when
// venue markers are requested.
func NewMapBuilder(dataset *models.Dataset, stride int) *MapBuilder {
	if stride < 1 {
		stride = 1
	}
	return &MapBuilder{dataset: dataset, stride: stride}
}

// Choropleth returns the "All categories" median rent per borough, used to
// shade borough boundaries.
func (b *MapBuilder) Choropleth() map[string]float64 {
	out := make(map[string]float64)
	for _, r := range b.dataset.Rents() {
		if r.Category == models.AllCategories && r.Median != nil {
			out[r.Borough] = *r.Median
		}
	}
	return out
}

// Build lays out markers for a recommendation. Only venues in the ranked
// groups are considered; a borough gets a marker when it has at least one.
func (b *MapBuilder) Build(rec *models.Recommendation) *MapView {
	view := &MapView{
		Center:     [2]float64{LondonLatitude, LondonLongitude},
		Zoom:       DefaultZoom,
		Choropleth: b.Choropleth(),
		Boroughs:   []BoroughMarker{},
		Venues:     []VenueMarker{},
	}
	if rec == nil || len(rec.Matches) == 0 {
		return view
	}

	rank := make(map[string]int, len(rec.Matches))
	for i, m := range rec.Matches {
		rank[m.Borough] = i
	}
	groups := make(map[models.VenueGroup]struct{}, len(rec.Request.Ranking))
	for _, name := range rec.Request.Ranking {
		if g, err := models.ParseVenueGroup(name); err == nil {
			groups[g] = struct{}{}
		}
	}

	placed := make(map[string]struct{})
	matched := 0
	for _, v := range b.dataset.Venues() {
		i, ok := rank[v.Borough]
		if !ok {
			continue
		}
		if _, ok := groups[v.Group]; !ok {
			continue
		}

		if _, done := placed[v.Borough]; !done {
			placed[v.Borough] = struct{}{}
			view.Boroughs = append(view.Boroughs, BoroughMarker{
				Borough:   v.Borough,
				Rank:      i + 1,
				Score:     rec.Matches[i].Score,
				Latitude:  v.BoroughLatitude,
				Longitude: v.BoroughLongitude,
			})
		}

		if rec.Request.PlotVenues && matched%b.stride == 0 {
			view.Venues = append(view.Venues, VenueMarker{
				Name:      v.Name,
				Borough:   v.Borough,
				Group:     v.Group.String(),
				Color:     v.Group.Color(),
				Latitude:  v.Latitude,
				Longitude: v.Longitude,
			})
		}
		matched++
	}

	if rec.Request.PlotVenues {
		view.Legend = Legend()
	}
	sort.Slice(view.Boroughs, func(i, j int) bool {
		return view.Boroughs[i].Rank < view.Boroughs[j].Rank
	})
	return view
}

// Legend maps each venue group to its marker colour.
func Legend() map[string]string {
	out := make(map[string]string, models.NumVenueGroups)
	for _, g := range models.AllVenueGroups() {
		out[g.String()] = g.Color()
	}
	return out
}
