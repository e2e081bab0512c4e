package models

import "time"

// PreferenceVector holds non-negative weights per VenueGroup summing to 1.
type PreferenceVector [NumVenueGroups]float64

// Weight returns the weight of a group.
func (p PreferenceVector) Weight(g VenueGroup) float64 { return p[g] }

// Request is one user interaction: accommodation categories, a rent range,
// a ranked list of venue groups and the number of boroughs wanted.
type Request struct {
	Categories []string `json:"categories" validate:"dive,accommodation"`
	RentMin    float64  `json:"rent_min" validate:"min=0"`
	RentMax    float64  `json:"rent_max" validate:"min=0"`
	Ranking    []string `json:"ranking" validate:"dive,venuegroup"`
	TopN       int      `json:"top_n" validate:"min=1"`
	PlotVenues bool     `json:"plot_venues"`
}

// Match is a recommended borough and its share of the top-N score, in
// percent.
type Match struct {
	Borough string  `json:"borough"`
	Score   float64 `json:"match"`
}

// Recommendation is the ranked result of a Request.
type Recommendation struct {
	ID          string           `json:"id"`
	Request     Request          `json:"request"`
	Preferences PreferenceVector `json:"preferences"`
	Candidates  []string         `json:"candidates"`
	Matches     []Match          `json:"matches"`
	CreatedAt   time.Time        `json:"created_at"`
}

// Boroughs returns the recommended borough names in rank order.
func (r *Recommendation) Boroughs() []string {
	out := make([]string, len(r.Matches))
	for i, m := range r.Matches {
		out[i] = m.Borough
	}
	return out
}
