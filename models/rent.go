package models

// RentRecord holds monthly rent statistics for one (borough, category) pair.
// Median is nil when the source suppressed it; such rows never match a filter.
type RentRecord struct {
	Borough       string            `json:"borough" db:"borough"`
	Category      AccommodationType `json:"category" db:"category"`
	Count         int               `json:"count" db:"count"`
	Mean          *float64          `json:"mean,omitempty" db:"mean"`
	LowerQuartile float64           `json:"lower_quartile" db:"lower_quartile"`
	Median        *float64          `json:"median,omitempty" db:"median"`
	UpperQuartile float64           `json:"upper_quartile" db:"upper_quartile"`
}

// Overlaps reports whether the interquartile range intersects [lo, hi].
func (r RentRecord) Overlaps(lo, hi float64) bool {
	return r.LowerQuartile <= hi && r.UpperQuartile >= lo
}
