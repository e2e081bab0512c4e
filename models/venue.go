package models

// VenueRecord is a single point of interest inside a borough.
type VenueRecord struct {
	Borough          string     `json:"borough" db:"borough"`
	BoroughLatitude  float64    `json:"borough_latitude" db:"borough_latitude"`
	BoroughLongitude float64    `json:"borough_longitude" db:"borough_longitude"`
	Name             string     `json:"name" db:"name"`
	Latitude         float64    `json:"latitude" db:"latitude"`
	Longitude        float64    `json:"longitude" db:"longitude"`
	VenueCategory    string     `json:"venue_category" db:"venue_category"`
	Group            VenueGroup `json:"group" db:"-"`
}
