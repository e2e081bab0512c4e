package models

import (
	"fmt"
	"strings"
)

// VenueGroup is one of the fixed lifestyle categories used to tag venues and
// to index density and preference vectors.
type VenueGroup int

const (
	EatingOut VenueGroup = iota
	Entertainment
	GoingOut
	GreenSpaces
	Groceries
	HealthAndSports
	OtherVenues
	PublicTransport
	Shopping

	// NumVenueGroups is the dimensionality of density and preference vectors.
	NumVenueGroups = int(Shopping) + 1
)

var venueGroupNames = [NumVenueGroups]string{
	"Eating out",
	"Entertainment",
	"Going out",
	"Green spaces",
	"Groceries",
	"Health and Sports",
	"Other",
	"Public Transport",
	"Shopping",
}

// Marker colours used when venues are drawn on the map.
var venueGroupColors = [NumVenueGroups]string{
	"#e41a1c",
	"#377eb8",
	"#ffff33",
	"#984ea3",
	"#ff7f00",
	"#4daf4a",
	"#999999",
	"#a65628",
	"#f781bf",
}

func (g VenueGroup) String() string {
	if !g.Valid() {
		return fmt.Sprintf("VenueGroup(%d)", int(g))
	}
	return venueGroupNames[g]
}

// Color returns the hex colour of the group's map markers.
func (g VenueGroup) Color() string {
	if !g.Valid() {
		return "#000000"
	}
	return venueGroupColors[g]
}

func (g VenueGroup) Valid() bool {
	return g >= 0 && int(g) < NumVenueGroups
}

func (g VenueGroup) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("invalid venue group %d", int(g))
	}
	return []byte(venueGroupNames[g]), nil
}

func (g *VenueGroup) UnmarshalText(text []byte) error {
	parsed, err := ParseVenueGroup(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// ParseVenueGroup matches a group name case-insensitively, ignoring
// surrounding whitespace.
func ParseVenueGroup(name string) (VenueGroup, error) {
	name = strings.TrimSpace(name)
	for i, n := range venueGroupNames {
		if strings.EqualFold(n, name) {
			return VenueGroup(i), nil
		}
	}
	return 0, fmt.Errorf("unknown venue group %q", name)
}

// AllVenueGroups returns every group in canonical order.
func AllVenueGroups() []VenueGroup {
	groups := make([]VenueGroup, NumVenueGroups)
	for i := range groups {
		groups[i] = VenueGroup(i)
	}
	return groups
}
