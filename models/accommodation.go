package models

import (
	"fmt"
	"strings"
)

// AccommodationType is a rent statistics category.
type AccommodationType string

const (
	Room          AccommodationType = "Room"
	Studio        AccommodationType = "Studio"
	OneBedroom    AccommodationType = "One Bedroom"
	TwoBedroom    AccommodationType = "Two Bedroom"
	ThreeBedroom  AccommodationType = "Three Bedroom"
	FourBedroom   AccommodationType = "Four Bedroom"
	AllCategories AccommodationType = "All categories"
)

var accommodationTypes = []AccommodationType{
	Room, Studio, OneBedroom, TwoBedroom, ThreeBedroom, FourBedroom, AllCategories,
}

// SelectableAccommodationTypes lists the categories offered to users. The
// aggregate "All categories" row only feeds the rent choropleth.
func SelectableAccommodationTypes() []AccommodationType {
	return []AccommodationType{Room, Studio, OneBedroom, TwoBedroom, ThreeBedroom, FourBedroom}
}

func (a AccommodationType) String() string { return string(a) }

func (a AccommodationType) Valid() bool {
	for _, t := range accommodationTypes {
		if t == a {
			return true
		}
	}
	return false
}

// ParseAccommodationType matches a category name case-insensitively.
func ParseAccommodationType(name string) (AccommodationType, error) {
	name = strings.TrimSpace(name)
	for _, t := range accommodationTypes {
		if strings.EqualFold(string(t), name) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown accommodation type %q", name)
}
