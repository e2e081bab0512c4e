package models

// Dataset bundles the three read-only tables. It is built once at startup and
// never mutated afterwards, so concurrent requests share it without locking.
type Dataset struct {
	rents   []RentRecord
	venues  []VenueRecord
	density *DensityTable
}

// NewDataset copies the record slices so later changes by the caller cannot
// leak into the shared tables.
func NewDataset(rents []RentRecord, venues []VenueRecord, density *DensityTable) *Dataset {
	r := make([]RentRecord, len(rents))
	copy(r, rents)
	v := make([]VenueRecord, len(venues))
	copy(v, venues)
	if density == nil {
		density, _ = NewDensityTable(nil)
	}
	return &Dataset{rents: r, venues: v, density: density}
}

// Rents returns the rent table. Callers must not modify the returned slice.
func (d *Dataset) Rents() []RentRecord { return d.rents }

// Venues returns the venue table. Callers must not modify the returned slice.
func (d *Dataset) Venues() []VenueRecord { return d.venues }

func (d *Dataset) Density() *DensityTable { return d.density }
