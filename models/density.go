package models

import "fmt"

// DensityRow is the normalised venue density of one borough, indexed by
// VenueGroup.
type DensityRow struct {
	Borough string                  `json:"borough"`
	Scores  [NumVenueGroups]float64 `json:"scores"`
}

// DensityTable is the borough x group scoring matrix. Row order is the order
// the rows were added and is used to break score ties.
type DensityTable struct {
	rows  []DensityRow
	index map[string]int
}

// NewDensityTable builds a table, rejecting duplicate boroughs and negative
// scores.
func NewDensityTable(rows []DensityRow) (*DensityTable, error) {
	t := &DensityTable{
		rows:  make([]DensityRow, 0, len(rows)),
		index: make(map[string]int, len(rows)),
	}
	for _, r := range rows {
		if _, dup := t.index[r.Borough]; dup {
			return nil, fmt.Errorf("density: duplicate borough %q", r.Borough)
		}
		for g, s := range r.Scores {
			if s < 0 {
				return nil, fmt.Errorf("density: negative %s score for %q", VenueGroup(g), r.Borough)
			}
		}
		t.index[r.Borough] = len(t.rows)
		t.rows = append(t.rows, r)
	}
	return t, nil
}

// Len returns the number of boroughs.
func (t *DensityTable) Len() int { return len(t.rows) }

// Row returns the i-th row in table order.
func (t *DensityTable) Row(i int) DensityRow { return t.rows[i] }

// Lookup returns the row for a borough.
func (t *DensityTable) Lookup(borough string) (DensityRow, bool) {
	i, ok := t.index[borough]
	if !ok {
		return DensityRow{}, false
	}
	return t.rows[i], true
}

// Position returns the table order of a borough, or -1.
func (t *DensityTable) Position(borough string) int {
	if i, ok := t.index[borough]; ok {
		return i
	}
	return -1
}

// Rows returns a copy of all rows in table order.
func (t *DensityTable) Rows() []DensityRow {
	out := make([]DensityRow, len(t.rows))
	copy(out, t.rows)
	return out
}
