package models

// Preferences is the remembered dashboard choice. Empty fields mean "no preference".
type Preferences struct {
	Period    Period    `json:"period,omitempty"`
	Sort      SortKey   `json:"sort,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

// SortState returns the saved ordering, defaulting the direction to descending.
func (p Preferences) SortState() SortState {
	key := p.Sort
	if key == "" {
		key = SortNone
	}
	dir := p.Direction
	if dir == "" {
		dir = Descending
	}
	return SortState{Key: key, Direction: dir}
}

// IsZero reports whether nothing was saved.
func (p Preferences) IsZero() bool {
	return p.Period == "" && p.Sort == "" && p.Direction == ""
}
