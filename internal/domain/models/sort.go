package models

// SortKey selects the comparator used to order the view.
type SortKey string

const (
	SortNone       SortKey = "none"
	SortReturn     SortKey = "return"
	SortStrength   SortKey = "strength"
	SortVolatility SortKey = "volatility"
)

// Direction is the sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortState is the active ordering. Key none keeps arrival order.
type SortState struct {
	Key       SortKey   `json:"key"`
	Direction Direction `json:"direction"`
}

// ParseSortKey returns the key and whether it is recognised.
func ParseSortKey(s string) (SortKey, bool) {
	switch k := SortKey(s); k {
	case SortNone, SortReturn, SortStrength, SortVolatility:
		return k, true
	default:
		return "", false
	}
}

// ParseDirection returns the direction and whether it is recognised.
func ParseDirection(s string) (Direction, bool) {
	switch d := Direction(s); d {
	case Ascending, Descending:
		return d, true
	default:
		return "", false
	}
}

// Toggle flips the direction. Anything other than descending becomes descending.
func (d Direction) Toggle() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}
