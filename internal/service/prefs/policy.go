package prefs

import "FinDash/internal/domain/models"

// DefaultSortFor returns the preset ordering of a timeframe.
func DefaultSortFor(period models.Period) models.SortState {
	switch period {
	case models.Period5d, models.Period3mo:
		return models.SortState{Key: models.SortStrength, Direction: models.Descending}
	case models.Period1mo:
		return models.SortState{Key: models.SortReturn, Direction: models.Descending}
	case models.Period6mo:
		return models.SortState{Key: models.SortVolatility, Direction: models.Descending}
	default:
		return models.SortState{Key: models.SortNone, Direction: models.Descending}
	}
}

// Resolve fills the absent parts of saved preferences, using fallback when no
// period was saved. persist reports whether the result should be written
// back: that is the case only when a period was saved without a sort.
func Resolve(saved models.Preferences, fallback models.Period) (resolved models.Preferences, persist bool) {
	resolved = saved
	if resolved.Period == "" {
		resolved.Period = fallback
	}
	if saved.Sort == "" {
		def := DefaultSortFor(resolved.Period)
		resolved.Sort, resolved.Direction = def.Key, def.Direction
		return resolved, saved.Period != ""
	}
	if resolved.Direction == "" {
		resolved.Direction = models.Descending
	}
	return resolved, false
}

// ApplyPeriodChange switches to period and resets the sort to its preset.
func ApplyPeriodChange(p models.Preferences, period models.Period) models.Preferences {
	def := DefaultSortFor(period)
	return models.Preferences{Period: period, Sort: def.Key, Direction: def.Direction}
}

// ApplySortClick toggles the direction when key is already active, otherwise
// adopts key in descending order.
func ApplySortClick(p models.Preferences, key models.SortKey) models.Preferences {
	cur := p.SortState()
	if key == cur.Key {
		p.Direction = cur.Direction.Toggle()
	} else {
		p.Direction = models.Descending
	}
	p.Sort = key
	return p
}
