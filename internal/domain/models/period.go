package models

// Period is the historical window requested from the backend (e.g. "3mo").
type Period string

const (
	Period5d  Period = "5d"
	Period1mo Period = "1mo"
	Period3mo Period = "3mo"
	Period6mo Period = "6mo"
)

// IsKnownPeriod reports whether p is one of the preset timeframe buttons.
// Unknown periods are still forwarded verbatim to the backend.
func IsKnownPeriod(p Period) bool {
	switch p {
	case Period5d, Period1mo, Period3mo, Period6mo:
		return true
	default:
		return false
	}
}

// DefaultPeriod returns the period used when nothing was saved.
func DefaultPeriod() Period { return Period3mo }

// NormalizePeriod converts a raw string to a period, falling back to the default when empty.
func NormalizePeriod(s string) Period {
	if s == "" {
		return DefaultPeriod()
	}
	return Period(s)
}
