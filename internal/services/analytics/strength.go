package analytics

import (
	"math"

	"FinDash/internal/domain/models"
)

// Strength weights and normalisers.
const (
	trendWeight    = 0.5
	momentumWeight = 0.4
	riskWeight     = 0.3

	trendScale    = 2.0  // trend_strength (%) that saturates the trend component
	momentumScale = 10.0 // momentum that saturates the momentum component
	volScale      = 50.0 // volatility that saturates the risk penalty
	volFloor      = 0.01
)

// Strength returns a 0-100 composite score. A neutral asset scores 50.
func Strength(a models.AssetSnapshot) int {
	trend := clamp(finite(a.TrendStrength)/trendScale, -1, 1)
	momentum := clamp(finite(a.Momentum)/momentumScale, -1, 1)
	vol := math.Max(finite(a.Volatility), volFloor)
	penalty := math.Min(1, vol/volScale)

	raw := trend*trendWeight + momentum*momentumWeight - penalty*riskWeight
	score := int(math.Round(50 + raw*50))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// finite maps NaN to zero; infinities saturate through clamp.
func finite(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
