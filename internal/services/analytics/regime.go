package analytics

import (
	"FinDash/internal/domain/models"
	domsvc "FinDash/internal/domain/service"
)

const (
	riskOnMin  = 65
	riskOffMax = 35
)

var (
	riskOn       = models.Regime{Label: models.RegimeRiskOn, Class: "regime-on"}
	riskOff      = models.Regime{Label: models.RegimeRiskOff, Class: "regime-off"}
	transitional = models.Regime{Label: models.RegimeTransitional, Class: "regime-neutral"}
)

// Regime classifies an asset from its signal label and strength. First match wins.
func Regime(a models.AssetSnapshot, strength int) models.Regime {
	switch {
	case a.Signal == models.SignalStrongBullish && strength >= riskOnMin:
		return riskOn
	case a.Signal == models.SignalStrongBearish && strength <= riskOffMax:
		return riskOff
	default:
		return transitional
	}
}

// Derive computes strength and regime for one asset.
func Derive(a models.AssetSnapshot) models.DerivedMetrics {
	s := Strength(a)
	return models.DerivedMetrics{Strength: s, Regime: Regime(a, s)}
}

// Deriver adapts the package functions to the domain MetricDeriver interface.
type Deriver struct{}

func NewDeriver() *Deriver { return &Deriver{} }

func (Deriver) Derive(a models.AssetSnapshot) models.DerivedMetrics { return Derive(a) }

var _ domsvc.MetricDeriver = (*Deriver)(nil)
