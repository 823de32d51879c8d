package models

import "github.com/shopspring/decimal"

// Trend is the moving-average direction reported by the backend.
type Trend string

const (
	TrendBullish Trend = "Bullish"
	TrendBearish Trend = "Bearish"
)

// Signal labels the backend emits. Any other label is carried through verbatim.
const (
	SignalStrongBullish = "Strong Bullish"
	SignalStrongBearish = "Strong Bearish"
	SignalNeutral       = "Neutral"
)

// AssetSnapshot is one asset's raw metrics for a timeframe.
// Missing or non-numeric fields are zero.
type AssetSnapshot struct {
	Symbol        string          `json:"symbol"`
	Price         decimal.Decimal `json:"price"`
	TotalReturn   float64         `json:"total_return"`
	Volatility    float64         `json:"volatility"`
	Trend         Trend           `json:"trend"`
	TrendStrength float64         `json:"trend_strength"`
	Momentum      float64         `json:"momentum"`
	Signal        string          `json:"signal"`
}

// TrendClass is the card class for the asset's trend.
func (a AssetSnapshot) TrendClass() string {
	if a.Trend == TrendBullish {
		return "is-bull"
	}
	return "is-bear"
}

// RegimeLabel is the coarse market mood of one asset.
type RegimeLabel string

const (
	RegimeRiskOn       RegimeLabel = "Risk-On"
	RegimeRiskOff      RegimeLabel = "Risk-Off"
	RegimeTransitional RegimeLabel = "Transitional"
)

type Regime struct {
	Label RegimeLabel `json:"label"`
	Class string      `json:"class"`
}

// DerivedMetrics are computed client-side on every load and never persisted.
type DerivedMetrics struct {
	Strength int    `json:"strength"`
	Regime   Regime `json:"regime"`
}

// ViewEntry pairs an asset with its derived metrics.
type ViewEntry struct {
	Asset   AssetSnapshot  `json:"asset"`
	Derived DerivedMetrics `json:"derived"`
}

// Series is the detail-view time series for one symbol.
// Points are nil where the backend has no value (e.g. moving-average warmup).
type Series struct {
	Symbol string     `json:"symbol"`
	Period Period     `json:"period"`
	Labels []string   `json:"labels"`
	Close  []*float64 `json:"close"`
	MA10   []*float64 `json:"ma10"`
	MA30   []*float64 `json:"ma30"`
}
