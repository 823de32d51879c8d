package models

// ViewState is what the render target should show.
type ViewState string

const (
	ViewLoading ViewState = "loading"
	ViewReady   ViewState = "ready"
	ViewEmpty   ViewState = "empty"
	ViewError   ViewState = "error"
)

// Card is the render-ready projection of one ViewEntry.
type Card struct {
	Symbol      string      `json:"symbol"`
	Price       string      `json:"price"`
	TotalReturn float64     `json:"total_return"`
	Volatility  float64     `json:"volatility"`
	Signal      string      `json:"signal"`
	TrendClass  string      `json:"trend_class"`
	Strength    int         `json:"strength"`
	Regime      RegimeLabel `json:"regime"`
	RegimeClass string      `json:"regime_class"`
}

// NewCard flattens an entry for rendering.
func NewCard(e ViewEntry) Card {
	return Card{
		Symbol:      e.Asset.Symbol,
		Price:       e.Asset.Price.String(),
		TotalReturn: e.Asset.TotalReturn,
		Volatility:  e.Asset.Volatility,
		Signal:      e.Asset.Signal,
		TrendClass:  e.Asset.TrendClass(),
		Strength:    e.Derived.Strength,
		Regime:      e.Derived.Regime.Label,
		RegimeClass: e.Derived.Regime.Class,
	}
}

// DashboardView is one complete frame handed to a renderer.
type DashboardView struct {
	Period  Period    `json:"period"`
	Sort    SortState `json:"sort"`
	State   ViewState `json:"state"`
	Message string    `json:"message,omitempty"`
	Cards   []Card    `json:"cards"`
}
