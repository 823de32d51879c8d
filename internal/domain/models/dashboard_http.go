package models

// Requests for the dashboard HTTP endpoints.

type PeriodRequest struct {
	Period string `json:"period" validate:"required,max=16"`
}

type SortRequest struct {
	Sort string `json:"sort" default:"none" validate:"oneof=none return strength volatility"`
}

type SeriesRequest struct {
	Symbol string `param:"symbol" validate:"required,max=32"`
}
