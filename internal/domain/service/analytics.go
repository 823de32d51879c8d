package service

import "FinDash/internal/domain/models"

// MetricDeriver computes per-asset derived scores. Implementations must be pure and total.
type MetricDeriver interface {
	Derive(asset models.AssetSnapshot) models.DerivedMetrics
}
