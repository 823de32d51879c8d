package repository

import (
	"context"

	"FinDash/internal/domain/models"
)

// KVStore is durable key/value storage shared by the whole dashboard
// (snapshot cache entries and the preferences record).
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// SnapshotSource fetches market snapshots and detail series.
type SnapshotSource interface {
	FetchSnapshot(ctx context.Context, period models.Period) ([]models.AssetSnapshot, error)
	FetchSeries(ctx context.Context, symbol string, period models.Period) (models.Series, error)
}

// PreferenceStore persists the dashboard preferences record.
type PreferenceStore interface {
	Load(ctx context.Context) models.Preferences
	Save(ctx context.Context, p models.Preferences) error
}

// Renderer draws a dashboard frame.
type Renderer interface {
	Render(ctx context.Context, v models.DashboardView)
}

// ChartTarget draws the detail view for one symbol.
type ChartTarget interface {
	ShowChart(ctx context.Context, s models.Series)
}

type Metrics interface {
	RecordRender(state string)
	RecordError(kind string)
	RecordStrength(symbol string, strength int)
	RecordLatency(op string, seconds float64)
}
