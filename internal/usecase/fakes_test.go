package usecase

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"FinDash/internal/domain/models"
)

type fakeSource struct {
	mu        sync.Mutex
	snapshots map[models.Period][]models.AssetSnapshot
	errs      map[models.Period]error
	gates     map[models.Period]chan struct{}
	started   chan models.Period
	calls     int

	series    models.Series
	seriesErr error
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		snapshots: map[models.Period][]models.AssetSnapshot{},
		errs:      map[models.Period]error{},
		gates:     map[models.Period]chan struct{}{},
		started:   make(chan models.Period, 4),
	}
}

func (f *fakeSource) FetchSnapshot(_ context.Context, p models.Period) ([]models.AssetSnapshot, error) {
	f.mu.Lock()
	f.calls++
	assets, err, gate := f.snapshots[p], f.errs[p], f.gates[p]
	f.mu.Unlock()

	if gate != nil {
		f.started <- p
		<-gate
	}
	return assets, err
}

func (f *fakeSource) FetchSeries(_ context.Context, symbol string, p models.Period) (models.Series, error) {
	if f.seriesErr != nil {
		return models.Series{}, f.seriesErr
	}
	s := f.series
	s.Symbol, s.Period = symbol, p
	return s, nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeRenderer struct {
	mu    sync.Mutex
	views []models.DashboardView
}

func (r *fakeRenderer) Render(_ context.Context, v models.DashboardView) {
	r.mu.Lock()
	r.views = append(r.views, v)
	r.mu.Unlock()
}

func (r *fakeRenderer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

func (r *fakeRenderer) last() models.DashboardView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.views[len(r.views)-1]
}

type fakeChart struct {
	shown []models.Series
}

func (c *fakeChart) ShowChart(_ context.Context, s models.Series) {
	c.shown = append(c.shown, s)
}

func asset(symbol string, ret, vol float64) models.AssetSnapshot {
	return models.AssetSnapshot{
		Symbol:      symbol,
		Price:       decimal.NewFromInt(100),
		TotalReturn: ret,
		Volatility:  vol,
		Trend:       models.TrendBullish,
		Signal:      models.SignalNeutral,
	}
}

func aapl() models.AssetSnapshot {
	return models.AssetSnapshot{
		Symbol:        "AAPL",
		Price:         decimal.NewFromInt(150),
		TotalReturn:   5,
		Volatility:    20,
		Trend:         models.TrendBullish,
		TrendStrength: 3,
		Momentum:      2,
		Signal:        models.SignalStrongBullish,
	}
}

func symbols(entries []models.ViewEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Asset.Symbol)
	}
	return out
}
