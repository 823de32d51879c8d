package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinDash/internal/domain/models"
	"FinDash/internal/service/prefs"
	"FinDash/internal/services/analytics"
	pkgcache "FinDash/pkg/cache"
	"FinDash/pkg/metrics"
)

type harness struct {
	src      *fakeSource
	kv       *pkgcache.MemoryStore
	store    *prefs.Store
	renderer *fakeRenderer
	chart    *fakeChart
	ctrl     *DashboardController
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		src:      newFakeSource(),
		kv:       pkgcache.NewMemoryStore(),
		renderer: &fakeRenderer{},
		chart:    &fakeChart{},
	}
	h.store = prefs.NewStore(h.kv)
	vm := NewViewModel(h.src, analytics.NewDeriver())
	h.ctrl = NewDashboardController(vm, h.store, h.src, h.renderer, h.chart, metrics.Noop{})
	return h
}

func (h *harness) savedRaw(t *testing.T) (string, bool) {
	t.Helper()
	b, ok, err := h.kv.Get(context.Background(), prefs.Key)
	require.NoError(t, err)
	return string(b), ok
}

func TestInitializeEndToEnd(t *testing.T) {
	h := newHarness(t)
	h.src.snapshots[models.Period3mo] = []models.AssetSnapshot{aapl()}

	v := h.ctrl.Initialize(context.Background())

	assert.Equal(t, models.Period3mo, v.Period)
	assert.Equal(t, models.SortState{Key: models.SortStrength, Direction: models.Descending}, v.Sort)
	assert.Equal(t, models.ViewReady, v.State)
	require.Len(t, v.Cards, 1)
	card := v.Cards[0]
	assert.Equal(t, "AAPL", card.Symbol)
	assert.Equal(t, 73, card.Strength)
	assert.Equal(t, models.RegimeRiskOn, card.Regime)
	assert.Equal(t, "regime-on", card.RegimeClass)
	assert.Equal(t, "is-bull", card.TrendClass)
	assert.Equal(t, "150", card.Price)

	assert.Equal(t, 1, h.renderer.count())
	_, saved := h.savedRaw(t)
	assert.False(t, saved, "defaults are not persisted when nothing was saved")
}

func TestInitializeIsIdempotent(t *testing.T) {
	h := newHarness(t)
	h.src.snapshots[models.Period3mo] = []models.AssetSnapshot{aapl()}
	ctx := context.Background()

	first := h.ctrl.Initialize(ctx)
	second := h.ctrl.Initialize(ctx)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, h.src.callCount())
	assert.Equal(t, 1, h.renderer.count())
}

func TestInitializePersistsDefaultSortForSavedPeriod(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.kv.Set(ctx, prefs.Key, []byte(`{"period":"6mo"}`)))
	h.src.snapshots[models.Period6mo] = []models.AssetSnapshot{asset("A", 1, 10), asset("B", 1, 30)}

	v := h.ctrl.Initialize(ctx)

	assert.Equal(t, models.Period6mo, v.Period)
	assert.Equal(t, models.SortVolatility, v.Sort.Key)
	assert.Equal(t, "B", v.Cards[0].Symbol)
	raw, ok := h.savedRaw(t)
	require.True(t, ok)
	assert.JSONEq(t, `{"period":"6mo","sort":"volatility","direction":"desc"}`, raw)
}

func TestInitializeRestoresSavedSort(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.store.Save(ctx, models.Preferences{Period: models.Period1mo, Sort: models.SortReturn, Direction: models.Ascending}))
	h.src.snapshots[models.Period1mo] = []models.AssetSnapshot{asset("HI", 9, 1), asset("LO", -3, 1)}

	v := h.ctrl.Initialize(ctx)

	assert.Equal(t, models.SortState{Key: models.SortReturn, Direction: models.Ascending}, v.Sort)
	assert.Equal(t, "LO", v.Cards[0].Symbol)
}

func TestSelectPeriodResetsSortAndPersists(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.src.snapshots[models.Period3mo] = []models.AssetSnapshot{aapl()}
	h.src.snapshots[models.Period1mo] = []models.AssetSnapshot{asset("A", 1, 1), asset("B", 7, 1)}
	h.ctrl.Initialize(ctx)
	h.ctrl.SelectSort(ctx, models.SortVolatility)

	v := h.ctrl.SelectPeriod(ctx, models.Period1mo)

	assert.Equal(t, models.Period1mo, v.Period)
	assert.Equal(t, models.SortState{Key: models.SortReturn, Direction: models.Descending}, v.Sort)
	assert.Equal(t, []string{"B", "A"}, []string{v.Cards[0].Symbol, v.Cards[1].Symbol})
	assert.Equal(t, 2, h.src.callCount())
	assert.Equal(t, models.Preferences{Period: models.Period1mo, Sort: models.SortReturn, Direction: models.Descending}, h.store.Load(ctx))
}

func TestSelectSortTogglesWithoutFetching(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.src.snapshots[models.Period3mo] = []models.AssetSnapshot{asset("A", 1, 1), aapl()}
	h.ctrl.Initialize(ctx)

	v := h.ctrl.SelectSort(ctx, models.SortStrength)
	assert.Equal(t, models.Ascending, v.Sort.Direction)
	assert.Equal(t, "A", v.Cards[0].Symbol)

	v = h.ctrl.SelectSort(ctx, models.SortStrength)
	assert.Equal(t, models.Descending, v.Sort.Direction)
	assert.Equal(t, "AAPL", v.Cards[0].Symbol)

	v = h.ctrl.SelectSort(ctx, models.SortNone)
	assert.Equal(t, models.SortState{Key: models.SortNone, Direction: models.Descending}, v.Sort)
	assert.Equal(t, "A", v.Cards[0].Symbol)

	assert.Equal(t, 1, h.src.callCount())
	assert.Equal(t, 4, h.renderer.count())
	assert.Equal(t, models.SortNone, h.store.Load(ctx).Sort)
}

func TestLoadFailureRendersErrorAndKeepsPreferences(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.src.snapshots[models.Period3mo] = []models.AssetSnapshot{aapl()}
	h.src.errs[models.Period6mo] = &models.ApiError{Status: 502}
	h.ctrl.Initialize(ctx)

	v := h.ctrl.SelectPeriod(ctx, models.Period6mo)

	assert.Equal(t, models.ViewError, v.State)
	assert.Equal(t, "Failed to load market data.", v.Message)
	assert.Empty(t, v.Cards)
	assert.Equal(t, v, h.renderer.last())
	assert.Equal(t, models.Period6mo, h.store.Load(ctx).Period)
}

func TestEmptyResultRendersHint(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.src.snapshots[models.Period3mo] = []models.AssetSnapshot{aapl()}
	h.ctrl.Initialize(ctx)

	v := h.ctrl.SelectPeriod(ctx, models.Period5d)

	assert.Equal(t, models.ViewEmpty, v.State)
	assert.Equal(t, "Not enough data for 5d. Try a longer timeframe.", v.Message)
}

func TestStaleLoadIsNotRendered(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.src.snapshots[models.Period1mo] = []models.AssetSnapshot{asset("OLD", 1, 1)}
	h.src.snapshots[models.Period6mo] = []models.AssetSnapshot{asset("NEW", 1, 1)}
	gate := make(chan struct{})
	h.src.gates[models.Period1mo] = gate

	done := make(chan models.DashboardView, 1)
	go func() { done <- h.ctrl.SelectPeriod(ctx, models.Period1mo) }()
	<-h.src.started

	v := h.ctrl.SelectPeriod(ctx, models.Period6mo)
	require.Equal(t, "NEW", v.Cards[0].Symbol)
	close(gate)
	<-done

	assert.Equal(t, 1, h.renderer.count())
	last := h.renderer.last()
	assert.Equal(t, models.Period6mo, last.Period)
	assert.Equal(t, "NEW", last.Cards[0].Symbol)
}

func TestOpenDetail(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.src.snapshots[models.Period3mo] = []models.AssetSnapshot{aapl()}
	h.ctrl.Initialize(ctx)

	one := 1.0
	h.src.series = models.Series{Labels: []string{"2024-01-02"}, Close: []*float64{&one}}
	assert.True(t, h.ctrl.OpenDetail(ctx, "AAPL"))
	require.Len(t, h.chart.shown, 1)
	assert.Equal(t, "AAPL", h.chart.shown[0].Symbol)
	assert.Equal(t, models.Period3mo, h.chart.shown[0].Period)

	h.src.seriesErr = errors.New("no data")
	assert.False(t, h.ctrl.OpenDetail(ctx, "ZZZ"))
	assert.Len(t, h.chart.shown, 1)
}

func TestControllerWithoutOptionalCollaborators(t *testing.T) {
	src := newFakeSource()
	src.snapshots[models.Period3mo] = []models.AssetSnapshot{aapl()}
	vm := NewViewModel(src, analytics.NewDeriver())
	ctrl := NewDashboardController(vm, prefs.NewStore(pkgcache.NewMemoryStore()), nil, nil, nil, nil)
	ctx := context.Background()

	v := ctrl.Initialize(ctx)
	assert.Equal(t, models.ViewReady, v.State)
	assert.False(t, ctrl.OpenDetail(ctx, "AAPL"))
	assert.Equal(t, v, ctrl.View())
}

func TestInitializeUsesConfiguredDefaultPeriod(t *testing.T) {
	h := newHarness(t)
	h.src.snapshots[models.Period1mo] = []models.AssetSnapshot{asset("A", 1, 1)}
	h.ctrl.SetDefaultPeriod(models.Period1mo)

	v := h.ctrl.Initialize(context.Background())

	assert.Equal(t, models.Period1mo, v.Period)
	assert.Equal(t, models.SortReturn, v.Sort.Key)
}
