package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"FinDash/internal/domain/models"
	domrepo "FinDash/internal/domain/repository"
	"FinDash/internal/service/prefs"
	applogger "FinDash/pkg/logger"
)

// DashboardController wires preferences, the view model and the render
// target together. Every entry point converts failures into a visible state.
type DashboardController struct {
	vm       *ViewModel
	prefs    domrepo.PreferenceStore
	series   domrepo.SnapshotSource
	renderer domrepo.Renderer
	chart    domrepo.ChartTarget
	metrics  domrepo.Metrics
	l        *applogger.Logger

	mu            sync.Mutex
	initialized   bool
	defaultPeriod models.Period
	current       models.Preferences
}

// NewDashboardController creates a controller. series and chart serve the
// detail view and may be nil, as may metrics.
func NewDashboardController(
	vm *ViewModel,
	store domrepo.PreferenceStore,
	series domrepo.SnapshotSource,
	renderer domrepo.Renderer,
	chart domrepo.ChartTarget,
	metrics domrepo.Metrics,
) *DashboardController {
	return &DashboardController{
		vm:       vm,
		prefs:    store,
		series:   series,
		renderer: renderer,
		chart:    chart,
		metrics:  metrics,

		defaultPeriod: models.DefaultPeriod(),
	}
}

// SetLogger injects a structured logger.
func (c *DashboardController) SetLogger(l *applogger.Logger) { c.l = l }

// SetDefaultPeriod sets the period used when none was saved. Call before Initialize.
func (c *DashboardController) SetDefaultPeriod(p models.Period) {
	if p == "" {
		return
	}
	c.mu.Lock()
	c.defaultPeriod = p
	c.mu.Unlock()
}

// Initialize restores preferences and performs the first load. Calls after
// the first one only return the current view.
func (c *DashboardController) Initialize(ctx context.Context) models.DashboardView {
	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		return c.vm.View()
	}
	c.initialized = true
	p, persist := prefs.Resolve(c.prefs.Load(ctx), c.defaultPeriod)
	c.current = p
	c.mu.Unlock()

	if persist {
		c.save(ctx, p)
	}
	c.vm.SetSort(p.SortState())
	return c.load(ctx, p.Period)
}

// SelectPeriod switches timeframe, resets the sort to the timeframe preset
// and reloads.
func (c *DashboardController) SelectPeriod(ctx context.Context, period models.Period) models.DashboardView {
	c.mu.Lock()
	p := prefs.ApplyPeriodChange(c.current, period)
	c.current = p
	c.mu.Unlock()

	c.save(ctx, p)
	c.vm.SetSort(p.SortState())
	return c.load(ctx, period)
}

// SelectSort applies a sort-button click to the loaded entries. No fetch is made.
func (c *DashboardController) SelectSort(ctx context.Context, key models.SortKey) models.DashboardView {
	c.mu.Lock()
	p := prefs.ApplySortClick(c.current, key)
	c.current = p
	c.mu.Unlock()

	c.save(ctx, p)
	c.vm.SetSort(p.SortState())
	v := c.vm.View()
	c.render(ctx, v)
	return v
}

// OpenDetail fetches the series of symbol for the current period and hands it
// to the chart target. Failures are logged and reported as false.
func (c *DashboardController) OpenDetail(ctx context.Context, symbol string) bool {
	if c.series == nil || c.chart == nil {
		return false
	}
	start := time.Now()
	s, err := c.series.FetchSeries(ctx, symbol, c.vm.Period())
	c.observe("series", start)
	if err != nil {
		c.recordError("series")
		if c.l != nil {
			c.l.Error("dashboard detail_failed", applogger.String("symbol", symbol), applogger.Error(err))
		}
		return false
	}
	c.chart.ShowChart(ctx, s)
	return true
}

// View returns the current frame without rendering.
func (c *DashboardController) View() models.DashboardView { return c.vm.View() }

// Preferences returns the active preferences.
func (c *DashboardController) Preferences() models.Preferences {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *DashboardController) load(ctx context.Context, period models.Period) models.DashboardView {
	start := time.Now()
	err := c.vm.Load(ctx, period)
	c.observe("load", start)

	var empty *models.EmptyResultError
	switch {
	case errors.Is(err, ErrStaleLoad):
		if c.l != nil {
			c.l.Debug("dashboard stale_load", applogger.String("period", string(period)))
		}
		return c.vm.View()
	case errors.As(err, &empty):
		if c.l != nil {
			c.l.Info("dashboard empty_result", applogger.String("period", string(period)))
		}
	case err != nil:
		c.recordError("load")
		if c.l != nil {
			c.l.Error("dashboard load_failed", applogger.String("period", string(period)), applogger.Error(err))
		}
	}

	v := c.vm.View()
	c.render(ctx, v)
	return v
}

func (c *DashboardController) render(ctx context.Context, v models.DashboardView) {
	if c.metrics != nil {
		c.metrics.RecordRender(string(v.State))
		for _, card := range v.Cards {
			c.metrics.RecordStrength(card.Symbol, card.Strength)
		}
	}
	if c.renderer != nil {
		c.renderer.Render(ctx, v)
	}
}

func (c *DashboardController) save(ctx context.Context, p models.Preferences) {
	if err := c.prefs.Save(ctx, p); err != nil {
		c.recordError("prefs")
		if c.l != nil {
			c.l.Warn("dashboard prefs_save_failed", applogger.Error(err))
		}
	}
}

func (c *DashboardController) observe(op string, start time.Time) {
	if c.metrics != nil {
		c.metrics.RecordLatency(op, time.Since(start).Seconds())
	}
}

func (c *DashboardController) recordError(kind string) {
	if c.metrics != nil {
		c.metrics.RecordError(kind)
	}
}
