// Package render provides render targets for dashboard frames and detail charts.
package render

import (
	"context"
	"sync"

	"FinDash/internal/domain/models"
	domrepo "FinDash/internal/domain/repository"
)

// Target is both a frame renderer and a chart target.
type Target interface {
	domrepo.Renderer
	domrepo.ChartTarget
}

// Fanout forwards every frame and chart to all of its targets in order.
type Fanout struct {
	targets []Target
}

func NewFanout(targets ...Target) *Fanout {
	return &Fanout{targets: targets}
}

func (f *Fanout) Render(ctx context.Context, v models.DashboardView) {
	for _, t := range f.targets {
		t.Render(ctx, v)
	}
}

func (f *Fanout) ShowChart(ctx context.Context, s models.Series) {
	for _, t := range f.targets {
		t.ShowChart(ctx, s)
	}
}

// Holder keeps the last rendered frame and the last chart per symbol so they
// can be served on request.
type Holder struct {
	mu     sync.RWMutex
	view   models.DashboardView
	ok     bool
	series map[string]models.Series
}

func NewHolder() *Holder {
	return &Holder{series: make(map[string]models.Series)}
}

func (h *Holder) Render(_ context.Context, v models.DashboardView) {
	h.mu.Lock()
	h.view, h.ok = v, true
	h.mu.Unlock()
}

func (h *Holder) ShowChart(_ context.Context, s models.Series) {
	h.mu.Lock()
	h.series[s.Symbol] = s
	h.mu.Unlock()
}

// View returns the last rendered frame, if any.
func (h *Holder) View() (models.DashboardView, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.view, h.ok
}

// Series returns the last chart shown for symbol.
func (h *Holder) Series(symbol string) (models.Series, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.series[symbol]
	return s, ok
}

var (
	_ Target = (*Fanout)(nil)
	_ Target = (*Holder)(nil)
)
