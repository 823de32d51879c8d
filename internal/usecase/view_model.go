package usecase

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"FinDash/internal/domain/models"
	domrepo "FinDash/internal/domain/repository"
	domsvc "FinDash/internal/domain/service"
)

var (
	// ErrStaleLoad is returned by Load when a newer load was requested while
	// this one was in flight. The result was discarded.
	ErrStaleLoad = errors.New("stale load discarded")
	// ErrNotLoaded is returned by OrderedEntries before any load completed.
	ErrNotLoaded = errors.New("dashboard not loaded")
)

const msgLoadFailed = "Failed to load market data."

func emptyMessage(p models.Period) string {
	return fmt.Sprintf("Not enough data for %s. Try a longer timeframe.", p)
}

// ViewModel holds the current timeframe, the derived entry set and the active
// ordering. It is safe for concurrent use.
type ViewModel struct {
	source  domrepo.SnapshotSource
	deriver domsvc.MetricDeriver

	mu      sync.RWMutex
	period  models.Period
	sort    models.SortState
	state   models.ViewState
	entries []models.ViewEntry
	err     error
	gen     uint64
}

func NewViewModel(source domrepo.SnapshotSource, deriver domsvc.MetricDeriver) *ViewModel {
	return &ViewModel{
		source:  source,
		deriver: deriver,
		period:  models.DefaultPeriod(),
		sort:    models.SortState{Key: models.SortNone, Direction: models.Descending},
		state:   models.ViewLoading,
	}
}

// Load fetches the snapshot for period and replaces the entry set in one step.
// Only the most recently requested load is applied; an older one that
// finishes later returns ErrStaleLoad and leaves the state untouched.
func (vm *ViewModel) Load(ctx context.Context, period models.Period) error {
	vm.mu.Lock()
	vm.gen++
	gen := vm.gen
	vm.period = period
	// Ready entries stay visible until the new set replaces them.
	if vm.state != models.ViewReady {
		vm.state = models.ViewLoading
	}
	vm.mu.Unlock()

	assets, err := vm.source.FetchSnapshot(ctx, period)
	var entries []models.ViewEntry
	if err == nil {
		entries = make([]models.ViewEntry, 0, len(assets))
		for _, a := range assets {
			entries = append(entries, models.ViewEntry{Asset: a, Derived: vm.deriver.Derive(a)})
		}
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if gen != vm.gen || period != vm.period {
		return ErrStaleLoad
	}

	switch {
	case err != nil:
		vm.state = models.ViewError
		vm.err = err
		return err
	case len(entries) == 0:
		vm.state = models.ViewEmpty
		vm.entries = nil
		vm.err = &models.EmptyResultError{Period: period}
		return vm.err
	default:
		vm.state = models.ViewReady
		vm.entries = entries
		vm.err = nil
		return nil
	}
}

// SetSort changes the ordering without refetching.
func (vm *ViewModel) SetSort(s models.SortState) {
	vm.mu.Lock()
	vm.sort = s
	vm.mu.Unlock()
}

// OrderedEntries returns the entries in display order. An empty or failed
// load is reported as an error rather than an empty slice.
func (vm *ViewModel) OrderedEntries() ([]models.ViewEntry, error) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	switch vm.state {
	case models.ViewReady:
		return order(vm.entries, vm.sort), nil
	case models.ViewEmpty, models.ViewError:
		return nil, vm.err
	default:
		return nil, ErrNotLoaded
	}
}

func (vm *ViewModel) State() models.ViewState {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.state
}

func (vm *ViewModel) Period() models.Period {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.period
}

func (vm *ViewModel) Sort() models.SortState {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.sort
}

// View builds a complete frame for a renderer.
func (vm *ViewModel) View() models.DashboardView {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	v := models.DashboardView{Period: vm.period, Sort: vm.sort, State: vm.state, Cards: []models.Card{}}
	switch vm.state {
	case models.ViewReady:
		for _, e := range order(vm.entries, vm.sort) {
			v.Cards = append(v.Cards, models.NewCard(e))
		}
	case models.ViewEmpty:
		v.Message = emptyMessage(vm.period)
	case models.ViewError:
		v.Message = msgLoadFailed
	}
	return v
}

// order returns a stably sorted copy. Key none keeps arrival order.
func order(entries []models.ViewEntry, s models.SortState) []models.ViewEntry {
	out := slices.Clone(entries)
	value := sortValue(s.Key)
	if value == nil {
		return out
	}
	slices.SortStableFunc(out, func(a, b models.ViewEntry) int {
		if s.Direction == models.Ascending {
			return cmp.Compare(value(a), value(b))
		}
		return cmp.Compare(value(b), value(a))
	})
	return out
}

func sortValue(k models.SortKey) func(models.ViewEntry) float64 {
	switch k {
	case models.SortReturn:
		return func(e models.ViewEntry) float64 { return e.Asset.TotalReturn }
	case models.SortStrength:
		return func(e models.ViewEntry) float64 { return float64(e.Derived.Strength) }
	case models.SortVolatility:
		return func(e models.ViewEntry) float64 { return e.Asset.Volatility }
	default:
		return nil
	}
}
