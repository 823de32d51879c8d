// Package prefs persists the dashboard's remembered timeframe and sort order
// and applies the per-timeframe default sort policy.
package prefs

import (
	"context"
	"fmt"

	"FinDash/internal/domain/models"
	domrepo "FinDash/internal/domain/repository"
	pkgcache "FinDash/pkg/cache"
	applogger "FinDash/pkg/logger"
)

// Key is the storage key of the single preferences record.
const Key = "dashboard_prefs"

// Store reads and writes Preferences in a KVStore.
type Store struct {
	kv domrepo.KVStore
	l  *applogger.Logger
}

func NewStore(kv domrepo.KVStore) *Store {
	return &Store{kv: kv}
}

// SetLogger injects a structured logger.
func (s *Store) SetLogger(l *applogger.Logger) { s.l = l }

type record struct {
	Period    string `json:"period"`
	Sort      string `json:"sort"`
	Direction string `json:"direction"`
}

// Load returns the saved preferences. A missing, unreadable or corrupt record
// loads as all-absent; unknown sort keys and directions are dropped.
func (s *Store) Load(ctx context.Context) models.Preferences {
	r, ok, err := pkgcache.GetJSON[record](ctx, s.kv, Key)
	if err != nil {
		s.warn("prefs load_error", err)
		return models.Preferences{}
	}
	if !ok {
		return models.Preferences{}
	}

	p := models.Preferences{Period: models.Period(r.Period)}
	if k, ok := models.ParseSortKey(r.Sort); ok {
		p.Sort = k
	}
	if d, ok := models.ParseDirection(r.Direction); ok {
		p.Direction = d
	}
	return p
}

// Save writes p, replacing any previous record.
func (s *Store) Save(ctx context.Context, p models.Preferences) error {
	if err := pkgcache.SetJSON(ctx, s.kv, Key, p); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	return nil
}

func (s *Store) warn(msg string, err error) {
	if s.l != nil {
		s.l.Warn(msg, applogger.String("key", Key), applogger.Error(err))
	}
}

var _ domrepo.PreferenceStore = (*Store)(nil)
