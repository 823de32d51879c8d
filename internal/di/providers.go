package di

import (
	"fmt"
	"io"

	"FinDash/internal/domain/models"
	"FinDash/internal/domain/repository"
	domsvc "FinDash/internal/domain/service"
	"FinDash/internal/handler/api"
	"FinDash/internal/handler/ws"
	"FinDash/internal/service/cache"
	"FinDash/internal/service/market"
	"FinDash/internal/service/prefs"
	"FinDash/internal/service/render"
	"FinDash/internal/services/analytics"
	"FinDash/internal/usecase"
	pkgcache "FinDash/pkg/cache"
	"FinDash/pkg/config"
	xhttp "FinDash/pkg/http"
	applogger "FinDash/pkg/logger"
	"FinDash/pkg/metrics"
	"FinDash/pkg/server"
)

// Storage is the durable key/value backend shared by the snapshot cache and
// the preferences record.
type Storage interface {
	pkgcache.Store
	io.Closer
}

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Output:  cfg.Logging.Output,
		Service: "findash",
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideStorage creates the configured key/value backend.
func ProvideStorage(cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Backend {
	case config.StorageRedis:
		s, err := pkgcache.NewRedisStore(
			pkgcache.WithRedisAddr(cfg.Storage.Redis.Addr),
			pkgcache.WithRedisPassword(cfg.Storage.Redis.Password),
			pkgcache.WithRedisDB(cfg.Storage.Redis.DB),
			pkgcache.WithRedisPrefix(cfg.Storage.Redis.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("redis storage: %w", err)
		}
		return s, nil
	default:
		return pkgcache.NewMemoryStore(pkgcache.WithMemoryMaxBytes(cfg.Storage.MaxBytes)), nil
	}
}

// ProvideSnapshotCache creates the best-effort snapshot cache.
func ProvideSnapshotCache(store Storage, cfg *config.Config, l *applogger.Logger) *cache.SnapshotCache {
	c := cache.NewSnapshotCache(store, cache.WithTTL(cfg.Dashboard.CacheTTL))
	c.SetLogger(l.With("snapshot_cache"))
	return c
}

// ProvideHTTPClient creates the backend HTTP client.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	return xhttp.NewClient(xhttp.WithTimeout(cfg.API.Timeout))
}

// ProvideMarketClient creates the snapshot/series client.
func ProvideMarketClient(cfg *config.Config, hc *xhttp.Client, c *cache.SnapshotCache, l *applogger.Logger) *market.Client {
	mc := market.NewClient(cfg.API.BaseURL, hc, c)
	mc.SetLogger(l.With("market"))
	return mc
}

// ProvideSnapshotSource exposes the market client as the domain source.
func ProvideSnapshotSource(mc *market.Client) repository.SnapshotSource {
	return mc
}

// ProvidePreferenceStore creates the preferences store.
func ProvidePreferenceStore(store Storage, l *applogger.Logger) repository.PreferenceStore {
	s := prefs.NewStore(store)
	s.SetLogger(l.With("prefs"))
	return s
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New(nil)
}

// ProvideDeriver creates the strength/regime deriver.
func ProvideDeriver() domsvc.MetricDeriver {
	return analytics.NewDeriver()
}

// ProvideViewModel creates the dashboard view model.
func ProvideViewModel(src repository.SnapshotSource, d domsvc.MetricDeriver) *usecase.ViewModel {
	return usecase.NewViewModel(src, d)
}

// ProvideHub creates the websocket broadcast hub.
func ProvideHub(l *applogger.Logger) *ws.Hub {
	h := ws.NewHub()
	h.SetLogger(l.With("ws"))
	return h
}

// ProvideHolder creates the in-memory render target backing HTTP reads.
func ProvideHolder() *render.Holder {
	return render.NewHolder()
}

// ProvideDashboardController creates the controller rendering to both the
// holder and the websocket hub.
func ProvideDashboardController(
	cfg *config.Config,
	vm *usecase.ViewModel,
	store repository.PreferenceStore,
	src repository.SnapshotSource,
	holder *render.Holder,
	hub *ws.Hub,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.DashboardController {
	out := render.NewFanout(holder, hub)
	c := usecase.NewDashboardController(vm, store, src, out, out, m)
	c.SetLogger(l.With("dashboard"))
	c.SetDefaultPeriod(models.NormalizePeriod(cfg.Dashboard.DefaultPeriod))
	return c
}

// ProvideHTTPHandler creates the dashboard HTTP routes.
func ProvideHTTPHandler(l *applogger.Logger, ctrl *usecase.DashboardController, holder *render.Holder, hub *ws.Hub) xhttp.Handler {
	return api.NewDashboardEchoHandler(l.With("api"), ctrl, holder, hub.Serve)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	ctrl *usecase.DashboardController,
	hub *ws.Hub,
	handler xhttp.Handler,
	store Storage,
) *server.App {
	return server.New(cfg, l, ctrl, hub, handler, store)
}
