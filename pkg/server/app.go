package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"FinDash/internal/handler/ws"
	"FinDash/internal/usecase"
	"FinDash/pkg/config"
	xhttp "FinDash/pkg/http"
	applogger "FinDash/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	l           *applogger.Logger
	ctrl        *usecase.DashboardController
	hub         *ws.Hub
	httpHandler xhttp.Handler
	httpServer  *xhttp.Server
	store       io.Closer
}

// New creates a new App instance with all dependencies. store may be nil.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	ctrl *usecase.DashboardController,
	hub *ws.Hub,
	handler xhttp.Handler,
	store io.Closer,
) *App {
	return &App{
		cfg:         cfg,
		l:           l,
		ctrl:        ctrl,
		hub:         hub,
		httpHandler: handler,
		store:       store,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.hub.Run(ctx)

	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
	}
	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithHost(a.cfg.Server.Host),
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithSlowThreshold(a.cfg.Server.SlowThreshold),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithLogger(a.l),
	)

	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}

	v := a.ctrl.Initialize(ctx)
	a.l.Info("dashboard initialized",
		applogger.String("period", string(v.Period)),
		applogger.String("state", string(v.State)),
		applogger.Int("cards", len(v.Cards)),
	)

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
	}

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.l.Warn("storage close error", applogger.Error(err))
		}
	}

	a.l.Info("shutdown complete")
	return nil
}
