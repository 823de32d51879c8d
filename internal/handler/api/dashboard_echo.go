package api

import (
	"github.com/labstack/echo/v4"

	"FinDash/internal/domain/models"
	"FinDash/internal/usecase"
	xhttp "FinDash/pkg/http"
	xlogger "FinDash/pkg/logger"
)

// SeriesLookup returns the last chart shown for a symbol.
type SeriesLookup interface {
	Series(symbol string) (models.Series, bool)
}

// DashboardEchoHandler exposes the dashboard controller over HTTP.
type DashboardEchoHandler struct {
	logger *xlogger.Logger
	ctrl   *usecase.DashboardController
	charts SeriesLookup
	stream echo.HandlerFunc
}

// NewDashboardEchoHandler creates the handler. stream serves the websocket
// route and may be nil.
func NewDashboardEchoHandler(logger *xlogger.Logger, ctrl *usecase.DashboardController, charts SeriesLookup, stream echo.HandlerFunc) *DashboardEchoHandler {
	return &DashboardEchoHandler{logger: logger, ctrl: ctrl, charts: charts, stream: stream}
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/dashboard")
	g.GET("", h.View)
	g.POST("/period", h.SelectPeriod)
	g.POST("/sort", h.SelectSort)
	g.GET("/series/:symbol", h.Series)
	if h.stream != nil {
		e.GET("/ws/dashboard", h.stream)
	}
}

func (h *DashboardEchoHandler) View(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.ctrl.View())
}

func (h *DashboardEchoHandler) SelectPeriod(c echo.Context) error {
	req := &models.PeriodRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	period := models.NormalizePeriod(req.Period)
	if !models.IsKnownPeriod(period) {
		h.logger.Debug("dashboard unlisted period forwarded", xlogger.String("period", string(period)))
	}
	v := h.ctrl.SelectPeriod(c.Request().Context(), period)
	return xhttp.SuccessResponse(c, v)
}

func (h *DashboardEchoHandler) SelectSort(c echo.Context) error {
	req := &models.SortRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	key, ok := models.ParseSortKey(req.Sort)
	if !ok {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestErrorf("unknown sort key %q", req.Sort))
	}
	return xhttp.SuccessResponse(c, h.ctrl.SelectSort(c.Request().Context(), key))
}

func (h *DashboardEchoHandler) Series(c echo.Context) error {
	req := &models.SeriesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.ctrl.OpenDetail(c.Request().Context(), req.Symbol) {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("no series for %s", req.Symbol).WithParam("symbol", req.Symbol))
	}
	s, ok := h.charts.Series(req.Symbol)
	if !ok {
		h.logger.Warn("dashboard series missing after detail", xlogger.String("symbol", req.Symbol))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, s)
}
