// Package market fetches dashboard snapshots and detail series from the
// backend API, consulting the snapshot cache first.
package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"FinDash/internal/domain/models"
	domrepo "FinDash/internal/domain/repository"
	"FinDash/internal/service/cache"
	"FinDash/internal/service/metrics"
	xhttp "FinDash/pkg/http"
	applogger "FinDash/pkg/logger"
)

const (
	resourceSnapshot = "snapshot"
	resourceSeries   = "series"
)

// SnapshotURL is the relative request URL (and cache identity) of a snapshot.
func SnapshotURL(period models.Period) string {
	return "/api/market?period=" + url.QueryEscape(string(period))
}

// SeriesURL is the relative request URL (and cache identity) of a detail series.
func SeriesURL(symbol string, period models.Period) string {
	return "/api/series/" + url.PathEscape(symbol) + "?period=" + url.QueryEscape(string(period))
}

// Client implements SnapshotSource over HTTP. A failed request is never retried.
type Client struct {
	baseURL string
	http    *xhttp.Client
	cache   *cache.SnapshotCache
	l       *applogger.Logger
}

func NewClient(baseURL string, httpClient *xhttp.Client, c *cache.SnapshotCache) *Client {
	metrics.Register()
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		cache:   c,
	}
}

// SetLogger injects a structured logger.
func (c *Client) SetLogger(l *applogger.Logger) { c.l = l }

// FetchSnapshot returns the assets for period in payload order.
func (c *Client) FetchSnapshot(ctx context.Context, period models.Period) ([]models.AssetSnapshot, error) {
	u := SnapshotURL(period)
	raw, err := c.fetchJSON(ctx, resourceSnapshot, u)
	if err != nil {
		return nil, err
	}
	assets, err := decodeSnapshot(raw)
	if err != nil {
		metrics.FetchErrors.WithLabelValues(resourceSnapshot, "parse").Inc()
		return nil, &models.ParseError{URL: u, Err: err}
	}
	return assets, nil
}

// FetchSeries returns the detail series for symbol.
func (c *Client) FetchSeries(ctx context.Context, symbol string, period models.Period) (models.Series, error) {
	u := SeriesURL(symbol, period)
	raw, err := c.fetchJSON(ctx, resourceSeries, u)
	if err != nil {
		return models.Series{}, err
	}
	s, err := decodeSeries(raw)
	if err != nil {
		metrics.FetchErrors.WithLabelValues(resourceSeries, "parse").Inc()
		return models.Series{}, &models.ParseError{URL: u, Err: err}
	}
	s.Symbol = symbol
	s.Period = period
	return s, nil
}

// fetchJSON returns the cached payload for u or performs a single GET.
// Only well-formed 2xx bodies are cached.
func (c *Client) fetchJSON(ctx context.Context, resource, u string) (json.RawMessage, error) {
	if c.cache != nil {
		if b, ok := c.cache.Get(ctx, u); ok {
			if c.l != nil {
				c.l.Debug("market cache_hit", applogger.String("url", u))
			}
			return b, nil
		}
	}

	start := time.Now()
	var body []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     c.baseURL + u,
		Headers: map[string]string{"Accept": "application/json"},
	}, &body)
	metrics.FetchLatency.WithLabelValues(resource).Observe(time.Since(start).Seconds())
	if err != nil {
		var se *xhttp.StatusError
		if errors.As(err, &se) {
			metrics.FetchErrors.WithLabelValues(resource, "status").Inc()
			if c.l != nil {
				c.l.Error("market fetch non_2xx", applogger.String("url", u), applogger.Int("status", se.Status))
			}
			return nil, &models.ApiError{Status: se.Status, URL: u, Body: se.Body}
		}
		metrics.FetchErrors.WithLabelValues(resource, "transport").Inc()
		if c.l != nil {
			c.l.Error("market fetch error", applogger.String("url", u), applogger.Error(err))
		}
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}

	if !json.Valid(body) {
		metrics.FetchErrors.WithLabelValues(resource, "parse").Inc()
		return nil, &models.ParseError{URL: u, Err: errors.New("invalid json body")}
	}

	if c.l != nil {
		c.l.Debug("market fetched", applogger.String("url", u), applogger.Float64("latency_s", time.Since(start).Seconds()))
	}
	if c.cache != nil {
		c.cache.Put(ctx, u, body)
	}
	return body, nil
}

var _ domrepo.SnapshotSource = (*Client)(nil)
