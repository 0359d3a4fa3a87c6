// Package provider adapts the external map services: OSRM routing,
// OpenTopoData elevation, and OpenStreetMap raster tiles with a local
// disk cache.
package provider

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ssharma1991/autonomous-car-map-tools/config"
)

// Client talks to the routing, elevation, and tile endpoints. It carries no
// session state beyond the tile cache; every call is idempotent at the
// level of observable state. Failed calls are not retried.
type Client struct {
	osrmURL      string
	elevationURL string
	tileURL      string
	userAgent    string
	httpClient   *http.Client
	cache        *TileCache
	logger       *slog.Logger
}

// New creates a provider client. The timeout from the config applies to
// every outgoing call.
func New(cfg config.ProviderConfig, cache *TileCache, logger *slog.Logger) *Client {
	return &Client{
		osrmURL:      cfg.OSRMURL,
		elevationURL: cfg.ElevationURL,
		tileURL:      cfg.TileURL,
		userAgent:    cfg.UserAgent,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		cache:        cache,
		logger:       logger,
	}
}

// formatCoord formats a coordinate for use in a provider URL.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
