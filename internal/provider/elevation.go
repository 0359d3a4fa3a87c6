package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ssharma1991/autonomous-car-map-tools/internal/errors"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/geo"
)

type elevationRequest struct {
	Locations string `json:"locations"`
}

type elevationResponse struct {
	Results []struct {
		Elevation float64 `json:"elevation"`
	} `json:"results"`
}

// Elevations resolves the altitude in meters for every vertex of the
// polyline in a single batched request. The result is aligned 1:1 with the
// input vertices.
func (c *Client) Elevations(ctx context.Context, line geo.Polyline) ([]float64, error) {
	if len(line) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidParameter, "elevation batch requires at least one waypoint")
	}

	locations := make([]string, 0, len(line))
	for _, wp := range line {
		locations = append(locations, formatCoord(wp.Lat)+","+formatCoord(wp.Lon))
	}
	body, err := json.Marshal(elevationRequest{Locations: strings.Join(locations, "|")})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrProvider, "encode elevation request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.elevationURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrProvider, "build elevation request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrProvider, "elevation request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(errors.ErrProvider, "elevation request: unexpected status %d", resp.StatusCode)
	}

	var parsed elevationResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errors.Wrapf(errors.ErrProvider, "decode elevation response: %v", err)
	}
	if len(parsed.Results) != len(line) {
		return nil, errors.Wrapf(errors.ErrProvider, "elevation response has %d results for %d points", len(parsed.Results), len(line))
	}

	alts := make([]float64, len(parsed.Results))
	for i, result := range parsed.Results {
		alts[i] = result.Elevation
	}

	c.logger.Debug("elevations resolved", slog.Int("points", len(alts)))

	return alts, nil
}
