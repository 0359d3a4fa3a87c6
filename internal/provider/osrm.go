package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ssharma1991/autonomous-car-map-tools/internal/errors"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/geo"
)

// osrmResponse mirrors the fields of the OSRM route response we consume.
type osrmResponse struct {
	Routes []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// Route returns a drivable polyline between two waypoints from the OSRM
// routing service. Vertices come back in (lon, lat) order on the wire and
// are converted to waypoints; consecutive duplicates are collapsed.
func (c *Client) Route(ctx context.Context, start, end geo.Waypoint) (geo.Polyline, error) {
	url := fmt.Sprintf("%s/route/v1/driving/%s,%s;%s,%s?overview=full&geometries=geojson",
		c.osrmURL,
		formatCoord(start.Lon), formatCoord(start.Lat),
		formatCoord(end.Lon), formatCoord(end.Lat),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrProvider, "build route request: %v", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrProvider, "route request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(errors.ErrProvider, "route request: unexpected status %d", resp.StatusCode)
	}

	var parsed osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errors.Wrapf(errors.ErrProvider, "decode route response: %v", err)
	}
	if len(parsed.Routes) == 0 {
		return nil, errors.Wrap(errors.ErrProvider, "route response contains no routes")
	}

	coords := parsed.Routes[0].Geometry.Coordinates
	line := make(geo.Polyline, 0, len(coords))
	for _, coord := range coords {
		if len(coord) < 2 {
			return nil, errors.Wrap(errors.ErrProvider, "malformed route coordinate")
		}
		wp := geo.NewWaypoint(coord[1], coord[0])
		if n := len(line); n > 0 && line[n-1] == wp {
			continue
		}
		line = append(line, wp)
	}
	if len(line) < 2 {
		return nil, errors.Wrap(errors.ErrProvider, "route polyline has fewer than two distinct vertices")
	}

	c.logger.Debug("route leg resolved",
		slog.Int("vertices", len(line)),
		slog.Float64("length_m", line.Length()),
	)

	return line, nil
}
