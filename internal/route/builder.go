// Package route composes per-leg provider polylines into a single
// continuous route with elevations attached.
package route

import (
	"context"
	"log/slog"

	"github.com/ssharma1991/autonomous-car-map-tools/internal/errors"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/geo"
)

// Provider is the subset of the map-provider client the builder needs.
type Provider interface {
	Route(ctx context.Context, start, end geo.Waypoint) (geo.Polyline, error)
	Elevations(ctx context.Context, line geo.Polyline) ([]float64, error)
}

// Builder turns an ordered list of waypoints into one drivable polyline.
type Builder struct {
	provider Provider
	logger   *slog.Logger
}

// NewBuilder creates a route builder on top of a map provider.
func NewBuilder(provider Provider, logger *slog.Logger) *Builder {
	return &Builder{provider: provider, logger: logger}
}

// Build resolves one polyline per leg, concatenates them dropping the
// duplicated join vertex between consecutive legs, and attaches elevations
// to every vertex of the result.
func (b *Builder) Build(ctx context.Context, waypoints []geo.Waypoint) (geo.Polyline, error) {
	if len(waypoints) < 2 {
		return nil, errors.WithStack(errors.ErrInsufficientWaypoints)
	}

	var line geo.Polyline
	for i := 0; i < len(waypoints)-1; i++ {
		leg, err := b.provider.Route(ctx, waypoints[i], waypoints[i+1])
		if err != nil {
			return nil, errors.Wrapf(err, "route leg %d", i)
		}

		if i < len(waypoints)-2 {
			// Drop the last vertex; it reappears as the head of the next leg.
			line = append(line, leg[:len(leg)-1]...)
		} else {
			line = append(line, leg...)
		}
	}

	alts, err := b.provider.Elevations(ctx, line)
	if err != nil {
		return nil, errors.Wrap(err, "resolve route elevations")
	}
	if len(alts) != len(line) {
		return nil, errors.Wrapf(errors.ErrProvider, "elevation count %d does not match %d route vertices", len(alts), len(line))
	}
	for i := range line {
		line[i].Alt = alts[i]
		line[i].HasAlt = true
	}

	b.logger.Info("route built",
		slog.Int("waypoints", len(waypoints)),
		slog.Int("vertices", len(line)),
		slog.Float64("length_m", line.Length()),
	)

	return line, nil
}
