package geo

import (
	"github.com/ssharma1991/autonomous-car-map-tools/internal/errors"
)

// BoundingBox is an inclusive geodetic rectangle. Min is never greater than
// Max on either axis.
type BoundingBox struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// NewBoundingBox derives the bounding box of a non-empty set of waypoints.
func NewBoundingBox(waypoints []Waypoint) (BoundingBox, error) {
	if len(waypoints) == 0 {
		return BoundingBox{}, errors.Wrap(errors.ErrInvalidParameter, "bounding box requires at least one waypoint")
	}

	bb := BoundingBox{
		MinLat: waypoints[0].Lat,
		MinLon: waypoints[0].Lon,
		MaxLat: waypoints[0].Lat,
		MaxLon: waypoints[0].Lon,
	}
	for _, wp := range waypoints[1:] {
		if wp.Lat < bb.MinLat {
			bb.MinLat = wp.Lat
		}
		if wp.Lat > bb.MaxLat {
			bb.MaxLat = wp.Lat
		}
		if wp.Lon < bb.MinLon {
			bb.MinLon = wp.Lon
		}
		if wp.Lon > bb.MaxLon {
			bb.MaxLon = wp.Lon
		}
	}

	return bb, nil
}

// TopLeft returns the NW corner.
func (b BoundingBox) TopLeft() Waypoint {
	return NewWaypoint(b.MaxLat, b.MinLon)
}

// TopRight returns the NE corner.
func (b BoundingBox) TopRight() Waypoint {
	return NewWaypoint(b.MaxLat, b.MaxLon)
}

// BottomLeft returns the SW corner.
func (b BoundingBox) BottomLeft() Waypoint {
	return NewWaypoint(b.MinLat, b.MinLon)
}

// BottomRight returns the SE corner.
func (b BoundingBox) BottomRight() Waypoint {
	return NewWaypoint(b.MinLat, b.MaxLon)
}

// Pad returns the bounding box grown by d degrees on every side.
func (b BoundingBox) Pad(d float64) BoundingBox {
	return BoundingBox{
		MinLat: b.MinLat - d,
		MinLon: b.MinLon - d,
		MaxLat: b.MaxLat + d,
		MaxLon: b.MaxLon + d,
	}
}

// Contains reports whether the waypoint lies inside the box, borders
// included.
func (b BoundingBox) Contains(wp Waypoint) bool {
	return wp.Lat >= b.MinLat && wp.Lat <= b.MaxLat &&
		wp.Lon >= b.MinLon && wp.Lon <= b.MaxLon
}
