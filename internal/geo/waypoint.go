// Package geo provides the geodetic primitives shared by the route,
// drive, and horizon packages: waypoints, bounding boxes, slippy-tile
// coordinate math, and point-to-segment projection.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"

	"github.com/ssharma1991/autonomous-car-map-tools/internal/errors"
)

// Waypoint is a geodetic position with an optional altitude in meters.
// Equality is value-based; construct with NewWaypoint or NewWaypointAlt.
type Waypoint struct {
	Lat    float64
	Lon    float64
	Alt    float64
	HasAlt bool
}

// NewWaypoint returns a waypoint without altitude.
func NewWaypoint(lat, lon float64) Waypoint {
	return Waypoint{Lat: lat, Lon: lon}
}

// NewWaypointAlt returns a waypoint with an altitude in meters.
func NewWaypointAlt(lat, lon, alt float64) Waypoint {
	return Waypoint{Lat: lat, Lon: lon, Alt: alt, HasAlt: true}
}

// Point returns the waypoint as an orb.Point in (lon, lat) order.
func (w Waypoint) Point() orb.Point {
	return orb.Point{w.Lon, w.Lat}
}

// Distance returns the great-circle distance to other in meters.
func (w Waypoint) Distance(other Waypoint) float64 {
	return orbgeo.DistanceHaversine(w.Point(), other.Point())
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))

	return math.Round(v*factor) / factor
}

// Interpolate returns the waypoint at parameter t along the segment from a
// to b, linear in latitude, longitude, and altitude. Latitude and longitude
// are kept at 7 decimal places (~1 cm), altitude at 2. The altitude is
// interpolated only when both endpoints carry one.
func Interpolate(a, b Waypoint, t float64) (Waypoint, error) {
	if t < 0 || t > 1 {
		return Waypoint{}, errors.Wrapf(errors.ErrInvalidParameter, "interpolation parameter %v outside [0,1]", t)
	}

	wp := Waypoint{
		Lat: roundTo(a.Lat+(b.Lat-a.Lat)*t, 7),
		Lon: roundTo(a.Lon+(b.Lon-a.Lon)*t, 7),
	}
	if a.HasAlt && b.HasAlt {
		wp.Alt = roundTo(a.Alt+(b.Alt-a.Alt)*t, 2)
		wp.HasAlt = true
	}

	return wp, nil
}

// Polyline is an ordered sequence of at least two waypoints representing a
// drivable path. Consecutive duplicates are forbidden.
type Polyline []Waypoint

// Length returns the total arc length of the polyline in meters.
func (p Polyline) Length() float64 {
	var total float64
	for i := 1; i < len(p); i++ {
		total += p[i-1].Distance(p[i])
	}

	return total
}
