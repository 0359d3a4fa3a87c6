package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectOntoSegment(t *testing.T) {
	t.Parallel()

	a := NewWaypoint(0, 0)
	b := NewWaypoint(0, 10)

	// A point above the middle of the segment projects straight down.
	p := ProjectOntoSegment(a, b, NewWaypoint(5, 5))
	assert.InDelta(t, 0, p.Lat, 1e-12)
	assert.InDelta(t, 5, p.Lon, 1e-12)

	// Beyond either endpoint the parameter clamps.
	p = ProjectOntoSegment(a, b, NewWaypoint(3, -4))
	assert.Equal(t, a, p)
	p = ProjectOntoSegment(a, b, NewWaypoint(-3, 14))
	assert.Equal(t, b, p)
}

func TestProjectOntoSegment_DegenerateSegment(t *testing.T) {
	t.Parallel()

	a := NewWaypoint(37.5, -122.2)
	p := ProjectOntoSegment(a, a, NewWaypoint(38.0, -121.0))
	assert.Equal(t, a, p)
}

func TestProjectOntoSegment_PointOnSegment(t *testing.T) {
	t.Parallel()

	a := NewWaypoint(37.0, -122.0)
	b := NewWaypoint(38.0, -121.0)
	mid := NewWaypoint(37.5, -121.5)

	p := ProjectOntoSegment(a, b, mid)
	assert.InDelta(t, mid.Lat, p.Lat, 1e-12)
	assert.InDelta(t, mid.Lon, p.Lon, 1e-12)
}
