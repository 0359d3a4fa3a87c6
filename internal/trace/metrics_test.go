package trace

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssharma1991/autonomous-car-map-tools/internal/drive"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/errors"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/geo"
)

func TestComputeMetrics(t *testing.T) {
	t.Parallel()

	route := geo.Polyline{
		geo.NewWaypoint(37.0, -122.0),
		geo.NewWaypoint(37.01, -122.0),
	}

	var samples []drive.Sample
	for i := 0; i < 11; i++ {
		samples = append(samples, drive.Sample{
			TimestampS: 1735732800.0 + float64(i)*0.1,
			Waypoint:   geo.NewWaypoint(37.0, -122.0),
			SpeedMS:    30,
		})
	}

	m, err := ComputeMetrics(route, samples)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, m.DriveID)
	assert.Equal(t, 2, m.RouteVertices)
	assert.InDelta(t, route.Length(), m.RouteLengthM, 1e-9)
	assert.Equal(t, 11, m.SampleCount)
	assert.InDelta(t, 10.0, m.FrequencyHz, 1e-3)
	assert.InDelta(t, 1.0, m.DurationS, 1e-3)
	assert.Equal(t, 30.0, m.SpeedMS)
}

func TestComputeMetrics_RequiresSamples(t *testing.T) {
	t.Parallel()

	route := geo.Polyline{geo.NewWaypoint(37.0, -122.0), geo.NewWaypoint(37.01, -122.0)}

	_, err := ComputeMetrics(route, nil)
	assert.ErrorIs(t, err, errors.ErrEmpty)

	_, err = ComputeMetrics(route, []drive.Sample{{TimestampS: 1}})
	assert.ErrorIs(t, err, errors.ErrEmpty)
}
