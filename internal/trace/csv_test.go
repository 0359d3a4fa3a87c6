package trace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssharma1991/autonomous-car-map-tools/internal/drive"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/errors"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/geo"
)

func testSamples() []drive.Sample {
	return []drive.Sample{
		{TimestampS: 1735732800.0, Waypoint: geo.NewWaypointAlt(37.6130184, -122.3962536, 3.25), SpeedMS: 30},
		{TimestampS: 1735732800.1, Waypoint: geo.NewWaypointAlt(37.6130101, -122.3962231, 3.5), SpeedMS: 30},
		{TimestampS: 1735732800.2, Waypoint: geo.NewWaypoint(37.6130020, -122.3961927), SpeedMS: 30},
	}
}

func TestWrite_Format(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	require.NoError(t, Write(&sb, testSamples()))

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "timestamp_s,latitude_deg,longitude_deg,altitude_m,speed_m_per_s", lines[0])
	assert.Equal(t, "1735732800.0,37.6130184,-122.3962536,3.25,30", lines[1])
	assert.Equal(t, "1735732800.1,37.6130101,-122.3962231,3.50,30", lines[2])

	// Missing altitude leaves the cell empty.
	assert.Equal(t, "1735732800.2,37.6130020,-122.3961927,,30", lines[3])

	// Unix line endings only.
	assert.NotContains(t, sb.String(), "\r")
}

func TestWrite_Empty(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	assert.ErrorIs(t, Write(&sb, nil), errors.ErrEmpty)
	assert.Empty(t, sb.String())
}

func TestWriteFile_ReadFile_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "drive.csv")
	samples := testSamples()
	require.NoError(t, WriteFile(path, samples))

	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, got, len(samples))

	for i := range samples {
		assert.InDelta(t, samples[i].TimestampS, got[i].TimestampS, 1e-6)
		assert.InDelta(t, samples[i].Waypoint.Lat, got[i].Waypoint.Lat, 1e-7)
		assert.InDelta(t, samples[i].Waypoint.Lon, got[i].Waypoint.Lon, 1e-7)
		assert.Equal(t, samples[i].Waypoint.HasAlt, got[i].Waypoint.HasAlt)
		assert.Equal(t, samples[i].SpeedMS, got[i].SpeedMS)
	}
}

func TestWriteFile_LeavesNoPartialFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "drive.csv")

	err := WriteFile(path, nil)
	assert.ErrorIs(t, err, errors.ErrEmpty)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "failed write must not leave files behind")
}

func TestRead_RejectsMalformedRows(t *testing.T) {
	t.Parallel()

	input := "timestamp_s,latitude_deg,longitude_deg,altitude_m,speed_m_per_s\nnot-a-number,37.6,-122.4,,30\n"
	_, err := Read(strings.NewReader(input))
	assert.Error(t, err)
}

func TestDownsample(t *testing.T) {
	t.Parallel()

	// 10 Hz trace thins to 1 Hz.
	var samples []drive.Sample
	for i := 0; i < 25; i++ {
		samples = append(samples, drive.Sample{
			TimestampS: 1735732800.0 + float64(i)*0.1,
			Waypoint:   geo.NewWaypoint(37.6, -122.4),
			SpeedMS:    30,
		})
	}

	out := Downsample(samples)
	require.Len(t, out, 3)
	assert.Equal(t, samples[0], out[0])
	assert.Equal(t, samples[10], out[1])
	assert.Equal(t, samples[20], out[2])

	// A 1 Hz trace is returned unchanged.
	slow := []drive.Sample{
		{TimestampS: 100, Waypoint: geo.NewWaypoint(1, 2)},
		{TimestampS: 101, Waypoint: geo.NewWaypoint(1, 2)},
	}
	assert.Equal(t, slow, Downsample(slow))

	// Short traces are returned unchanged.
	assert.Len(t, Downsample(samples[:1]), 1)
}
