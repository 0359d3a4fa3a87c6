package trace

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/ssharma1991/autonomous-car-map-tools/internal/drive"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/errors"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/geo"
)

// Metrics aggregates a finished drive. FrequencyHz is inferred from the
// first two timestamps rather than read from configuration.
type Metrics struct {
	DriveID       uuid.UUID
	RouteVertices int
	RouteLengthM  float64
	SampleCount   int
	FrequencyHz   float64
	DurationS     float64
	SpeedMS       float64
}

// ComputeMetrics derives the drive metrics from a route and its sampled
// trace. At least two samples are required to infer the sample rate.
func ComputeMetrics(route geo.Polyline, samples []drive.Sample) (Metrics, error) {
	if len(samples) < 2 {
		return Metrics{}, errors.Wrap(errors.ErrEmpty, "metrics require a simulated drive")
	}

	first := samples[0]
	last := samples[len(samples)-1]

	return Metrics{
		DriveID:       uuid.New(),
		RouteVertices: len(route),
		RouteLengthM:  route.Length(),
		SampleCount:   len(samples),
		FrequencyHz:   1 / (samples[1].TimestampS - first.TimestampS),
		DurationS:     last.TimestampS - first.TimestampS,
		SpeedMS:       first.SpeedMS,
	}, nil
}

// LogTo reports the metrics through the structured logger.
func (m Metrics) LogTo(logger *slog.Logger) {
	logger.Info("drive metrics",
		slog.String("drive_id", m.DriveID.String()),
		slog.Int("route_vertices", m.RouteVertices),
		slog.Float64("route_length_m", m.RouteLengthM),
		slog.Int("sample_count", m.SampleCount),
		slog.Float64("frequency_hz", m.FrequencyHz),
		slog.Float64("duration_s", m.DurationS),
		slog.Float64("speed_m_per_s", m.SpeedMS),
	)
}
