// Package trace persists simulated GNSS drives as CSV and derives
// aggregate drive metrics.
package trace

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ssharma1991/autonomous-car-map-tools/internal/drive"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/errors"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/geo"
)

// header is the exact CSV column layout of a drive trace.
var header = []string{"timestamp_s", "latitude_deg", "longitude_deg", "altitude_m", "speed_m_per_s"}

// Write emits one row per sample. Timestamps keep one decimal, latitude
// and longitude seven, altitude two; the altitude cell is empty when the
// sample has none.
func Write(w io.Writer, samples []drive.Sample) error {
	if len(samples) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no drive samples to write")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "write trace header")
	}

	for _, sample := range samples {
		alt := ""
		if sample.Waypoint.HasAlt {
			alt = strconv.FormatFloat(sample.Waypoint.Alt, 'f', 2, 64)
		}
		row := []string{
			strconv.FormatFloat(sample.TimestampS, 'f', 1, 64),
			strconv.FormatFloat(sample.Waypoint.Lat, 'f', 7, 64),
			strconv.FormatFloat(sample.Waypoint.Lon, 'f', 7, 64),
			alt,
			strconv.FormatFloat(sample.SpeedMS, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "write trace row")
		}
	}

	cw.Flush()

	return errors.Wrap(cw.Error(), "flush trace")
}

// WriteFile writes the trace to a temp file and renames it into place, so
// a failed run leaves no partial CSV behind.
func WriteFile(path string, samples []drive.Sample) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "trace-*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp trace")
	}
	tmpName := tmp.Name()

	if err := Write(tmp, samples); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)

		return errors.Wrap(err, "close temp trace")
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)

		return errors.Wrap(err, "store trace")
	}

	return nil
}

// Read parses a drive trace produced by Write.
func Read(r io.Reader) ([]drive.Sample, error) {
	cr := csv.NewReader(r)

	first, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "read trace header")
	}
	if len(first) != len(header) {
		return nil, errors.Errorf("trace header has %d columns, want %d", len(first), len(header))
	}

	var samples []drive.Sample
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read trace row")
		}

		sample, err := parseRow(row)
		if err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

// ReadFile reads a drive trace from disk.
func ReadFile(path string) ([]drive.Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open trace")
	}
	defer file.Close()

	return Read(file)
}

func parseRow(row []string) (drive.Sample, error) {
	if len(row) != len(header) {
		return drive.Sample{}, errors.Errorf("trace row has %d columns, want %d", len(row), len(header))
	}

	ts, err := strconv.ParseFloat(row[0], 64)
	if err != nil {
		return drive.Sample{}, errors.Wrap(err, "parse timestamp")
	}
	lat, err := strconv.ParseFloat(row[1], 64)
	if err != nil {
		return drive.Sample{}, errors.Wrap(err, "parse latitude")
	}
	lon, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		return drive.Sample{}, errors.Wrap(err, "parse longitude")
	}
	speed, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return drive.Sample{}, errors.Wrap(err, "parse speed")
	}

	wp := geo.NewWaypoint(lat, lon)
	if row[3] != "" {
		alt, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return drive.Sample{}, errors.Wrap(err, "parse altitude")
		}
		wp = geo.NewWaypointAlt(lat, lon, alt)
	}

	return drive.Sample{TimestampS: ts, Waypoint: wp, SpeedMS: speed}, nil
}

// Downsample thins a sub-second trace to roughly one sample per second,
// the rate the horizon engine consumes. Traces already at or below 1 Hz
// come back unchanged.
func Downsample(samples []drive.Sample) []drive.Sample {
	if len(samples) < 2 {
		return samples
	}

	dt := samples[1].TimestampS - samples[0].TimestampS
	if dt <= 0 || dt >= 1 {
		return samples
	}

	stride := int(math.Round(1 / dt))
	out := make([]drive.Sample, 0, len(samples)/stride+1)
	for i := 0; i < len(samples); i += stride {
		out = append(out, samples[i])
	}

	return out
}
