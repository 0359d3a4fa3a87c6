// Package drive converts a route polyline into a uniformly time-spaced
// virtual drive at a constant ground speed.
package drive

import (
	"time"

	"github.com/ssharma1991/autonomous-car-map-tools/internal/errors"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/geo"
)

// Sample is one timestamped pose of the simulated GNSS trace.
type Sample struct {
	TimestampS float64
	Waypoint   geo.Waypoint
	SpeedMS    float64
}

// Resampler walks a polyline emitting samples every speed/freq meters of
// arc length, carrying the leftover distance across polyline segments. It
// is a pull iterator; samples are produced one at a time in index order.
type Resampler struct {
	route geo.Polyline
	speed float64
	freq  float64
	epoch time.Time
	step  float64

	segIdx    int
	carry     float64
	emitted   int
	segActive bool
	offset    geo.Waypoint
	segEnd    geo.Waypoint
	remaining float64
	k         int
}

// NewResampler validates the drive parameters. Speed is in m/s, freq in Hz,
// and the epoch fixes the timestamp of the first sample.
func NewResampler(route geo.Polyline, speed, freq float64, epoch time.Time) (*Resampler, error) {
	if speed <= 0 {
		return nil, errors.Wrapf(errors.ErrInvalidParameter, "speed %v must be positive", speed)
	}
	if freq <= 0 {
		return nil, errors.Wrapf(errors.ErrInvalidParameter, "frequency %v must be positive", freq)
	}
	if len(route) < 2 {
		return nil, errors.Wrapf(errors.ErrInvalidParameter, "route needs at least two vertices, got %d", len(route))
	}

	return &Resampler{
		route: route,
		speed: speed,
		freq:  freq,
		epoch: epoch,
		step:  speed / freq,
	}, nil
}

// Next returns the next drive sample, or false when the route is exhausted.
func (r *Resampler) Next() (Sample, bool) {
	for {
		if !r.segActive {
			if r.segIdx >= len(r.route)-1 {
				return Sample{}, false
			}

			segStart := r.route[r.segIdx]
			segEnd := r.route[r.segIdx+1]
			segLen := segStart.Distance(segEnd)

			if segLen == 0 {
				r.segIdx++

				continue
			}
			if r.carry > segLen {
				r.carry -= segLen
				r.segIdx++

				continue
			}

			offset := interpolate(segStart, segEnd, r.carry/segLen)
			r.offset = offset
			r.segEnd = segEnd
			r.remaining = offset.Distance(segEnd)
			r.k = 0
			r.segActive = true

			return r.emit(offset), true
		}

		r.k++
		dist := float64(r.k) * r.step
		if dist > r.remaining {
			// Arc-length shortfall to cover into the next segment before
			// the next emission.
			r.carry = dist - r.remaining
			r.segActive = false
			r.segIdx++

			continue
		}

		return r.emit(interpolate(r.offset, r.segEnd, dist/r.remaining)), true
	}
}

// All drains the iterator. Long drives should prefer Next.
func (r *Resampler) All() []Sample {
	var samples []Sample
	for {
		sample, ok := r.Next()
		if !ok {
			break
		}
		samples = append(samples, sample)
	}

	return samples
}

func (r *Resampler) emit(wp geo.Waypoint) Sample {
	sample := Sample{
		TimestampS: float64(r.epoch.Unix()) + float64(r.emitted)/r.freq,
		Waypoint:   wp,
		SpeedMS:    r.speed,
	}
	r.emitted++

	return sample
}

// interpolate clamps t against float drift before delegating; the callers
// construct t from distances already checked against the segment length.
func interpolate(a, b geo.Waypoint, t float64) geo.Waypoint {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	wp, err := geo.Interpolate(a, b, t)
	if err != nil {
		return a
	}

	return wp
}
