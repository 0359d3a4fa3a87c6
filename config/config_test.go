package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ssharma1991/autonomous-car-map-tools/internal/errors"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := Defaults()

	assert.Equal(t, "https://router.project-osrm.org", cfg.Provider.OSRMURL)
	assert.Equal(t, "https://a.tile.openstreetmap.org", cfg.Provider.TileURL)
	assert.Equal(t, 30*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, "osm_tiles", cfg.Cache.Root)
	assert.Equal(t, 30.0, cfg.Drive.Speed)
	assert.Equal(t, 10.0, cfg.Drive.Freq)
	assert.Equal(t, time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC), cfg.Drive.Epoch)
	assert.Equal(t, 1000.0, cfg.Horizon.ForwardBudget)
	assert.Equal(t, 250.0, cfg.Horizon.BackwardBudget)
	assert.Equal(t, []string{"motorway", "motorway_link"}, cfg.Horizon.HighwayClasses)

	require.NoError(t, cfg.Validate())
}

func TestValidate_RejectsOutOfRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "negative speed", mutate: func(c *Config) { c.Drive.Speed = -1 }},
		{name: "zero frequency", mutate: func(c *Config) { c.Drive.Freq = 0 }},
		{name: "latitude out of range", mutate: func(c *Config) {
			c.Drive.Waypoints = []WaypointConfig{{Lat: 91, Lon: 0}}
		}},
		{name: "longitude out of range", mutate: func(c *Config) {
			c.Drive.Waypoints = []WaypointConfig{{Lat: 0, Lon: -181}}
		}},
		{name: "zoom above maximum", mutate: func(c *Config) {
			zoom := 20
			c.Mosaic.Zoom = &zoom
		}},
		{name: "negative backward budget", mutate: func(c *Config) { c.Horizon.BackwardBudget = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Defaults()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), apperrors.ErrInvalidParameter)
		})
	}
}
