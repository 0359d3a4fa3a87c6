// Package config loads the simulator configuration from <env>.yaml files
// overlaid with environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	apperrors "github.com/ssharma1991/autonomous-car-map-tools/internal/errors"
)

const defaultPath = "."

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	Provider ProviderConfig `json:"provider" yaml:"provider"`

	Cache CacheConfig `json:"cache" yaml:"cache"`

	Drive DriveConfig `json:"drive" yaml:"drive"`

	Horizon HorizonConfig `json:"horizon" yaml:"horizon"`

	Mosaic MosaicConfig `json:"mosaic" yaml:"mosaic"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// ProviderConfig points the map-provider client at its routing, elevation,
// and raster-tile endpoints.
type ProviderConfig struct {
	OSRMURL      string        `json:"osrmUrl" yaml:"osrmUrl"`
	ElevationURL string        `json:"elevationUrl" yaml:"elevationUrl"`
	TileURL      string        `json:"tileUrl" yaml:"tileUrl"`
	UserAgent    string        `json:"userAgent" yaml:"userAgent"`
	Timeout      time.Duration `json:"timeout" yaml:"timeout" validate:"gte=0"`
}

// CacheConfig holds the tile cache settings. The cache root is created on
// first use and never evicted.
type CacheConfig struct {
	Root string `json:"root" yaml:"root"`
}

// WaypointConfig is a route input position.
type WaypointConfig struct {
	Lat float64 `json:"lat" yaml:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" yaml:"lon" validate:"gte=-180,lte=180"`
}

// DriveConfig controls the virtual drive: ground speed in m/s, GNSS sample
// frequency in Hz, and the trace epoch.
type DriveConfig struct {
	Speed     float64          `json:"speed" yaml:"speed" validate:"gt=0"`
	Freq      float64          `json:"freq" yaml:"freq" validate:"gt=0"`
	Epoch     time.Time        `json:"epoch" yaml:"epoch"`
	Waypoints []WaypointConfig `json:"waypoints" yaml:"waypoints" validate:"dive"`
	TracePath string           `json:"tracePath" yaml:"tracePath"`
}

// HorizonConfig controls the electronic horizon engine.
type HorizonConfig struct {
	ForwardBudget  float64  `json:"forwardBudget" yaml:"forwardBudget" validate:"gte=0"`
	BackwardBudget float64  `json:"backwardBudget" yaml:"backwardBudget" validate:"gte=0"`
	HighwayClasses []string `json:"highwayClasses" yaml:"highwayClasses"`
	TracePath      string   `json:"tracePath" yaml:"tracePath"`
	OSMPath        string   `json:"osmPath" yaml:"osmPath"`
}

// MosaicConfig controls basemap mosaic assembly. Zoom is auto-selected from
// the bounding box when nil.
type MosaicConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	Zoom       *int   `json:"zoom" yaml:"zoom" validate:"omitempty,gte=0,lte=19"`
	OutputPath string `json:"outputPath" yaml:"outputPath"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, fmt.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("read %s config failed: %w", currEnv, err)
	}

	// Load environment variables, mapping ENV_VAR_NAME onto the casing the
	// YAML tree already uses.
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, koanfInstance.Raw()), v
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("load env variables failed: %w", err)
	}

	// Unmarshal into the config struct
	if err := koanfInstance.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal %s config failed: %w", currEnv, err)
	}

	return cfg, nil
}

// canonicalizeEnvKey converts FOO_BAR_BAZ to foo.bar.baz, reusing the
// casing of keys already present in the loaded tree so that camelCase YAML
// keys can be overridden from the environment.
func canonicalizeEnvKey(envKey string, existing map[string]any) string {
	parts := strings.Split(strings.ToLower(envKey), "_")
	canonical := make([]string, 0, len(parts))

	current := existing
	for _, part := range parts {
		matched := part
		if current != nil {
			for key := range current {
				if strings.ToLower(key) == part {
					matched = key

					break
				}
			}
			sub, ok := current[matched].(map[string]any)
			if ok {
				current = sub
			} else {
				current = nil
			}
		}
		canonical = append(canonical, matched)
	}

	return strings.Join(canonical, ".")
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Defaults returns a config populated with the built-in defaults only.
func Defaults() *Config {
	cfg := &Config{}
	cfg.applyDefaults()

	return cfg
}

func (c *Config) applyDefaults() {
	if c.Env.ServiceName == "" {
		c.Env.ServiceName = "autonomous-car-map-tools"
	}
	if c.Env.Log.Level == "" {
		c.Env.Log.Level = "info"
	}
	if c.Provider.OSRMURL == "" {
		c.Provider.OSRMURL = "https://router.project-osrm.org"
	}
	if c.Provider.ElevationURL == "" {
		c.Provider.ElevationURL = "https://api.opentopodata.org/v1/srtm90m"
	}
	if c.Provider.TileURL == "" {
		c.Provider.TileURL = "https://a.tile.openstreetmap.org"
	}
	if c.Provider.UserAgent == "" {
		c.Provider.UserAgent = "autonomous-car-map-tools/1.0"
	}
	if c.Provider.Timeout == 0 {
		c.Provider.Timeout = 30 * time.Second
	}
	if c.Cache.Root == "" {
		c.Cache.Root = "osm_tiles"
	}
	if c.Drive.Speed == 0 {
		c.Drive.Speed = 30
	}
	if c.Drive.Freq == 0 {
		c.Drive.Freq = 10
	}
	if c.Drive.Epoch.IsZero() {
		c.Drive.Epoch = time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
	}
	if c.Drive.TracePath == "" {
		c.Drive.TracePath = "demo_virtual_drive.csv"
	}
	if c.Horizon.ForwardBudget == 0 {
		c.Horizon.ForwardBudget = 1000
	}
	if c.Horizon.BackwardBudget == 0 {
		c.Horizon.BackwardBudget = 250
	}
	if len(c.Horizon.HighwayClasses) == 0 {
		c.Horizon.HighwayClasses = []string{"motorway", "motorway_link"}
	}
	if c.Horizon.TracePath == "" {
		c.Horizon.TracePath = c.Drive.TracePath
	}
}

// Validate checks the configuration ranges. Violations are reported as
// invalid-parameter errors.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return errors.Wrapf(apperrors.ErrInvalidParameter, "config validation: %v", err)
	}

	return nil
}
