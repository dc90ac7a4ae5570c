// Package config loads navigator settings from YAML, .env and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/1F47E/go-navigator/pkg/geo"
	"github.com/1F47E/go-navigator/pkg/models"
	"github.com/1F47E/go-navigator/pkg/osrm"
	"github.com/1F47E/go-navigator/pkg/playback"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFile  = "config.yaml"
	ExampleFile  = "config.yaml.example"
	EnvOSRMURL   = "NAVIGATOR_OSRM_URL"
	DefaultLog   = "navigator.log"
	defaultLevel = "info"
)

// Config structure for YAML configuration
type Config struct {
	Routing struct {
		BaseURL        string `yaml:"base_url"`
		Profile        string `yaml:"profile"`
		Geometry       string `yaml:"geometry"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"routing"`
	Map struct {
		Center    models.Coordinate `yaml:"center"`
		Zoom      float64           `yaml:"zoom"`
		FocusZoom float64           `yaml:"focus_zoom"`
	} `yaml:"map"`
	Playback struct {
		FPS  int     `yaml:"fps"`
		Step float64 `yaml:"step"`
	} `yaml:"playback"`
	Log struct {
		File  string `yaml:"file"`
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the built-in settings
func Default() Config {
	var c Config
	c.Routing.BaseURL = osrm.DefaultBaseURL
	c.Routing.Profile = osrm.DefaultProfile
	c.Routing.Geometry = string(osrm.GeometryGeoJSON)
	c.Routing.TimeoutSeconds = int(osrm.DefaultTimeout / time.Second)
	c.Map.Center = models.Coordinate{Lat: 20, Lng: 0}
	c.Map.Zoom = 2
	c.Map.FocusZoom = 14
	c.Playback.FPS = playback.DefaultFPS
	c.Playback.Step = playback.DefaultStep
	c.Log.File = DefaultLog
	c.Log.Level = defaultLevel
	return c
}

// Load reads path over the defaults. With an empty path it tries config.yaml,
// then config.yaml.example, then keeps the defaults. source names the file
// used, or is empty.
func Load(path string) (cfg Config, source string, err error) {
	cfg = Default()

	candidates := []string{DefaultFile, ExampleFile}
	if path != "" {
		candidates = []string{path}
	}

	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate)
		if errors.Is(err, fs.ErrNotExist) && path == "" {
			continue
		}
		if err != nil {
			return cfg, "", fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, "", fmt.Errorf("failed to parse config %s: %w", candidate, err)
		}
		source = candidate
		break
	}

	return cfg, source, nil
}

// LoadDotEnv loads .env style files into the process environment. Missing
// files are skipped and variables already set are kept.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides settings from the environment
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvOSRMURL); ok && strings.TrimSpace(v) != "" {
		c.Routing.BaseURL = strings.TrimSpace(v)
	}
}

func (c Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.Routing.BaseURL)
	if c.Routing.BaseURL == "" || err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("routing.base_url %q is not an absolute url", c.Routing.BaseURL))
	}
	if _, err := osrm.ParseGeometry(c.Routing.Geometry); err != nil {
		errs = append(errs, fmt.Errorf("routing.geometry: %w", err))
	}
	if c.Routing.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("routing.timeout_seconds must be positive, got %d", c.Routing.TimeoutSeconds))
	}
	if !c.Map.Center.Valid() {
		errs = append(errs, fmt.Errorf("map.center %v is out of range", c.Map.Center))
	}
	zooms := []struct {
		name  string
		value float64
	}{
		{"map.zoom", c.Map.Zoom},
		{"map.focus_zoom", c.Map.FocusZoom},
	}
	for _, z := range zooms {
		if z.value < geo.MinZoom || z.value > geo.MaxZoom {
			errs = append(errs, fmt.Errorf("%s must be within [%v, %v], got %v", z.name, geo.MinZoom, geo.MaxZoom, z.value))
		}
	}
	if c.Playback.FPS < 1 || c.Playback.FPS > 240 {
		errs = append(errs, fmt.Errorf("playback.fps must be within [1, 240], got %d", c.Playback.FPS))
	}
	if c.Playback.Step <= 0 || c.Playback.Step > 1 {
		errs = append(errs, fmt.Errorf("playback.step must be within (0, 1], got %v", c.Playback.Step))
	}

	return errors.Join(errs...)
}

// Timeout is the per-request routing timeout
func (c Config) Timeout() time.Duration {
	return time.Duration(c.Routing.TimeoutSeconds) * time.Second
}

// GeometryFormat is the validated routing geometry
func (c Config) GeometryFormat() osrm.Geometry {
	g, err := osrm.ParseGeometry(c.Routing.Geometry)
	if err != nil {
		return osrm.GeometryGeoJSON
	}
	return g
}
