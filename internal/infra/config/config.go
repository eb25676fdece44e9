// Package config provides configuration loading from YAML files.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Playback PlaybackConfig `yaml:"playback"`
	Players  []PlayerConfig `yaml:"players" validate:"dive"`
	Log      LogConfig      `yaml:"log"`
}

// APIConfig represents the catalogue API configuration.
type APIConfig struct {
	BaseURL            string `yaml:"base_url" default:"https://radiooooo.com" validate:"required,url"`
	CountriesTimeoutMs int    `yaml:"countries_timeout_ms" default:"10000" validate:"gte=1000,lte=120000"`
	TrackTimeoutMs     int    `yaml:"track_timeout_ms" default:"15000" validate:"gte=1000,lte=120000"`
}

// PlaybackConfig represents playback session configuration.
type PlaybackConfig struct {
	PollIntervalMs int `yaml:"poll_interval_ms" default:"500" validate:"gte=50,lte=5000"`
	StopGraceMs    int `yaml:"stop_grace_ms" default:"2000" validate:"gte=100,lte=30000"`
}

// PlayerConfig represents a single player candidate, in priority order.
type PlayerConfig struct {
	Type     string         `yaml:"type" validate:"required,oneof=mpv ffplay"`
	Settings map[string]any `yaml:"settings"`
}

// LogConfig represents logging configuration.
type LogConfig struct {
	Level  string `yaml:"level" default:"warn" validate:"oneof=debug info warn warning error"`
	Output string `yaml:"output" default:"stderr"`
	File   string `yaml:"file"`
}

// searchPath is the config file location relative to the XDG config directories.
const searchPath = "radio/config.yaml"

// DiscoverPath returns the first radio/config.yaml found in the XDG config
// directories, or an empty string when there is none.
func DiscoverPath() string {
	path, err := xdg.SearchConfigFile(searchPath)
	if err != nil {
		return ""
	}
	return path
}

// Default returns the configuration used when no config file exists.
func Default() (*Config, error) {
	var cfg Config
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load loads configuration from a YAML file.
// Environment variables take precedence over file values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOptional loads path when it exists and falls back to Default otherwise.
// When required is true a missing file is an error.
func LoadOptional(path string, required bool) (*Config, error) {
	if path == "" {
		return Default()
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return Default()
		}
		return nil, errors.Wrapf(err, "config file %s", path)
	}
	return Load(path)
}

func (c *Config) finish() error {
	// Override with environment variables
	c.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(c); err != nil {
		return errors.Wrap(err, "failed to set defaults")
	}

	// Validate configuration
	if err := c.Validate(); err != nil {
		return errors.Wrap(err, "config validation failed")
	}
	return nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("RADIO_API_BASE"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("RADIO_POLL_INTERVAL_MS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			c.Playback.PollIntervalMs = i
		}
	}
	if v := os.Getenv("RADIO_PLAYER"); v != "" {
		// A single forced player replaces the candidate list.
		c.Players = []PlayerConfig{{Type: strings.ToLower(v)}}
	}
	if v := os.Getenv("RADIO_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}

// PollInterval returns the playback poll interval.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Playback.PollIntervalMs) * time.Millisecond
}

// StopGrace returns how long a player may take to exit after SIGTERM.
func (c *Config) StopGrace() time.Duration {
	return time.Duration(c.Playback.StopGraceMs) * time.Millisecond
}

// CountriesTimeout returns the timeout for directory requests.
func (c *Config) CountriesTimeout() time.Duration {
	return time.Duration(c.API.CountriesTimeoutMs) * time.Millisecond
}

// TrackTimeout returns the timeout for track requests.
func (c *Config) TrackTimeout() time.Duration {
	return time.Duration(c.API.TrackTimeoutMs) * time.Millisecond
}
