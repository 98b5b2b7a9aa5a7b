package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Upstream  UpstreamConfig  `toml:"upstream"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Analysis  AnalysisConfig  `toml:"analysis"`
	Images    ImagesConfig    `toml:"images"`
	Log       LogConfig       `toml:"log"`
	Data      DataConfig      `toml:"data"`
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	Port string `toml:"port"`
}

// UpstreamConfig contains card feed settings.
type UpstreamConfig struct {
	Token       string `toml:"token"`        // Official API token; empty uses the mirror
	OfficialURL string `toml:"official_url"` // Authenticated card list
	MirrorURL   string `toml:"mirror_url"`   // Public card list
	Timeout     string `toml:"timeout"`      // Request timeout (e.g., "12s")
}

// RateLimitConfig limits inbound /api/cards requests, which each hit the feed.
type RateLimitConfig struct {
	RequestsPerSecond float64 `toml:"requests_per_second"` // 0 disables limiting
	Burst             int     `toml:"burst"`
}

// AnalysisConfig contains deck check thresholds.
type AnalysisConfig struct {
	HeavyThreshold      float64 `toml:"heavy_threshold"`
	LightThreshold      float64 `toml:"light_threshold"`
	CheckLight          bool    `toml:"check_light"`
	BuildingMinTrophies int     `toml:"building_min_trophies"` // 0 always checks for a building
}

// ImagesConfig contains deck image settings.
type ImagesConfig struct {
	IconBase string `toml:"icon_base"`
	Timeout  string `toml:"timeout"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level       string `toml:"level"`       // debug, info, warn, error
	Development bool   `toml:"development"` // Console encoder
}

// DataConfig points at optional local data.
type DataConfig struct {
	Dir string `toml:"dir"` // Directory holding cards.csv
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8080",
		},
		Upstream: UpstreamConfig{
			OfficialURL: "https://api.clashroyale.com/v1/cards",
			MirrorURL:   "https://raw.githubusercontent.com/RoyaleAPI/cr-api-data/master/json/cards.json",
			Timeout:     "12s",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			Burst:             10,
		},
		Analysis: AnalysisConfig{
			HeavyThreshold: 4.0,
			LightThreshold: 2.8,
			CheckLight:     true,
		},
		Images: ImagesConfig{
			IconBase: "https://raw.githubusercontent.com/RoyaleAPI/cr-api-assets/master/cards-75/",
			Timeout:  "10s",
		},
		Log: LogConfig{
			Level: "info",
		},
		Data: DataConfig{
			Dir: "data",
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if tok := os.Getenv("CLASH_API_TOKEN"); tok != "" {
		c.Upstream.Token = tok
	}
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = port
	}
}

// Validate checks values that cannot be corrected silently.
func (c *Config) Validate() error {
	if _, err := c.UpstreamTimeout(); err != nil {
		return err
	}
	if _, err := c.ImageTimeout(); err != nil {
		return err
	}
	if c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 0 {
		return errors.New("rate_limit values must not be negative")
	}
	if c.RateLimit.RequestsPerSecond > 0 && c.RateLimit.Burst < 1 {
		return errors.New("rate_limit.burst must be at least 1 when requests_per_second is set")
	}
	if c.Analysis.HeavyThreshold <= 0 {
		return errors.New("analysis.heavy_threshold must be positive")
	}
	return nil
}

// UpstreamTimeout parses Upstream.Timeout.
func (c *Config) UpstreamTimeout() (time.Duration, error) {
	return parseDuration("upstream.timeout", c.Upstream.Timeout)
}

// ImageTimeout parses Images.Timeout.
func (c *Config) ImageTimeout() (time.Duration, error) {
	return parseDuration("images.timeout", c.Images.Timeout)
}

func parseDuration(field, v string) (time.Duration, error) {
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, v, err)
	}
	return d, nil
}

// Save writes the configuration as TOML.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
