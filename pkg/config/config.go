// Package config loads the donut configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/donut/config.toml
// (~/.config/donut/config.toml when XDG_CONFIG_HOME is unset):
//
//	[chart]
//	donut = true
//	thickness = 40
//	radius = 90
//	origin = -90
//	colors = "palette"   # or "hash"
//	title = "Sales"
//	inner_title = "Total"
//
//	[cache]
//	backend = "file"     # file, redis or none
//	ttl = "168h"
//
//	[server]
//	addr = ":8080"
//	slice_url = "/counter"
//	center_url = "/weather"
//
// Every key is optional. Command-line flags override the file, and the
// file overrides built-in defaults.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/donut/pkg/cache"
	"github.com/matzehuels/donut/pkg/chart"
	"github.com/matzehuels/donut/pkg/donut"
	"github.com/matzehuels/donut/pkg/errors"
)

// AppName names the config and cache directories.
const AppName = "donut"

// Server defaults, taken from the navigation targets of the demo page.
const (
	DefaultAddr      = "127.0.0.1:8080"
	DefaultSliceURL  = "/counter"
	DefaultCenterURL = "/weather"
)

// Config is the decoded configuration file.
type Config struct {
	Chart  ChartConfig  `toml:"chart"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// ChartConfig holds chart defaults. Pointer fields distinguish "unset" from
// an explicit zero.
type ChartConfig struct {
	Donut      *bool             `toml:"donut"`
	Thickness  *float64          `toml:"thickness"`
	Radius     float64           `toml:"radius"`
	Origin     *float64          `toml:"origin"`
	Colors     chart.ColorPolicy `toml:"colors"`
	Title      string            `toml:"title"`
	InnerTitle string            `toml:"inner_title"`
	Width      string            `toml:"width"`
	Height     string            `toml:"height"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	TTL           time.Duration `toml:"ttl"`
}

// ServerConfig configures "donut serve".
type ServerConfig struct {
	Addr      string `toml:"addr"`
	SliceURL  string `toml:"slice_url"`
	CenterURL string `toml:"center_url"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			Backend: cache.BackendFile,
			TTL:     cache.TTLArtifact,
		},
		Server: ServerConfig{
			Addr:      DefaultAddr,
			SliceURL:  DefaultSliceURL,
			CenterURL: DefaultCenterURL,
		},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the default cache directory (~/.cache/donut).
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Load reads the config file at path over the defaults. An empty path
// loads the default location, where a missing file is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if os.IsNotExist(err) && !explicit {
		return Default(), nil
	}
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidOption, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and URLs.
func (c *Config) Validate() error {
	if c.Chart.Radius < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "chart.radius must be positive, got %v", c.Chart.Radius)
	}
	if c.Chart.Thickness != nil && *c.Chart.Thickness < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "chart.thickness must not be negative, got %v", *c.Chart.Thickness)
	}
	switch c.Cache.Backend {
	case "", cache.BackendFile, cache.BackendRedis, cache.BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidOption, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidOption, "cache.redis_addr is required for the redis backend")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "cache.ttl must not be negative")
	}
	for name, u := range map[string]string{"server.slice_url": c.Server.SliceURL, "server.center_url": c.Server.CenterURL} {
		if err := errors.ValidateRedirect(u); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidURL, err, "%s", name)
		}
	}
	return nil
}

// Params returns the chart parameters described by the [chart] section.
func (c *Config) Params() donut.Params {
	p := donut.DefaultParams()
	cc := c.Chart
	if cc.Donut != nil {
		p.IsDonut = *cc.Donut
	}
	if cc.Thickness != nil {
		t := *cc.Thickness
		p.Thickness = &t
	}
	if cc.Origin != nil {
		p.Origin = *cc.Origin
	}
	p.OuterRadius = cc.Radius
	p.Colors = cc.Colors
	p.Title = cc.Title
	p.InnerTitle = cc.InnerTitle
	p.Width = cc.Width
	p.Height = cc.Height
	return p
}

// CacheOptions returns the backend options described by the [cache]
// section. The file backend defaults to CacheDir.
func (c *Config) CacheOptions() (cache.Options, error) {
	opts := cache.Options{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		Redis: cache.RedisConfig{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
		},
	}
	if (opts.Backend == "" || opts.Backend == cache.BackendFile) && opts.Dir == "" {
		dir, err := CacheDir()
		if err != nil {
			return opts, err
		}
		opts.Dir = dir
	}
	return opts, nil
}
