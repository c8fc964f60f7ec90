// Package config loads and validates tagscloud settings from TOML files.
//
// A config file mirrors the command-line flags:
//
//	[cloud]
//	center = [250, 250]
//	size = [50, 40]
//	count = 75
//
//	[spiral]
//	coefficient = 0.5
//	angle_step = 0.2
//
//	[output]
//	path = "cloud75.bmp"
//	formats = ["bmp"]
//	fill = "yellow"
//	background = "black"
//	scale = 1.0
//
//	[cache]
//	backend = "file"   # file, redis or none
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//	max_field = 4096   # widest field a request may ask for
//	max_scale = 8.0
//
// Flags given on the command line override file values.
package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tagscloud/pkg/cloud"
	"github.com/matzehuels/tagscloud/pkg/errors"
	"github.com/matzehuels/tagscloud/pkg/render"
	"github.com/matzehuels/tagscloud/pkg/render/sink"
)

// appName is used for the XDG config directory.
const appName = "tagscloud"

// Config is the full set of file-configurable settings.
type Config struct {
	Cloud  Cloud  `toml:"cloud"`
	Spiral Spiral `toml:"spiral"`
	Output Output `toml:"output"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Cloud describes what to place.
type Cloud struct {
	Center [2]int `toml:"center"`
	Size   [2]int `toml:"size"`
	Count  int    `toml:"count"`
	// Sizes, when set, replaces Size: rectangles cycle through the list.
	Sizes [][2]int `toml:"sizes,omitempty"`
	// StopOnExhausted keeps the rectangles placed so far when the field
	// runs out of room instead of failing.
	StopOnExhausted bool `toml:"stop_on_exhausted"`
}

// Spiral holds the point generator parameters.
type Spiral struct {
	Coefficient float64 `toml:"coefficient"`
	AngleStep   float64 `toml:"angle_step"`
}

// Output describes where and how to render.
type Output struct {
	Path       string   `toml:"path"`
	Formats    []string `toml:"formats"`
	Fill       string   `toml:"fill"`
	Background string   `toml:"background"`
	Outline    string   `toml:"outline,omitempty"`
	Scale      float64  `toml:"scale"`
	Quality    int      `toml:"quality"`
}

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Cache selects where layouts and artifacts are cached.
type Cache struct {
	Backend  string `toml:"backend"`
	RedisURL string `toml:"redis_url,omitempty"`
}

// Server configures the HTTP API.
type Server struct {
	Addr         string  `toml:"addr"`
	MaxCount     int     `toml:"max_count"`
	MaxField     int     `toml:"max_field"`
	MaxScale     float64 `toml:"max_scale"`
	ReadTimeout  int     `toml:"read_timeout_seconds"`
	WriteTimeout int     `toml:"write_timeout_seconds"`
}

// Default returns the settings of the classic demo cloud: 75 rectangles of
// 50x40 around (250, 250), drawn in yellow to cloud75.bmp.
func Default() Config {
	return Config{
		Cloud: Cloud{
			Center: [2]int{250, 250},
			Size:   [2]int{50, 40},
			Count:  75,
		},
		Spiral: Spiral{
			Coefficient: cloud.DefaultCoefficient,
			AngleStep:   cloud.DefaultAngleStep,
		},
		Output: Output{
			Path:       "cloud75.bmp",
			Formats:    []string{sink.FormatBMP},
			Fill:       "yellow",
			Background: "black",
			Scale:      1,
			Quality:    90,
		},
		Cache: Cache{Backend: CacheFile},
		Server: Server{
			Addr:         ":8080",
			MaxCount:     10000,
			MaxField:     4096,
			MaxScale:     8,
			ReadTimeout:  10,
			WriteTimeout: 60,
		},
	}
}

// Load reads a TOML file on top of [Default]. Keys missing from the file
// keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q in %s", undecoded[0].String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDefault loads the user config file if one exists, and returns
// [Default] otherwise.
func LoadDefault() (Config, string, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), "", nil
	}
	if _, err := os.Stat(path); err != nil {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/tagscloud/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Validate checks every setting that can be checked without running the
// layout.
func (c Config) Validate() error {
	if c.Cloud.Count < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "count must be nonnegative, but was %d", c.Cloud.Count)
	}
	if c.Cloud.Center[0] < 0 || c.Cloud.Center[1] < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "center coordinates must be nonnegative, but were %v", c.Cloud.Center)
	}
	for _, s := range append([][2]int{c.Cloud.Size}, c.Cloud.Sizes...) {
		if s[0] <= 0 || s[1] <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "rectangle size must be positive, but was %v", s)
		}
	}
	if c.Spiral.Coefficient <= 0 || c.Spiral.AngleStep <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "spiral coefficient and angle step must be positive")
	}
	if c.Output.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be positive, but was %v", c.Output.Scale)
	}
	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return errors.New(errors.ErrCodeInvalidConfig, "quality must be between 1 and 100, but was %d", c.Output.Quality)
	}
	for _, f := range c.Output.Formats {
		if err := errors.ValidateFormat(sink.NormalizeFormat(f), sink.ValidFormats); err != nil {
			return err
		}
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache backend %q needs redis_url", CacheRedis)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Server.MaxCount <= 0 || c.Server.MaxField <= 0 || c.Server.MaxScale <= 0 ||
		c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server limits and timeouts must be positive")
	}
	for _, col := range []string{c.Output.Fill, c.Output.Background, c.Output.Outline} {
		if col == "" {
			continue
		}
		if _, err := render.ParseColor(col); err != nil {
			return err
		}
	}
	return nil
}
