// Package config loads kozu configuration files.
//
// Files may be TOML (.toml) or YAML (.yaml, .yml); both share the same
// keys. Values missing from a file keep their defaults from [Default].
//
//	[canvas]
//	width = 500
//	height = 500
//
//	[render]
//	formats = ["png"]
//	scale = 1.0
//
//	[palette]
//	triangle = ["#ff6666", "#66ff66", "#6666ff"]
//	sun = "#ff9900"
//
//	[cache]
//	backend = "file"      # file, redis or none
//	redis_url = "redis://localhost:6379/0"
//	ttl = "168h"
//
//	[server]
//	addr = ":8080"
//	mongo_uri = "mongodb://localhost:27017"
//	mongo_database = "kozu"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/kozu/pkg/cache"
	"github.com/matzehuels/kozu/pkg/composition"
	"github.com/matzehuels/kozu/pkg/errors"
	"github.com/matzehuels/kozu/pkg/geom"
	"github.com/matzehuels/kozu/pkg/pipeline"
	"github.com/matzehuels/kozu/pkg/shape"
)

// EnvConfig names the environment variable holding a config file path.
const EnvConfig = "KOZU_CONFIG"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the complete kozu configuration.
type Config struct {
	Canvas  Canvas  `toml:"canvas" yaml:"canvas"`
	Render  Render  `toml:"render" yaml:"render"`
	Palette Palette `toml:"palette" yaml:"palette"`
	Cache   Cache   `toml:"cache" yaml:"cache"`
	Server  Server  `toml:"server" yaml:"server"`
}

// Canvas configures the drawing surface.
type Canvas struct {
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`
	Margin float64 `toml:"margin" yaml:"margin"`
}

// Render configures artifact output.
type Render struct {
	Formats []string `toml:"formats" yaml:"formats"`
	Scale   float64  `toml:"scale" yaml:"scale"`
	Output  string   `toml:"output" yaml:"output"`
}

// Palette holds hex colors for the built-in templates.
type Palette struct {
	Triangle []string `toml:"triangle" yaml:"triangle"`
	Sun      string   `toml:"sun" yaml:"sun"`
}

// Cache configures the artifact cache.
type Cache struct {
	Backend  string        `toml:"backend" yaml:"backend"`
	Dir      string        `toml:"dir" yaml:"dir"`
	RedisURL string        `toml:"redis_url" yaml:"redis_url"`
	TTL      time.Duration `toml:"ttl" yaml:"ttl"`
}

// Server configures the HTTP server and its gallery store.
type Server struct {
	Addr          string        `toml:"addr" yaml:"addr"`
	MongoURI      string        `toml:"mongo_uri" yaml:"mongo_uri"`
	MongoDatabase string        `toml:"mongo_database" yaml:"mongo_database"`
	ReadTimeout   time.Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout  time.Duration `toml:"write_timeout" yaml:"write_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	p := composition.DefaultPalette
	return Config{
		Canvas: Canvas{
			Width:  pipeline.DefaultWidth,
			Height: pipeline.DefaultHeight,
			Margin: geom.DefaultMargin,
		},
		Render: Render{
			Formats: []string{pipeline.FormatPNG},
			Scale:   1,
			Output:  pipeline.DefaultOutput,
		},
		Palette: Palette{
			Triangle: []string{
				shape.FormatColor(p.Triangle[0]),
				shape.FormatColor(p.Triangle[1]),
				shape.FormatColor(p.Triangle[2]),
			},
			Sun: shape.FormatColor(p.Sun),
		},
		Cache: Cache{
			Backend: BackendFile,
			TTL:     cache.TTLArtifact,
		},
		Server: Server{
			Addr:          ":8080",
			MongoDatabase: "kozu",
			ReadTimeout:   10 * time.Second,
			WriteTimeout:  30 * time.Second,
		},
	}
}

// Load reads the file at path on top of the defaults and validates it.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unsupported config extension %q (use .toml, .yaml or .yml)", ext)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDefault loads the explicitly given file, or else the file named by
// $KOZU_CONFIG, or else the user config file. A missing user config file is
// not an error: defaults are returned with an empty path.
func LoadDefault(explicit string) (Config, string, error) {
	path := explicit
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}

	path, err := UserConfigPath()
	if err != nil {
		return Default(), "", nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// UserConfigPath returns $XDG_CONFIG_HOME/kozu/config.toml, falling back to
// ~/.config/kozu/config.toml.
func UserConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "kozu", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "kozu", "config.toml"), nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if err := errors.ValidateCanvasSize(c.Canvas.Width, c.Canvas.Height); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "canvas")
	}
	if c.Canvas.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas margin must not be negative")
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render")
	}
	if !(c.Render.Scale > 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "render scale must be positive")
	}
	if _, err := c.PaletteColors(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache backend redis requires redis_url")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid cache backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	return nil
}

// PaletteColors parses the configured hex colors.
func (c Config) PaletteColors() (composition.Palette, error) {
	var p composition.Palette
	if len(c.Palette.Triangle) != len(p.Triangle) {
		return p, errors.New(errors.ErrCodeInvalidConfig, "palette.triangle needs exactly %d colors, got %d", len(p.Triangle), len(c.Palette.Triangle))
	}
	for i, hex := range c.Palette.Triangle {
		col, err := shape.ParseColor(hex)
		if err != nil {
			return p, errors.Wrap(errors.ErrCodeInvalidConfig, err, "palette.triangle[%d]", i)
		}
		p.Triangle[i] = col
	}
	col, err := shape.ParseColor(c.Palette.Sun)
	if err != nil {
		return p, errors.Wrap(errors.ErrCodeInvalidConfig, err, "palette.sun")
	}
	p.Sun = col
	return p, nil
}

// StyleKey is a stable string identifying the palette and margin. Two
// configs with the same style key produce identical compositions for the
// same seed and canvas size. A zero margin is keyed as [geom.DefaultMargin]
// since the sampler treats both the same.
func (c Config) StyleKey() string {
	parts := append(append([]string{}, c.Palette.Triangle...), c.Palette.Sun)
	margin := c.Canvas.Margin
	if margin == 0 {
		margin = geom.DefaultMargin
	}
	return fmt.Sprintf("%s|m=%g", strings.ToLower(strings.Join(parts, ",")), margin)
}

// Selector builds the template registry described by c.
func (c Config) Selector() (*composition.Selector, error) {
	p, err := c.PaletteColors()
	if err != nil {
		return nil, err
	}
	tri := composition.NewTriangle(p)
	tri.Sampler.Margin = c.Canvas.Margin
	return composition.NewSelector(tri, composition.NewSun(p)), nil
}
