package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/kozu/pkg/composition"
	"github.com/matzehuels/kozu/pkg/errors"
	"github.com/matzehuels/kozu/pkg/geom"
	"github.com/matzehuels/kozu/pkg/shape"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	p, err := cfg.PaletteColors()
	if err != nil {
		t.Fatal(err)
	}
	if p != composition.DefaultPalette {
		t.Errorf("default palette = %+v, want %+v", p, composition.DefaultPalette)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "kozu.toml", `
[canvas]
width = 800
height = 600

[render]
formats = ["png", "svg"]
scale = 2.0

[palette]
triangle = ["#000000", "#ffffff", "#123456"]
sun = "#abcdef"

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/1"
ttl = "1h"

[server]
addr = ":9090"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Canvas.Width != 800 || cfg.Canvas.Height != 600 {
		t.Errorf("canvas = %+v", cfg.Canvas)
	}
	if cfg.Canvas.Margin != Default().Canvas.Margin {
		t.Errorf("margin = %v, want default", cfg.Canvas.Margin)
	}
	if len(cfg.Render.Formats) != 2 || cfg.Render.Scale != 2 {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.TTL != time.Hour {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.MongoDatabase != "kozu" {
		t.Errorf("server = %+v", cfg.Server)
	}

	p, err := cfg.PaletteColors()
	if err != nil {
		t.Fatal(err)
	}
	if p.Sun != shape.MustParseColor("#abcdef") || p.Triangle[2] != shape.MustParseColor("#123456") {
		t.Errorf("palette = %+v", p)
	}
}

func TestLoadYAML(t *testing.T) {
	for _, name := range []string{"kozu.yaml", "kozu.yml"} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, name, `
canvas:
  width: 640
  margin: 20
render:
  formats: [json]
cache:
  backend: none
  ttl: 30m
server:
  mongo_uri: mongodb://localhost:27017
`)
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.Canvas.Width != 640 || cfg.Canvas.Height != Default().Canvas.Height || cfg.Canvas.Margin != 20 {
				t.Errorf("canvas = %+v", cfg.Canvas)
			}
			if len(cfg.Render.Formats) != 1 || cfg.Render.Formats[0] != "json" {
				t.Errorf("formats = %v", cfg.Render.Formats)
			}
			if cfg.Cache.Backend != BackendNone || cfg.Cache.TTL != 30*time.Minute {
				t.Errorf("cache = %+v", cfg.Cache)
			}
			if cfg.Server.MongoURI != "mongodb://localhost:27017" {
				t.Errorf("mongo_uri = %q", cfg.Server.MongoURI)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown extension", "kozu.ini", "width=1"},
		{"bad toml", "kozu.toml", "[canvas\nwidth = 1"},
		{"bad yaml", "kozu.yaml", "canvas: [1, 2"},
		{"bad format", "kozu.toml", "[render]\nformats = [\"gif\"]"},
		{"bad backend", "kozu.toml", "[cache]\nbackend = \"memcached\""},
		{"redis without url", "kozu.toml", "[cache]\nbackend = \"redis\""},
		{"bad color", "kozu.toml", "[palette]\nsun = \"orange\""},
		{"two colors", "kozu.toml", "[palette]\ntriangle = [\"#ffffff\", \"#000000\"]"},
		{"zero scale", "kozu.toml", "[render]\nscale = 0.0"},
		{"negative margin", "kozu.yaml", "canvas:\n  margin: -1"},
		{"huge canvas", "kozu.yaml", "canvas:\n  width: 100000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load error = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestLoadDefault(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, path, err := LoadDefault("")
	if err != nil {
		t.Fatalf("missing user config should not fail: %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty", path)
	}
	if cfg.Canvas.Width != Default().Canvas.Width {
		t.Errorf("want defaults, got %+v", cfg.Canvas)
	}

	userPath, err := UserConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(userPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(userPath, []byte("[canvas]\nwidth = 300\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, path, err = LoadDefault("")
	if err != nil {
		t.Fatal(err)
	}
	if path != userPath || cfg.Canvas.Width != 300 {
		t.Errorf("user config not loaded: path=%q width=%v", path, cfg.Canvas.Width)
	}

	envPath := writeFile(t, "env.yaml", "canvas:\n  width: 200\n")
	t.Setenv(EnvConfig, envPath)
	cfg, path, err = LoadDefault("")
	if err != nil {
		t.Fatal(err)
	}
	if path != envPath || cfg.Canvas.Width != 200 {
		t.Errorf("$%s not honored: path=%q width=%v", EnvConfig, path, cfg.Canvas.Width)
	}

	explicit := writeFile(t, "explicit.toml", "[canvas]\nwidth = 150\n")
	cfg, path, err = LoadDefault(explicit)
	if err != nil {
		t.Fatal(err)
	}
	if path != explicit || cfg.Canvas.Width != 150 {
		t.Errorf("explicit path not honored: path=%q width=%v", path, cfg.Canvas.Width)
	}

	if _, _, err := LoadDefault(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("missing explicit file should fail")
	}
}

func TestStyleKey(t *testing.T) {
	a := Default()
	b := Default()
	if a.StyleKey() != b.StyleKey() {
		t.Error("equal configs should share a style key")
	}
	b.Palette.Sun = "#000000"
	if a.StyleKey() == b.StyleKey() {
		t.Error("palette change should change the style key")
	}
	c := Default()
	c.Canvas.Margin = 10
	if a.StyleKey() == c.StyleKey() {
		t.Error("margin change should change the style key")
	}

	zero, explicit := Default(), Default()
	zero.Canvas.Margin = 0
	explicit.Canvas.Margin = geom.DefaultMargin
	if zero.StyleKey() != explicit.StyleKey() {
		t.Errorf("zero margin key %q should equal default margin key %q", zero.StyleKey(), explicit.StyleKey())
	}
}

func TestExampleConfigs(t *testing.T) {
	dir := filepath.Join("..", "..", "examples", "config")

	tc, err := Load(filepath.Join(dir, "kozu.toml"))
	if err != nil {
		t.Fatalf("kozu.toml: %v", err)
	}
	if tc.Canvas.Width != 800 || tc.Render.Scale != 2 || tc.Cache.TTL != 72*time.Hour {
		t.Errorf("kozu.toml decoded as %+v", tc)
	}
	if _, err := tc.Selector(); err != nil {
		t.Errorf("kozu.toml palette: %v", err)
	}

	yml, err := Load(filepath.Join(dir, "kozu.yaml"))
	if err != nil {
		t.Fatalf("kozu.yaml: %v", err)
	}
	if yml.Cache.Backend != BackendRedis || yml.Server.Addr != ":9090" {
		t.Errorf("kozu.yaml decoded as %+v", yml)
	}
	// Unset keys keep their defaults.
	if yml.Palette.Sun != Default().Palette.Sun {
		t.Errorf("palette.sun = %q, want default", yml.Palette.Sun)
	}
}
