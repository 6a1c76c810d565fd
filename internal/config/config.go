// Package config loads the settings of a mergeviz run.
//
// Settings are layered, later layers winning:
//
//  1. Built-in defaults ([Default]).
//  2. A TOML file, when one is given.
//  3. A .env file in the working directory, then the process environment.
//     Only keys starting with MERGEVIZ_ are read.
//
// Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	mverrors "github.com/matzehuels/mergeviz/pkg/errors"
	"github.com/matzehuels/mergeviz/pkg/mem"
	"github.com/matzehuels/mergeviz/pkg/viz"
)

// EnvPrefix is the prefix of every environment key this package reads.
const EnvPrefix = "MERGEVIZ_"

// Environment keys.
const (
	EnvConfig      = EnvPrefix + "CONFIG"
	EnvWait        = EnvPrefix + "WAIT"
	EnvAllocator   = EnvPrefix + "ALLOCATOR"
	EnvColor       = EnvPrefix + "COLOR"
	EnvGlyphFull   = EnvPrefix + "GLYPH_FULL"
	EnvGlyphHalf   = EnvPrefix + "GLYPH_HALF"
	EnvGlyphBlank  = EnvPrefix + "GLYPH_BLANK"
	EnvGlyphMarker = EnvPrefix + "GLYPH_MARKER"
)

// DotEnvFile is the .env file read from the working directory.
const DotEnvFile = ".env"

// Config holds every setting that is not a positional argument.
type Config struct {
	Render Render `toml:"render"`
	Timing Timing `toml:"timing"`
	Memory Memory `toml:"memory"`
}

// Render controls how frames are drawn. Glyphs are single characters.
type Render struct {
	Full   string `toml:"full"`
	Half   string `toml:"half"`
	Blank  string `toml:"blank"`
	Marker string `toml:"marker"`
	Color  bool   `toml:"color"`
}

// Timing controls pauses outside the per-frame delay.
type Timing struct {
	// Wait is the pause after the "Waiting..." frame, in seconds.
	Wait float64 `toml:"wait"`
}

// Memory selects the allocator behind the value array.
type Memory struct {
	Allocator string `toml:"allocator"`
}

// Default returns the built-in settings.
func Default() Config {
	g := viz.DefaultGlyphs
	return Config{
		Render: Render{
			Full:   string(g.Full),
			Half:   string(g.Half),
			Blank:  string(g.Blank),
			Marker: string(g.Marker),
			Color:  true,
		},
		Timing: Timing{Wait: viz.DefaultWait.Seconds()},
		Memory: Memory{Allocator: mem.AllocatorHeap},
	}
}

// Load builds a Config from the defaults, the TOML file at path (skipped
// when path is empty) and env. The result is validated.
func Load(path string, env map[string]string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return cfg, mverrors.Wrap(mverrors.ErrCodeInvalidConfig, err, "read config %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, mverrors.New(mverrors.ErrCodeInvalidConfig, "config %s: unknown key %q", path, undecoded[0].String())
		}
	}
	if err := cfg.applyEnv(env); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Env returns the MERGEVIZ_ keys from dotenv (if it exists) overlaid with
// the process environment.
func Env(dotenv string) (map[string]string, error) {
	env := make(map[string]string)
	if dotenv != "" {
		file, err := godotenv.Read(dotenv)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, mverrors.Wrap(mverrors.ErrCodeInvalidConfig, err, "read %s", dotenv)
		}
		for k, v := range file {
			if strings.HasPrefix(k, EnvPrefix) {
				env[k] = v
			}
		}
	}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, EnvPrefix) {
			env[k] = v
		}
	}
	return env, nil
}

func (c *Config) applyEnv(env map[string]string) error {
	strs := map[string]*string{
		EnvAllocator:   &c.Memory.Allocator,
		EnvGlyphFull:   &c.Render.Full,
		EnvGlyphHalf:   &c.Render.Half,
		EnvGlyphBlank:  &c.Render.Blank,
		EnvGlyphMarker: &c.Render.Marker,
	}
	for key, dst := range strs {
		if v, ok := env[key]; ok {
			*dst = v
		}
	}

	if v, ok := env[EnvWait]; ok {
		wait, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return mverrors.Wrap(mverrors.ErrCodeInvalidConfig, err, "%s: not a number: %q", EnvWait, v)
		}
		c.Timing.Wait = wait
	}
	if v, ok := env[EnvColor]; ok {
		color, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return mverrors.Wrap(mverrors.ErrCodeInvalidConfig, err, "%s: not a boolean: %q", EnvColor, v)
		}
		c.Render.Color = color
	}
	return nil
}

// Validate checks glyphs, timing and allocator name.
func (c Config) Validate() error {
	glyphs := []struct{ name, value string }{
		{"render.full", c.Render.Full},
		{"render.half", c.Render.Half},
		{"render.blank", c.Render.Blank},
		{"render.marker", c.Render.Marker},
	}
	for _, g := range glyphs {
		if utf8.RuneCountInString(g.value) != 1 {
			return mverrors.New(mverrors.ErrCodeInvalidConfig, "%s must be a single character (got %q)", g.name, g.value)
		}
	}
	if !(c.Timing.Wait >= 0) || !(c.Timing.Wait < mverrors.MaxDelay) {
		return mverrors.New(mverrors.ErrCodeInvalidConfig, "timing.wait must be within [0, %.0f) (got %f)", mverrors.MaxDelay, c.Timing.Wait)
	}
	switch strings.ToLower(c.Memory.Allocator) {
	case mem.AllocatorHeap, mem.AllocatorMmap:
	default:
		return mverrors.New(mverrors.ErrCodeInvalidAllocator, "unknown allocator %q (want %s or %s)", c.Memory.Allocator, mem.AllocatorHeap, mem.AllocatorMmap)
	}
	return nil
}

// Glyphs returns the configured glyph set. It assumes c is valid.
func (c Config) Glyphs() viz.Glyphs {
	first := func(s string) rune {
		r, _ := utf8.DecodeRuneInString(s)
		return r
	}
	return viz.Glyphs{
		Full:   first(c.Render.Full),
		Half:   first(c.Render.Half),
		Blank:  first(c.Render.Blank),
		Marker: first(c.Render.Marker),
	}
}
