package config

import (
	"os"
	"path/filepath"
	"testing"

	mverrors "github.com/matzehuels/mergeviz/pkg/errors"
	"github.com/matzehuels/mergeviz/pkg/viz"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Glyphs() != viz.DefaultGlyphs {
		t.Errorf("Glyphs() = %+v, want %+v", cfg.Glyphs(), viz.DefaultGlyphs)
	}
	if cfg.Timing.Wait != 1 {
		t.Errorf("Timing.Wait = %v, want 1", cfg.Timing.Wait)
	}
	if !cfg.Render.Color {
		t.Error("color should be on by default")
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "mergeviz.toml", `
[render]
full = "#"
marker = "*"
color = false

[timing]
wait = 0.5

[memory]
allocator = "mmap"
`)

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.Full != "#" || cfg.Render.Marker != "*" || cfg.Render.Half != "," {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.Render.Color {
		t.Error("color = true, want false")
	}
	if cfg.Timing.Wait != 0.5 {
		t.Errorf("wait = %v, want 0.5", cfg.Timing.Wait)
	}
	if cfg.Memory.Allocator != "mmap" {
		t.Errorf("allocator = %q, want mmap", cfg.Memory.Allocator)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "mergeviz.toml", "[timing]\nwait = 0.5\n")
	env := map[string]string{
		EnvWait:        "2",
		EnvGlyphMarker: "@",
		EnvColor:       "false",
	}

	cfg, err := Load(path, env)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Timing.Wait != 2 {
		t.Errorf("wait = %v, want 2", cfg.Timing.Wait)
	}
	if cfg.Render.Marker != "@" {
		t.Errorf("marker = %q, want @", cfg.Render.Marker)
	}
	if cfg.Render.Color {
		t.Error("color = true, want false")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
		code mverrors.Code
	}{
		{"unknown key", "[render]\nwidth = 3\n", nil, mverrors.ErrCodeInvalidConfig},
		{"bad toml", "[render\n", nil, mverrors.ErrCodeInvalidConfig},
		{"wide glyph", "[render]\nfull = \"||\"\n", nil, mverrors.ErrCodeInvalidConfig},
		{"negative wait", "[timing]\nwait = -1.0\n", nil, mverrors.ErrCodeInvalidConfig},
		{"bad allocator", "[memory]\nallocator = \"slab\"\n", nil, mverrors.ErrCodeInvalidAllocator},
		{"env wait not a number", "", map[string]string{EnvWait: "soon"}, mverrors.ErrCodeInvalidConfig},
		{"env color not a bool", "", map[string]string{EnvColor: "maybe"}, mverrors.ErrCodeInvalidConfig},
		{"env empty glyph", "", map[string]string{EnvGlyphHalf: ""}, mverrors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ""
			if tt.file != "" {
				path = writeFile(t, "mergeviz.toml", tt.file)
			}
			_, err := Load(path, tt.env)
			if !mverrors.Is(err, tt.code) {
				t.Errorf("Load error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"), nil)
	if !mverrors.Is(err, mverrors.ErrCodeInvalidConfig) {
		t.Errorf("Load error = %v, want INVALID_CONFIG", err)
	}
}

func TestEnv(t *testing.T) {
	dotenv := writeFile(t, ".env", "MERGEVIZ_ALLOCATOR=mmap\nMERGEVIZ_WAIT=4\nUNRELATED=1\n")
	t.Setenv(EnvWait, "3")

	env, err := Env(dotenv)
	if err != nil {
		t.Fatalf("Env: %v", err)
	}
	if env[EnvAllocator] != "mmap" {
		t.Errorf("%s = %q, want mmap", EnvAllocator, env[EnvAllocator])
	}
	if env[EnvWait] != "3" {
		t.Errorf("%s = %q, want the process value 3", EnvWait, env[EnvWait])
	}
	if _, ok := env["UNRELATED"]; ok {
		t.Error("keys without the prefix should be dropped")
	}
}

func TestEnvMissingDotEnv(t *testing.T) {
	if _, err := Env(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("Env with missing file = %v, want nil", err)
	}
}

func TestGlyphs(t *testing.T) {
	cfg := Default()
	cfg.Render.Full = "█"
	cfg.Render.Half = "▄"
	g := cfg.Glyphs()
	if g.Full != '█' || g.Half != '▄' || g.Marker != '^' {
		t.Errorf("Glyphs() = %+v", g)
	}
}
