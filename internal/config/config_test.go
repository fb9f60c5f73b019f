package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected default config to be valid: %v", err)
	}
	if cfg.Compositor.CanvasSize != 512 || cfg.Compositor.ClipDivisor != 2.5 || cfg.Compositor.PhotoScale != 0.8 {
		t.Errorf("Unexpected compositor defaults: %+v", cfg.Compositor)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"canvas", func(c *Config) { c.Compositor.CanvasSize = 0 }, "canvas_size"},
		{"clip", func(c *Config) { c.Compositor.ClipDivisor = 0 }, "clip_divisor"},
		{"scale", func(c *Config) { c.Compositor.PhotoScale = -1 }, "photo_scale"},
		{"formats", func(c *Config) { c.Loader.SupportedFormats = nil }, "supported_formats"},
		{"upload", func(c *Config) { c.Loader.MaxUploadBytes = -1 }, "max_upload_bytes"},
		{"frame", func(c *Config) { c.Catalog.DefaultFrame = "" }, "default_frame"},
		{"format", func(c *Config) { c.Output.Format = "bmp" }, "output.format"},
		{"quality", func(c *Config) { c.Output.Quality = 0 }, "quality"},
		{"addr", func(c *Config) { c.Server.Addr = "" }, "addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Default()
	cfg.Output.Format = "webp"
	cfg.Server.Addr = ":9090"

	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}
	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if loaded.Output.Format != "webp" || loaded.Server.Addr != ":9090" {
		t.Errorf("Unexpected loaded config: %+v", loaded)
	}
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"server":{"addr":":7000"}}`), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("Expected addr override, got %s", cfg.Server.Addr)
	}
	if cfg.Compositor.CanvasSize != 512 {
		t.Errorf("Expected default canvas size, got %d", cfg.Compositor.CanvasSize)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Error("Expected error for malformed file")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvAddr, "0.0.0.0:3000")
	t.Setenv(EnvAssets, "/srv/frames")
	t.Setenv(EnvFormat, "webp")

	cfg := Default()
	cfg.ApplyEnv()
	if cfg.Server.Addr != "0.0.0.0:3000" || cfg.Catalog.AssetsDir != "/srv/frames" || cfg.Output.Format != "webp" {
		t.Errorf("Expected env overrides, got %+v", cfg)
	}
}
