package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MikeySharma/frame-generator/pkg/types"
)

// Config holds the application configuration
type Config struct {
	Compositor CompositorConfig `json:"compositor"`
	Loader     LoaderConfig     `json:"loader"`
	Catalog    CatalogConfig    `json:"catalog"`
	Output     OutputConfig     `json:"output"`
	Server     ServerConfig     `json:"server"`
}

// CompositorConfig holds the canvas geometry
type CompositorConfig struct {
	CanvasSize  int     `json:"canvas_size"`
	ClipDivisor float64 `json:"clip_divisor"`
	PhotoScale  float64 `json:"photo_scale"`
}

// LoaderConfig holds photo decoding limits
type LoaderConfig struct {
	SupportedFormats []string `json:"supported_formats"`
	MaxUploadBytes   int64    `json:"max_upload_bytes"`
	MinImageSize     int      `json:"min_image_size"`
}

// CatalogConfig selects where frame assets come from
type CatalogConfig struct {
	// AssetsDir overrides the embedded frames when set. It must contain frames/<id>.png.
	AssetsDir    string `json:"assets_dir"`
	DefaultFrame string `json:"default_frame"`
}

// OutputConfig holds configuration for output generation
type OutputConfig struct {
	Format    string `json:"format"`
	OutputDir string `json:"output_dir"`
	Quality   int    `json:"quality"`
	Lossless  bool   `json:"lossless"`
}

// ServerConfig holds configuration for the preview server
type ServerConfig struct {
	Addr string `json:"addr"`
}

// Environment variables that override the file configuration
const (
	EnvAddr   = "FRAMEGEN_ADDR"
	EnvAssets = "FRAMEGEN_ASSETS"
	EnvFormat = "FRAMEGEN_FORMAT"
)

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Compositor: CompositorConfig{
			CanvasSize:  512,
			ClipDivisor: 2.5,
			PhotoScale:  0.8,
		},
		Loader: LoaderConfig{
			SupportedFormats: []string{"jpeg", "png", "gif", "webp"},
			MaxUploadBytes:   5 << 20,
			MinImageSize:     0,
		},
		Catalog: CatalogConfig{
			AssetsDir:    "",
			DefaultFrame: types.DefaultFrameID,
		},
		Output: OutputConfig{
			Format:    string(types.PNG),
			OutputDir: "./output",
			Quality:   90,
			Lossless:  true,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
	}
}

// LoadFromFile loads configuration from a JSON file. Missing fields keep their defaults.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides fields from the FRAMEGEN_* environment variables
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvAddr)); v != "" {
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAssets)); v != "" {
		c.Catalog.AssetsDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvFormat)); v != "" {
		c.Output.Format = v
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Compositor.CanvasSize < 1 {
		return fmt.Errorf("compositor.canvas_size must be positive")
	}

	if c.Compositor.ClipDivisor <= 0 {
		return fmt.Errorf("compositor.clip_divisor must be positive")
	}

	if c.Compositor.PhotoScale <= 0 {
		return fmt.Errorf("compositor.photo_scale must be positive")
	}

	if c.Loader.MaxUploadBytes < 0 {
		return fmt.Errorf("loader.max_upload_bytes cannot be negative")
	}

	if len(c.Loader.SupportedFormats) == 0 {
		return fmt.Errorf("loader.supported_formats cannot be empty")
	}

	if c.Catalog.DefaultFrame == "" {
		return fmt.Errorf("catalog.default_frame cannot be empty")
	}

	if _, err := types.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}

	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return fmt.Errorf("output.quality must be between 1 and 100")
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr cannot be empty")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "frame-generator", "config.json")
}
