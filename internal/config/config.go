package config

import (
	"context"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type contextKey string

const configKey contextKey = "config"

// Config holds all application configuration
type Config struct {
	// ScratchDir is the root under which per-job frame directories are created
	ScratchDir string `yaml:"scratch_dir"`

	FFmpeg FFmpegConfig `yaml:"ffmpeg"`
	Encode EncodeConfig `yaml:"encode"`
	Stitch StitchConfig `yaml:"stitch"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ProbePath  string `yaml:"probe_path"`
	Threads    int    `yaml:"threads"`
}

// EncodeConfig is the fixed-quality output profile: CRF target with a capped
// bitrate ceiling and a fast-start container.
type EncodeConfig struct {
	CRF         int    `yaml:"crf"`
	MaxRateKbps int    `yaml:"max_rate_kbps"`
	Preset      string `yaml:"preset"`
	PixelFormat string `yaml:"pixel_format"`
	FastStart   bool   `yaml:"fast_start"`
}

type StitchConfig struct {
	ClipDuration float64 `yaml:"clip_duration"`
	OutputFPS    float64 `yaml:"output_fps"`
	Easing       string  `yaml:"easing"`
	PadColor     string  `yaml:"pad_color"`
}

// Load reads configuration from file or returns defaults
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = findConfigFile()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func defaultConfig() *Config {
	return &Config{
		ScratchDir: filepath.Join(os.TempDir(), "speedramp"),
		FFmpeg: FFmpegConfig{
			BinaryPath: "",
			ProbePath:  "",
			Threads:    0,
		},
		Encode: EncodeConfig{
			CRF:         20,
			MaxRateKbps: 8000,
			Preset:      "medium",
			PixelFormat: "yuv420p",
			FastStart:   true,
		},
		Stitch: StitchConfig{
			ClipDuration: 1.5,
			OutputFPS:    60,
			Easing:       "dramatic",
			PadColor:     "black",
		},
	}
}

func findConfigFile() string {
	candidates := []string{
		"./speedramp.yaml",
		"./config.yaml",
		filepath.Join(os.Getenv("HOME"), ".speedramp", "config.yaml"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// WithConfig stores config in context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return defaultConfig()
}
