package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}

	if cfg.Stitch.ClipDuration != 1.5 {
		t.Errorf("default clip duration = %v, want 1.5", cfg.Stitch.ClipDuration)
	}
	if cfg.Stitch.OutputFPS != 60 {
		t.Errorf("default output fps = %v, want 60", cfg.Stitch.OutputFPS)
	}
	if cfg.Encode.CRF != 20 || cfg.Encode.PixelFormat != "yuv420p" || !cfg.Encode.FastStart {
		t.Errorf("unexpected encode defaults: %+v", cfg.Encode)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := defaultConfig()
	cfg.Stitch.Easing = "easeInOutQuint"
	cfg.Encode.CRF = 18
	cfg.FFmpeg.Threads = 2

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Stitch.Easing != "easeInOutQuint" {
		t.Errorf("easing = %q, want easeInOutQuint", loaded.Stitch.Easing)
	}
	if loaded.Encode.CRF != 18 {
		t.Errorf("crf = %d, want 18", loaded.Encode.CRF)
	}
	if loaded.FFmpeg.Threads != 2 {
		t.Errorf("threads = %d, want 2", loaded.FFmpeg.Threads)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("stitch:\n  output_fps: 24\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Stitch.OutputFPS != 24 {
		t.Errorf("output fps = %v, want 24", cfg.Stitch.OutputFPS)
	}
	if cfg.Stitch.ClipDuration != 1.5 {
		t.Errorf("clip duration = %v, want the 1.5 default preserved", cfg.Stitch.ClipDuration)
	}
}

func TestConfigContext(t *testing.T) {
	cfg := defaultConfig()
	cfg.Stitch.Easing = "whipPan"

	ctx := WithConfig(context.Background(), cfg)
	if got := FromContext(ctx); got.Stitch.Easing != "whipPan" {
		t.Errorf("FromContext easing = %q, want whipPan", got.Stitch.Easing)
	}

	// Missing config falls back to defaults.
	if got := FromContext(context.Background()); got.Stitch.Easing != "dramatic" {
		t.Errorf("default easing = %q, want dramatic", got.Stitch.Easing)
	}
}
