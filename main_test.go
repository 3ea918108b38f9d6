package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		{"default scene", "default", false},
		{"spheregrid scene", "spheregrid", false},
		{"scene file", "scenes/three-spheres.json", false},

		{"unknown scene", "nonexistent", true},
		{"missing scene file", "scenes/nonexistent.json", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := createScene(tt.sceneType)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if scene != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if err := scene.Validate(); err != nil {
				t.Errorf("Scene '%s' is not renderable: %v", tt.sceneType, err)
			}
		})
	}
}

func TestParseOptions(t *testing.T) {
	opts, _, err := parseOptions([]string{"-scene", "spheregrid", "-width", "64", "-samples", "3", "-seed", "9", "-threads", "2"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if opts.sceneName != "spheregrid" || opts.width != 64 || opts.samples != 3 || opts.seed != 9 || opts.threads != 2 {
		t.Errorf("Unexpected options: %+v", opts)
	}

	defaults, _, err := parseOptions(nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if defaults.sceneName != "default" || defaults.width != 0 || defaults.output != "" {
		t.Errorf("Unexpected defaults: %+v", defaults)
	}

	if _, _, err := parseOptions([]string{"-width", "wide"}); err == nil {
		t.Error("Expected error for non-numeric width")
	}
}

func TestApplyOptions(t *testing.T) {
	s, err := createScene("default")
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}
	original := s.SamplingConfig

	applyOptions(s, options{width: 200, samples: 5, tileSize: 16})

	cfg := s.SamplingConfig
	if cfg.Width != 200 || cfg.Height != original.Height {
		t.Errorf("Expected 200x%d, got %dx%d", original.Height, cfg.Width, cfg.Height)
	}
	if cfg.SamplesPerPixel != 5 || cfg.TileSize != 16 {
		t.Errorf("Expected overridden samples and tile size, got %+v", cfg)
	}
	if cfg.MaxRayBounces != original.MaxRayBounces || cfg.Seed != original.Seed {
		t.Errorf("Expected untouched settings to keep scene values, got %+v", cfg)
	}
	if s.Camera.AspectRatio != 200.0/float64(original.Height) {
		t.Errorf("Expected camera aspect to follow the viewport, got %f", s.Camera.AspectRatio)
	}
}

func TestOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		opts     options
		expected string
	}{
		{options{sceneName: "default"}, filepath.Join("output", "default", "render_20240305_143000.png")},
		{options{sceneName: "scenes/three-spheres.json"}, filepath.Join("output", "three-spheres", "render_20240305_143000.png")},
		{options{sceneName: "default", output: "custom.png"}, "custom.png"},
	}

	for _, tt := range tests {
		if got := outputPath(tt.opts, now); got != tt.expected {
			t.Errorf("outputPath(%+v) = %q, want %q", tt.opts, got, tt.expected)
		}
	}
}

func TestRun(t *testing.T) {
	output := filepath.Join(t.TempDir(), "render.png")
	opts := options{
		sceneName: "default",
		width:     32,
		height:    18,
		samples:   1,
		bounces:   2,
		tileSize:  8,
		output:    output,
	}

	if err := run(context.Background(), opts); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if info, err := os.Stat(output); err != nil || info.Size() == 0 {
		t.Errorf("Expected PNG at %s, got %v", output, err)
	}
}
