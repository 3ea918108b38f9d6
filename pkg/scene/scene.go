package scene

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

var (
	ErrInvalidViewport  = errors.New("viewport width and height must be positive")
	ErrInvalidSamples   = errors.New("samples per pixel must be positive")
	ErrInvalidBounces   = errors.New("max ray bounces must be positive")
	ErrInvalidTileSize  = errors.New("tile size must be positive")
	ErrDegenerateCamera = errors.New("camera origin and look-at point coincide")
)

// Scene contains all the elements needed for rendering.
// It is read-only while a render is in progress.
type Scene struct {
	Camera           *geometry.Camera
	Objects          []geometry.Object
	SamplingConfig   SamplingConfig
	BackgroundTop    core.Vec3 // Sky color straight up
	BackgroundBottom core.Vec3 // Sky color straight down
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   // Image width
	Height          int   // Image height
	SamplesPerPixel int   // Number of rays per pixel
	MaxRayBounces   int   // Maximum number of scatter events per path
	TileSize        int   // Edge length of a square tile in pixels
	ThreadCount     int   // Worker goroutines; <= 0 uses runtime.NumCPU()
	Seed            int64 // Base seed for per-tile samplers; 0 derives one from the clock
}

// DefaultSamplingConfig returns the default render settings. The viewport is left
// empty and must be set with SetViewport.
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 32,
		MaxRayBounces:   32,
		TileSize:        128,
		ThreadCount:     runtime.NumCPU(),
		Seed:            42,
	}
}

// NewScene creates an empty scene with a default camera and sky
func NewScene() *Scene {
	camera := geometry.NewCamera()
	camera.Update()

	return &Scene{
		Camera:           camera,
		Objects:          make([]geometry.Object, 0),
		SamplingConfig:   DefaultSamplingConfig(),
		BackgroundTop:    core.NewVec3(0.5, 0.7, 1.0),
		BackgroundBottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// AddObject appends an object to the scene
func (s *Scene) AddObject(obj geometry.Object) {
	s.Objects = append(s.Objects, obj)
}

// AddSphere is shorthand for AddObject(geometry.NewSphere(...))
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) {
	s.AddObject(geometry.NewSphere(center, radius, mat))
}

// SetViewport sets the image size and matches the camera aspect ratio to it.
// Call Camera.Update afterwards.
func (s *Scene) SetViewport(width, height int) {
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = height
	if height > 0 {
		s.Camera.AspectRatio = float64(width) / float64(height)
	}
}

// Hit finds the nearest object along the ray within [tMin, tMax]
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	return geometry.HitWorld(s.Objects, ray, tMin, tMax)
}

// GetBackgroundColors returns the top and bottom colors of the sky gradient
func (s *Scene) GetBackgroundColors() (top, bottom core.Vec3) {
	return s.BackgroundTop, s.BackgroundBottom
}

// Validate checks that the scene can be rendered
func (s *Scene) Validate() error {
	cfg := s.SamplingConfig
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidViewport, cfg.Width, cfg.Height)
	}
	if cfg.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSamples, cfg.SamplesPerPixel)
	}
	if cfg.MaxRayBounces <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidBounces, cfg.MaxRayBounces)
	}
	if cfg.TileSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTileSize, cfg.TileSize)
	}
	if s.Camera == nil || s.Camera.Origin == s.Camera.LookAt {
		return ErrDegenerateCamera
	}
	return nil
}
