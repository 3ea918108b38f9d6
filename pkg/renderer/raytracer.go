package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/integrator"
	"github.com/df07/go-tile-pathtracer/pkg/scene"
)

// Raytracer renders a scene by splitting it into tiles shared among worker goroutines
type Raytracer struct {
	scene        *scene.Scene
	integrator   integrator.Integrator
	logger       core.Logger
	tileCallback TileCallback
}

// NewRaytracer creates a raytracer. Unless SetIntegrator is called, each render
// uses a path tracing integrator built from the scene's sampling config at Start.
// A nil logger discards log output.
func NewRaytracer(s *scene.Scene, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Raytracer{
		scene:  s,
		logger: logger,
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// SetTileCallback registers a function called as each tile finishes
func (rt *Raytracer) SetTileCallback(callback TileCallback) {
	rt.tileCallback = callback
}

// RenderJob is a render in progress. Frame must not be read until Wait returns.
type RenderJob struct {
	Frame *FrameBuffer

	ctx       context.Context
	pool      *WorkerPool
	startTime time.Time
	logger    core.Logger
}

// Start validates the scene and launches the workers without waiting for them
func (rt *Raytracer) Start(ctx context.Context) (*RenderJob, error) {
	if err := rt.scene.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}

	cfg := rt.scene.SamplingConfig
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	frame := NewFrameBuffer(cfg.Width, cfg.Height)
	tiles := NewTileGrid(cfg.Width, cfg.Height, cfg.TileSize)
	integratorInst := rt.integrator
	if integratorInst == nil {
		integratorInst = integrator.NewPathTracingIntegrator(cfg)
	}
	tileRenderer := NewTileRenderer(rt.scene, integratorInst)
	pool := NewWorkerPool(tiles, tileRenderer, frame, seed, cfg.ThreadCount, rt.tileCallback)

	rt.logger.Printf("Rendering %dx%d at %d samples/pixel: %d tiles on %d workers\n",
		cfg.Width, cfg.Height, cfg.SamplesPerPixel, len(tiles), pool.GetNumWorkers())

	job := &RenderJob{
		Frame:     frame,
		ctx:       ctx,
		pool:      pool,
		startTime: time.Now(),
		logger:    rt.logger,
	}
	pool.Start(ctx)
	return job, nil
}

// Wait blocks until all workers have exited. It returns ctx.Err() when the
// render was cancelled before every tile finished.
func (job *RenderJob) Wait() (RenderStats, error) {
	stats := job.pool.Wait()
	stats.Duration = time.Since(job.startTime)

	if stats.CompletedTiles < stats.TotalTiles {
		job.logger.Printf("Render cancelled after %d/%d tiles\n", stats.CompletedTiles, stats.TotalTiles)
		if err := job.ctx.Err(); err != nil {
			return stats, err
		}
		return stats, context.Canceled
	}

	job.logger.Printf("Render completed in %v (%d samples)\n", stats.Duration, stats.TotalSamples)
	return stats, nil
}

// Render runs a complete render and returns the finished image
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	job, err := rt.Start(ctx)
	if err != nil {
		return nil, RenderStats{}, err
	}

	stats, err := job.Wait()
	if err != nil {
		return nil, stats, err
	}
	return job.Frame.Image(), stats, nil
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}
