package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-tile-pathtracer/pkg/renderer"
	"github.com/df07/go-tile-pathtracer/pkg/scene"
)

// options holds the command line settings. Zero values keep the scene's own setting.
type options struct {
	sceneName string
	width     int
	height    int
	samples   int
	bounces   int
	tileSize  int
	threads   int
	seed      int64
	output    string
	help      bool
}

func parseOptions(args []string) (options, *flag.FlagSet, error) {
	var opts options
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.StringVar(&opts.sceneName, "scene", "default", "Scene name ("+strings.Join(scene.Names(), ", ")+") or path to a .json scene file")
	fs.IntVar(&opts.width, "width", 0, "Image width (0 = scene default)")
	fs.IntVar(&opts.height, "height", 0, "Image height (0 = scene default)")
	fs.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.bounces, "bounces", 0, "Maximum ray bounces (0 = scene default)")
	fs.IntVar(&opts.tileSize, "tile", 0, "Tile size in pixels (0 = scene default)")
	fs.IntVar(&opts.threads, "threads", 0, "Worker threads (0 = scene default)")
	fs.Int64Var(&opts.seed, "seed", 0, "Random seed (0 = scene default)")
	fs.StringVar(&opts.output, "output", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	err := fs.Parse(args)
	return opts, fs, err
}

// createScene resolves a built-in scene name or a .json scene file
func createScene(name string) (*scene.Scene, error) {
	if name == "" {
		return nil, errors.New("scene name is empty")
	}
	return scene.Create(name)
}

// applyOptions overrides scene settings with the non-zero command line values
func applyOptions(s *scene.Scene, opts options) {
	width, height := s.SamplingConfig.Width, s.SamplingConfig.Height
	if opts.width > 0 {
		width = opts.width
	}
	if opts.height > 0 {
		height = opts.height
	}
	s.SetViewport(width, height)
	s.Camera.Update()

	cfg := &s.SamplingConfig
	if opts.samples > 0 {
		cfg.SamplesPerPixel = opts.samples
	}
	if opts.bounces > 0 {
		cfg.MaxRayBounces = opts.bounces
	}
	if opts.tileSize > 0 {
		cfg.TileSize = opts.tileSize
	}
	if opts.threads > 0 {
		cfg.ThreadCount = opts.threads
	}
	if opts.seed != 0 {
		cfg.Seed = opts.seed
	}
}

// outputPath returns opts.output or a timestamped file under output/<scene>/
func outputPath(opts options, now time.Time) string {
	if opts.output != "" {
		return opts.output
	}
	sceneDir := strings.TrimSuffix(filepath.Base(opts.sceneName), ".json")
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", sceneDir, fmt.Sprintf("render_%s.png", timestamp))
}

func run(ctx context.Context, opts options) error {
	fmt.Println("Starting Tile Path Tracer...")

	selectedScene, err := createScene(opts.sceneName)
	if err != nil {
		return err
	}
	applyOptions(selectedScene, opts)
	fmt.Printf("Using scene %s (%d objects)\n", opts.sceneName, len(selectedScene.Objects))

	raytracer := renderer.NewRaytracer(selectedScene, renderer.NewDefaultLogger())
	raytracer.SetTileCallback(func(result renderer.TileResult) {
		fmt.Printf("\rRendering tile: %d/%d", result.Completed, result.Total)
	})

	startTime := time.Now()
	img, stats, err := raytracer.Render(ctx)
	fmt.Println()
	if err != nil {
		return err
	}
	renderTime := time.Since(startTime)

	fmt.Printf("Render completed in %v\n", renderTime)
	fmt.Printf("Samples per pixel: %.1f, tiles per worker: %v\n", stats.AverageSamples(), stats.TilesPerWorker)

	filename := outputPath(opts, time.Now())
	if err := renderer.SavePNG(filename, img); err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", filename)
	return nil
}

func main() {
	opts, fs, err := parseOptions(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if opts.help {
		fmt.Println("Tile Path Tracer")
		fmt.Println("Usage: pathtracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		fs.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, name := range scene.Names() {
			fmt.Printf("  %s\n", name)
		}
		fmt.Println("  <file>.json - scene description file (see scenes/)")
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
		return
	}

	if err := run(context.Background(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
