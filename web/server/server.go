package server

import (
	"bytes"
	"embed"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-tile-pathtracer/pkg/renderer"
	"github.com/df07/go-tile-pathtracer/pkg/scene"
)

//go:embed static
var staticFiles embed.FS

// Server handles web requests for the path tracer
type Server struct {
	port      int
	scenesDir string // Directory scanned for .json scene files
}

// NewServer creates a new web server
func NewServer(port int, scenesDir string) *Server {
	return &Server{port: port, scenesDir: scenesDir}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string `json:"scene"`    // Built-in scene name or scene file ID
	Width    int    `json:"width"`    // Image width
	Height   int    `json:"height"`   // Image height
	Samples  int    `json:"samples"`  // Samples per pixel
	Bounces  int    `json:"bounces"`  // Maximum ray bounces
	TileSize int    `json:"tileSize"` // Tile edge length
	Threads  int    `json:"threads"`  // Worker goroutines, 0 = CPU count
	Seed     int64  `json:"seed"`     // 0 = seed from the clock
}

// Stats represents render statistics
type Stats struct {
	TotalTiles       int     `json:"totalTiles"`
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int64   `json:"totalSamples"`
	AverageSamples   float64 `json:"averageSamples"`
	AverageLuminance float64 `json:"averageLuminance"`
	NumWorkers       int     `json:"numWorkers"`
	TilesPerWorker   []int   `json:"tilesPerWorker"`
	ElapsedMs        int64   `json:"elapsedMs"`
}

func newStats(rs renderer.RenderStats) Stats {
	return Stats{
		TotalTiles:       rs.TotalTiles,
		TotalPixels:      rs.TotalPixels,
		TotalSamples:     int64(rs.TotalSamples),
		AverageSamples:   rs.AverageSamples(),
		AverageLuminance: rs.AverageLuminance(),
		NumWorkers:       rs.NumWorkers,
		TilesPerWorker:   rs.TilesPerWorker,
		ElapsedMs:        rs.Duration.Milliseconds(),
	}
}

// Handler returns the routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve the embedded viewer page
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatalf("embedded static files: %v", err)
	}
	mux.Handle("/", http.FileServer(http.FS(static)))

	// API endpoints
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render/stream", s.handleRenderStream)
	mux.HandleFunc("/api/inspect", s.handleInspect)

	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the scene files on disk
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"scenes": scenes})
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := s.loadScene(sceneName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	config := sceneObj.SamplingConfig
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"height":          config.Height,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxRayBounces":   config.MaxRayBounces,
			"tileSize":        config.TileSize,
			"seed":            config.Seed,
		},
		"objects": len(sceneObj.Objects),
		"limits": map[string]interface{}{
			"width":    map[string]int{"min": 1, "max": maxDimension},
			"height":   map[string]int{"min": 1, "max": maxDimension},
			"samples":  map[string]int{"min": 1, "max": maxSamples},
			"bounces":  map[string]int{"min": 1, "max": maxBounces},
			"tileSize": map[string]int{"min": 1, "max": maxTileSize},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// handleRender renders a scene and responds with the finished PNG.
// The render stops if the client disconnects.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	raytracer := renderer.NewRaytracer(sceneObj, NewWebLogger(newRenderID(), nil))
	img, stats, err := raytracer.Render(r.Context())
	if err != nil {
		if r.Context().Err() != nil {
			log.Printf("Render of %s abandoned: %v", req.Scene, err)
			return
		}
		http.Error(w, fmt.Sprintf("Render error: %v", err), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		http.Error(w, fmt.Sprintf("Failed to encode image: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

const (
	maxDimension = 4000
	maxSamples   = 10000
	maxBounces   = 1000
	maxTileSize  = 1024
)

// parseRenderRequest parses request parameters. Omitted values keep the scene's settings.
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: "default"}
	if name := query.Get("scene"); name != "" {
		req.Scene = name
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 1, maxDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, 1, maxDimension); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Bounces, err = parseIntParam(query, "bounces", 0, 1, maxBounces); err != nil {
		return nil, err
	}
	if req.TileSize, err = parseIntParam(query, "tile", 0, 1, maxTileSize); err != nil {
		return nil, err
	}
	if req.Threads, err = parseIntParam(query, "threads", 0, 0, 1024); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(query, "seed", 0, 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// loadScene resolves a built-in scene or one of the scene files in scenesDir.
// Arbitrary paths are refused.
func (s *Server) loadScene(name string) (*scene.Scene, error) {
	if !strings.HasSuffix(name, ".json") {
		return scene.Create(name)
	}

	files, err := scene.ListSceneFiles(s.scenesDir)
	if err != nil {
		return nil, err
	}
	for _, info := range files {
		if info.ID == name {
			return scene.Create(info.FilePath)
		}
	}
	return nil, fmt.Errorf("unknown scene file %q", name)
}

// createScene loads the requested scene and applies the request overrides
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := s.loadScene(req.Scene)
	if err != nil {
		return nil, err
	}

	cfg := &sceneObj.SamplingConfig
	width, height := cfg.Width, cfg.Height
	if req.Width > 0 {
		width = req.Width
	}
	if req.Height > 0 {
		height = req.Height
	}
	sceneObj.SetViewport(width, height)
	sceneObj.Camera.Update()

	if req.Samples > 0 {
		cfg.SamplesPerPixel = req.Samples
	}
	if req.Bounces > 0 {
		cfg.MaxRayBounces = req.Bounces
	}
	if req.TileSize > 0 {
		cfg.TileSize = req.TileSize
	}
	if req.Threads > 0 {
		cfg.ThreadCount = req.Threads
	}
	if req.Seed != 0 {
		cfg.Seed = req.Seed
	}

	return sceneObj, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func newRenderID() string {
	return fmt.Sprintf("render-%d", time.Now().UnixNano())
}
