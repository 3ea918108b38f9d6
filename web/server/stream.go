package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/df07/go-tile-pathtracer/pkg/renderer"
)

// TileUpdate represents a single finished tile sent via SSE
type TileUpdate struct {
	TileX      int    `json:"tileX"`      // Left edge in pixels
	TileY      int    `json:"tileY"`      // Top edge in pixels
	Width      int    `json:"width"`      // Tile width in pixels
	Height     int    `json:"height"`     // Tile height in pixels
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Completion order (1-based)
	TotalTiles int    `json:"totalTiles"`
	WorkerID   int    `json:"workerId"`
}

// CompleteUpdate is the final SSE event carrying the whole image
type CompleteUpdate struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
}

type renderOutcome struct {
	stats renderer.RenderStats
	err   error
}

// handleRenderStream renders a scene and streams tiles, console output and the
// final image as Server-Sent Events
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}
	s.setSSEHeaders(w)
	ctx := r.Context()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEEvent(w, flusher, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		s.sendSSEEvent(w, flusher, "error", err.Error())
		return
	}

	consoleChan := make(chan ConsoleMessage, 50)
	tileChan := make(chan TileUpdate, 256)

	raytracer := renderer.NewRaytracer(sceneObj, NewWebLogger(newRenderID(), consoleChan))
	raytracer.SetTileCallback(func(result renderer.TileResult) {
		update, err := newTileUpdate(result)
		if err != nil {
			log.Printf("Error encoding tile %d: %v", result.Tile.ID, err)
			return
		}
		select {
		case tileChan <- update:
		case <-ctx.Done():
		}
	})

	job, err := raytracer.Start(ctx)
	if err != nil {
		s.sendSSEEvent(w, flusher, "error", fmt.Sprintf("Render error: %v", err))
		return
	}

	done := make(chan renderOutcome, 1)
	go func() {
		stats, err := job.Wait()
		done <- renderOutcome{stats: stats, err: err}
	}()

	for {
		select {
		case msg := <-consoleChan:
			s.sendSSEJSON(w, flusher, "console", msg)

		case tile := <-tileChan:
			s.sendSSEJSON(w, flusher, "tile", tile)

		case outcome := <-done:
			// Flush whatever the workers queued before they exited
			s.drainEvents(w, flusher, consoleChan, tileChan)

			if outcome.err != nil {
				if ctx.Err() != nil {
					log.Printf("Client disconnected, render of %s stopped", req.Scene)
					return
				}
				s.sendSSEEvent(w, flusher, "error", fmt.Sprintf("Render error: %v", outcome.err))
				return
			}

			imageData, err := imageToBase64PNG(job.Frame.Image())
			if err != nil {
				s.sendSSEEvent(w, flusher, "error", fmt.Sprintf("Failed to encode image: %v", err))
				return
			}
			s.sendSSEJSON(w, flusher, "complete", CompleteUpdate{
				ImageData: imageData,
				Stats:     newStats(outcome.stats),
			})
			return
		}
	}
}

func newTileUpdate(result renderer.TileResult) (TileUpdate, error) {
	bounds := result.Tile.Bounds
	imageData, err := imageToBase64PNG(result.Frame.Image().SubImage(bounds))
	if err != nil {
		return TileUpdate{}, err
	}
	return TileUpdate{
		TileX:      bounds.Min.X,
		TileY:      bounds.Min.Y,
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		ImageData:  imageData,
		TileNumber: result.Completed,
		TotalTiles: result.Total,
		WorkerID:   result.WorkerID,
	}, nil
}

func (s *Server) drainEvents(w http.ResponseWriter, flusher http.Flusher, consoleChan chan ConsoleMessage, tileChan chan TileUpdate) {
	for {
		select {
		case msg := <-consoleChan:
			s.sendSSEJSON(w, flusher, "console", msg)
		case tile := <-tileChan:
			s.sendSSEJSON(w, flusher, "tile", tile)
		default:
			return
		}
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// sendSSEJSON sends v as the JSON payload of an SSE event
func (s *Server) sendSSEJSON(w http.ResponseWriter, flusher http.Flusher, event string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", event, err)
		return
	}
	s.sendSSEEvent(w, flusher, event, string(data))
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event, data string) {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		// Client disconnected during write
		return
	}
	flusher.Flush()
}
