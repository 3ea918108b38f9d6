package renderer

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// TileResult describes a finished tile, reported through a TileCallback
type TileResult struct {
	Tile      *Tile
	Frame     *FrameBuffer // Only the pixels inside Tile.Bounds are safe to read
	WorkerID  int
	Completed int // 1-based completion order
	Total     int
	Stats     TileStats
}

// TileCallback is invoked from worker goroutines as each tile finishes.
// Implementations must be safe for concurrent use.
type TileCallback func(TileResult)

// WorkerPool runs a fixed set of goroutines that pull tiles from a shared cursor
type WorkerPool struct {
	tiles      []*Tile
	cursor     *TileCursor
	renderer   *TileRenderer
	frame      *FrameBuffer
	baseSeed   int64
	numWorkers int
	callback   TileCallback
	completed  atomic.Int64
	workers    []*Worker
	wg         sync.WaitGroup
}

// Worker renders the tiles it claims and keeps its own statistics
type Worker struct {
	ID    int
	pool  *WorkerPool
	stats RenderStats
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// numWorkers <= 0 uses one worker per CPU.
func NewWorkerPool(tiles []*Tile, tileRenderer *TileRenderer, frame *FrameBuffer, baseSeed int64, numWorkers int, callback TileCallback) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		tiles:      tiles,
		cursor:     NewTileCursor(len(tiles)),
		renderer:   tileRenderer,
		frame:      frame,
		baseSeed:   baseSeed,
		numWorkers: numWorkers,
		callback:   callback,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{ID: i, pool: wp})
	}

	return wp
}

// Start launches all workers. They stop when the tiles run out or ctx is cancelled.
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Wait blocks until every worker has exited and returns the merged statistics
func (wp *WorkerPool) Wait() RenderStats {
	wp.wg.Wait()

	stats := RenderStats{
		TotalTiles:     len(wp.tiles),
		NumWorkers:     wp.numWorkers,
		TilesPerWorker: make([]int, wp.numWorkers),
	}
	for _, w := range wp.workers {
		stats.CompletedTiles += w.stats.CompletedTiles
		stats.TotalPixels += w.stats.TotalPixels
		stats.TotalSamples += w.stats.TotalSamples
		stats.LuminanceSum += w.stats.LuminanceSum
		stats.TilesPerWorker[w.ID] = w.stats.CompletedTiles
	}
	return stats
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	pool := w.pool
	for {
		if ctx.Err() != nil {
			return
		}

		idx, ok := pool.cursor.Claim()
		if !ok {
			return
		}
		tile := pool.tiles[idx]

		// Seeded by tile ID, not worker ID
		sampler := core.NewSeededSampler(pool.baseSeed + int64(tile.ID))
		tileStats := pool.renderer.RenderTile(tile, pool.frame, sampler)
		w.stats.add(tileStats)

		completed := int(pool.completed.Add(1))
		if pool.callback != nil {
			pool.callback(TileResult{
				Tile:      tile,
				Frame:     pool.frame,
				WorkerID:  w.ID,
				Completed: completed,
				Total:     len(pool.tiles),
				Stats:     tileStats,
			})
		}
	}
}
