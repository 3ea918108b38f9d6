package renderer

import (
	"time"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalTiles     int           // Tiles in the grid
	CompletedTiles int           // Tiles actually rendered (less than TotalTiles if cancelled)
	TotalPixels    int           // Pixels rendered
	TotalSamples   int           // Camera rays traced
	LuminanceSum   float64       // Sum of linear pixel luminance before gamma
	NumWorkers     int           // Worker goroutines used
	TilesPerWorker []int         // Tiles rendered by each worker
	Duration       time.Duration // Wall-clock time from Start to the last worker exiting
}

// AverageSamples returns the mean number of samples per rendered pixel
func (rs RenderStats) AverageSamples() float64 {
	if rs.TotalPixels == 0 {
		return 0
	}
	return float64(rs.TotalSamples) / float64(rs.TotalPixels)
}

// AverageLuminance returns the mean linear luminance of the rendered pixels
func (rs RenderStats) AverageLuminance() float64 {
	if rs.TotalPixels == 0 {
		return 0
	}
	return rs.LuminanceSum / float64(rs.TotalPixels)
}

// add merges the statistics of one tile
func (rs *RenderStats) add(tile TileStats) {
	rs.CompletedTiles++
	rs.TotalPixels += tile.Pixels
	rs.TotalSamples += tile.Samples
	rs.LuminanceSum += tile.LuminanceSum
}

// TileStats contains statistics for a single rendered tile
type TileStats struct {
	Pixels       int
	Samples      int
	LuminanceSum float64
}

// PixelStats accumulates the samples of one pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}
