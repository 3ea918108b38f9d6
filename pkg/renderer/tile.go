package renderer

import (
	"image"
	"sync/atomic"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Raster-order index, also used to seed the tile's sampler
	Bounds image.Rectangle // Pixel bounds in frame-buffer coordinates (row 0 = top)
}

// NewTileGrid creates a grid of tiles covering the entire image in raster order.
// Tiles on the right and bottom edges are clipped to the image.
func NewTileGrid(width, height, tileSize int) []*Tile {
	tilesX := ceilDiv(width, tileSize)
	tilesY := ceilDiv(height, tileSize)

	tiles := make([]*Tile, 0, tilesX*tilesY)
	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{
				ID:     len(tiles),
				Bounds: image.Rect(x0, y0, x1, y1),
			})
		}
	}

	return tiles
}

// ceilDiv rounds up without forming a+b-1, which overflows for huge b
func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}

// TileCursor hands out tile indices to concurrent workers. Each index in
// [0, total) is claimed exactly once.
type TileCursor struct {
	next  atomic.Int64
	total int64
}

// NewTileCursor creates a cursor over total tiles
func NewTileCursor(total int) *TileCursor {
	return &TileCursor{total: int64(total)}
}

// Claim returns the next unclaimed tile index, or false when all are taken
func (c *TileCursor) Claim() (int, bool) {
	idx := c.next.Add(1) - 1
	if idx >= c.total {
		return 0, false
	}
	return int(idx), true
}
