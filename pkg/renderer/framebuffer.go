package renderer

import (
	"image"
	"image/color"
)

// FrameBuffer is the RGB raster a render writes into. Row 0 is the top of the
// image. Workers write disjoint tiles, so no locking is done.
type FrameBuffer struct {
	img *image.RGBA
}

// NewFrameBuffer creates a black, fully opaque frame buffer
func NewFrameBuffer(width, height int) *FrameBuffer {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return &FrameBuffer{img: img}
}

// Width returns the frame width in pixels
func (fb *FrameBuffer) Width() int { return fb.img.Rect.Dx() }

// Height returns the frame height in pixels
func (fb *FrameBuffer) Height() int { return fb.img.Rect.Dy() }

// Set writes an opaque pixel
func (fb *FrameBuffer) Set(x, y int, r, g, b uint8) {
	fb.img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
}

// At returns the pixel at (x, y)
func (fb *FrameBuffer) At(x, y int) color.RGBA {
	return fb.img.RGBAAt(x, y)
}

// Image exposes the underlying image. It must not be read while a render is running.
func (fb *FrameBuffer) Image() *image.RGBA {
	return fb.img
}
