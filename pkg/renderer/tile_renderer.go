package renderer

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/integrator"
	"github.com/df07/go-tile-pathtracer/pkg/scene"
	"github.com/go-gl/mathgl/mgl64"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(scene *scene.Scene, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		scene:      scene,
		integrator: integratorInst,
	}
}

// RenderTile samples every pixel of the tile and writes the gamma-corrected
// average into frame. The sampler is used by this call alone.
func (tr *TileRenderer) RenderTile(tile *Tile, frame *FrameBuffer, sampler core.Sampler) TileStats {
	bounds := tile.Bounds
	stats := TileStats{Pixels: bounds.Dx() * bounds.Dy()}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ps := tr.samplePixel(x, y, sampler)
			avg := ps.GetColor()

			stats.Samples += ps.SampleCount
			stats.LuminanceSum += avg.Luminance()

			r, g, b := vec3ToColor(avg)
			frame.Set(x, y, r, g, b)
		}
	}

	return stats
}

// samplePixel averages SamplesPerPixel jittered camera rays through pixel (x, y).
// Frame rows grow downwards while the camera's t grows upwards, so y is flipped.
func (tr *TileRenderer) samplePixel(x, y int, sampler core.Sampler) PixelStats {
	cfg := tr.scene.SamplingConfig
	width := float64(cfg.Width)
	height := float64(cfg.Height)
	row := float64(cfg.Height - 1 - y)

	var ps PixelStats
	for i := 0; i < cfg.SamplesPerPixel; i++ {
		jx, jy := sampler.Get2D()
		s := (float64(x) + jx) / width
		t := (row + jy) / height

		ray := tr.scene.Camera.GetRay(s, t, sampler)
		ps.AddSample(tr.integrator.RayColor(ray, tr.scene, sampler))
	}
	return ps
}

// vec3ToColor converts a linear color to 8-bit channels with gamma 2
func vec3ToColor(colorVec core.Vec3) (r, g, b uint8) {
	corrected := colorVec.GammaCorrect(2.0)
	quantize := func(c float64) uint8 {
		return uint8(mgl64.Clamp(c, 0, 1) * 255)
	}
	return quantize(corrected.X), quantize(corrected.Y), quantize(corrected.Z)
}
