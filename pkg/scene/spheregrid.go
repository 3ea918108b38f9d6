package scene

import (
	"math"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
	"github.com/go-gl/mathgl/mgl64"
)

// oklchToRGB converts OKLCH color values to linear RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := mgl64.DegToRad(h)

	// OKLCH -> OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB -> LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS -> linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(mgl64.Clamp(r, 0, 1), mgl64.Clamp(g, 0, 1), mgl64.Clamp(blue, 0, 1))
}

// NewSphereGridScene creates a grid of colored metal spheres resting on a
// large diffuse ground sphere
func NewSphereGridScene() *Scene {
	const (
		gridSize   = 10
		targetArea = 9.0 // the grid spans roughly 9x9 units
		gridCenter = 4.5
		groundSize = 1000.0
	)

	s := NewScene()
	s.Camera.Origin = core.NewVec3(gridCenter, 6, 18)
	s.Camera.LookAt = core.NewVec3(gridCenter, 0.8, gridCenter)
	s.Camera.LensRadius = 0.01
	s.SetViewport(800, 450)
	s.Camera.Update()
	s.SamplingConfig.SamplesPerPixel = 64
	s.SamplingConfig.MaxRayBounces = 16

	// Top of the ground sphere sits at y = 0
	s.AddSphere(core.NewVec3(gridCenter, -groundSize, gridCenter), groundSize,
		material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)))

	spacing := targetArea / float64(gridSize-1)
	sphereRadius := mgl64.Clamp(spacing*0.35, 0.02, 0.35)

	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + gridCenter
			z := float64(j)*spacing - targetArea/2.0 + gridCenter

			// Hue sweeps across X, chroma increases along Z
			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			roughness := 0.05 + 0.1*float64((i+j)%3)/2.0
			s.AddSphere(core.NewVec3(x, sphereRadius, z), sphereRadius,
				material.NewMetal(oklchToRGB(lightness, chroma, hue), roughness))
		}
	}

	return s
}
