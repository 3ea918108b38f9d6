package integrator

import (
	"math"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/scene"
)

// MinHitDistance is the smallest accepted hit distance. It keeps scattered rays
// from re-hitting the surface they leave.
const MinHitDistance = 0.01

// PathTracingIntegrator implements unidirectional path tracing lit only by the sky
type PathTracingIntegrator struct {
	config scene.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config scene.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor follows a path iteratively. Each scatter event spends one bounce;
// a path that hits a surface with no bounces left, or is absorbed, carries no light.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Vec3 {
	attenuation := core.NewVec3(1, 1, 1)

	for bounce := 0; ; bounce++ {
		hit, isHit := scene.Hit(ray, MinHitDistance, math.Inf(1))
		if !isHit {
			return attenuation.MultiplyVec(pt.backgroundGradient(ray, scene))
		}

		if bounce >= pt.config.MaxRayBounces {
			return core.Vec3{}
		}

		scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
		if !didScatter {
			return core.Vec3{}
		}

		attenuation = attenuation.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}
}

// backgroundGradient returns a gradient color based on ray direction
func (pt *PathTracingIntegrator) backgroundGradient(r core.Ray, scene *scene.Scene) core.Vec3 {
	topColor, bottomColor := scene.GetBackgroundColors()

	// Map direction y from [-1,1] to [0,1]
	t := 0.5 * (r.Direction.Y + 1.0)

	return bottomColor.Lerp(topColor, t)
}
