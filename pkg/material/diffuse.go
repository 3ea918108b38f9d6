package material

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// NewDiffuse creates a lambertian-like diffuse material
func NewDiffuse(albedo core.Vec3) Material {
	return Material{Kind: KindDiffuse, Albedo: albedo}
}

func (m Material) scatterDiffuse(hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	scatterDirection := hit.Normal.Add(core.RandomUnitVector(sampler))

	// Catch degenerate scatter direction
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection),
		Attenuation: m.Albedo,
	}, true
}
