package material

import (
	"fmt"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// Kind identifies one of the closed set of material models
type Kind int

const (
	KindDiffuse Kind = iota
	KindMetal
	KindDielectric
)

// String returns the lowercase name used in scene files
func (k Kind) String() string {
	switch k {
	case KindDiffuse:
		return "diffuse"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Material is a small value type describing how a surface scatters light.
// Only the fields relevant to Kind are used.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3 // Diffuse and Metal base color
	Fuzziness       float64   // Metal roughness: 0 = perfect mirror, 1 = very fuzzy
	RefractionIndex float64   // Dielectric index of refraction (e.g. 1.5 for glass)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The outgoing ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point       core.Vec3 // Point of intersection
	Normal      core.Vec3 // Unit surface normal, always facing against the incoming ray
	T           float64   // Parameter t along the ray
	FrontFace   bool      // Whether ray hit the front face
	Material    Material  // Copy of the hit object's material
	ObjectIndex int       // Index of the hit object in the scene, -1 if unknown
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Scatter proposes an outgoing ray and attenuation for the incoming ray at hit.
// The boolean is false when the path is absorbed.
func (m Material) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m.Kind {
	case KindDiffuse:
		return m.scatterDiffuse(hit, sampler)
	case KindMetal:
		return m.scatterMetal(rayIn, hit, sampler)
	case KindDielectric:
		return m.scatterDielectric(rayIn, hit, sampler)
	default:
		return ScatterResult{}, false
	}
}
