package material

import (
	"testing"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// fixedSampler returns the same values on every draw
type fixedSampler struct {
	value1D float64
	value3D core.Vec3
}

func (f fixedSampler) Get1D() float64            { return f.value1D }
func (f fixedSampler) Get2D() (float64, float64) { return f.value1D, f.value1D }
func (f fixedSampler) Get3D() core.Vec3          { return f.value3D }

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindDiffuse, "diffuse"},
		{KindMetal, "metal"},
		{KindDielectric, "dielectric"},
		{Kind(42), "kind(42)"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Expected %q, got %q", tt.expected, got)
		}
	}
}

func TestHitRecord_SetFaceNormal(t *testing.T) {
	outward := core.NewVec3(0, 1, 0)

	tests := []struct {
		name          string
		direction     core.Vec3
		expectedFront bool
		expectedNorm  core.Vec3
	}{
		{"from outside", core.NewVec3(0, -1, 0), true, core.NewVec3(0, 1, 0)},
		{"from inside", core.NewVec3(0, 1, 0), false, core.NewVec3(0, -1, 0)},
		{"oblique outside", core.NewVec3(1, -1, 0), true, core.NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit HitRecord
			ray := core.NewRay(core.NewVec3(0, 0, 0), tt.direction)
			hit.SetFaceNormal(ray, outward)

			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if hit.Normal != tt.expectedNorm {
				t.Errorf("Expected normal %v, got %v", tt.expectedNorm, hit.Normal)
			}
			if hit.Normal.Dot(ray.Direction) > 0 {
				t.Errorf("Normal %v should face against ray %v", hit.Normal, ray.Direction)
			}
		})
	}
}

func TestScatter_UnknownKindAbsorbs(t *testing.T) {
	m := Material{Kind: Kind(99)}
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := HitRecord{Normal: core.NewVec3(0, 1, 0), FrontFace: true}

	if _, ok := m.Scatter(ray, hit, core.NewSeededSampler(1)); ok {
		t.Error("Expected unknown material kind to absorb the ray")
	}
}

func TestDiffuse_ScattersAboveSurface(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.6, 0.7)
	diffuse := NewDiffuse(albedo)
	sampler := core.NewSeededSampler(42)

	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		FrontFace: true,
	}

	for i := 0; i < 1000; i++ {
		scatter, ok := diffuse.Scatter(ray, hit, sampler)
		if !ok {
			t.Fatal("Diffuse material should always scatter")
		}
		if scatter.Attenuation != albedo {
			t.Fatalf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
		}
		if scatter.Scattered.Direction.Dot(hit.Normal) <= 0 {
			t.Fatalf("Expected scatter above surface, got %v", scatter.Scattered.Direction)
		}
		if scatter.Scattered.Origin != hit.Point {
			t.Fatalf("Expected scatter origin at hit point, got %v", scatter.Scattered.Origin)
		}
	}
}

func TestDiffuse_DegenerateDirectionFallsBackToNormal(t *testing.T) {
	diffuse := NewDiffuse(core.NewVec3(0.5, 0.5, 0.5))

	// Get3D of (0.5, 0.25, 0.5) maps to (0, -0.5, 0), exactly opposite the normal
	sampler := fixedSampler{value3D: core.NewVec3(0.5, 0.25, 0.5)}

	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := HitRecord{Normal: core.NewVec3(0, 1, 0), FrontFace: true}

	scatter, ok := diffuse.Scatter(ray, hit, sampler)
	if !ok {
		t.Fatal("Diffuse material should always scatter")
	}
	if scatter.Scattered.Direction != hit.Normal {
		t.Errorf("Expected fallback to normal %v, got %v", hit.Normal, scatter.Scattered.Direction)
	}
}
