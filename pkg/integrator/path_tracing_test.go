package integrator

import (
	"testing"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
	"github.com/df07/go-tile-pathtracer/pkg/scene"
	"github.com/go-gl/mathgl/mgl64"
)

// fixedSampler returns the same values on every draw
type fixedSampler struct {
	value1D float64
	value3D core.Vec3
}

func (f fixedSampler) Get1D() float64            { return f.value1D }
func (f fixedSampler) Get2D() (float64, float64) { return f.value1D, f.value1D }
func (f fixedSampler) Get3D() core.Vec3          { return f.value3D }

func vecApproxEqual(a, b core.Vec3) bool {
	const eps = 1e-9
	return mgl64.FloatEqualThreshold(a.X, b.X, eps) &&
		mgl64.FloatEqualThreshold(a.Y, b.Y, eps) &&
		mgl64.FloatEqualThreshold(a.Z, b.Z, eps)
}

func createTestScene(objects ...func(s *scene.Scene)) *scene.Scene {
	s := scene.NewScene()
	s.Camera.LookAt = core.NewVec3(0, 0, -1)
	s.SetViewport(10, 10)
	s.Camera.Update()
	for _, add := range objects {
		add(s)
	}
	return s
}

func sphere(center core.Vec3, radius float64, mat material.Material) func(s *scene.Scene) {
	return func(s *scene.Scene) { s.AddSphere(center, radius, mat) }
}

// horizonSky is the default gradient at direction y = 0
var horizonSky = core.NewVec3(0.75, 0.85, 1.0)

func TestPathTracing_SkyGradient(t *testing.T) {
	sc := createTestScene()
	pt := NewPathTracingIntegrator(scene.SamplingConfig{MaxRayBounces: 4})
	sampler := core.NewSeededSampler(1)

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up", core.NewVec3(0, 1, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"straight down", core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1)},
		{"horizon", core.NewVec3(1, 0, 0), horizonSky},
		{"unnormalized horizon", core.NewVec3(0, 0, -25), horizonSky},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), tt.direction), sc, sampler)
			if !vecApproxEqual(color, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, color)
			}
		})
	}
}

func TestPathTracing_CustomBackground(t *testing.T) {
	sc := createTestScene()
	sc.BackgroundTop = core.NewVec3(0, 0, 1)
	sc.BackgroundBottom = core.NewVec3(1, 0, 0)
	pt := NewPathTracingIntegrator(scene.SamplingConfig{MaxRayBounces: 1})

	color := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)), sc, core.NewSeededSampler(1))
	if !vecApproxEqual(color, core.NewVec3(0.5, 0, 0.5)) {
		t.Errorf("Expected (0.5, 0, 0.5), got %v", color)
	}
}

func TestPathTracing_MirrorReflectsSky(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.6, 0.2)
	sc := createTestScene(sphere(core.NewVec3(0, 0, -2), 0.5, material.NewMetal(albedo, 0)))
	pt := NewPathTracingIntegrator(scene.SamplingConfig{MaxRayBounces: 1})

	// Head-on reflection sends the ray back along +z to the horizon
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	color := pt.RayColor(ray, sc, core.NewSeededSampler(1))

	expected := albedo.MultiplyVec(horizonSky)
	if !vecApproxEqual(color, expected) {
		t.Errorf("Expected %v, got %v", expected, color)
	}
}

func TestPathTracing_BounceBudget(t *testing.T) {
	gray := core.NewVec3(0.9, 0.9, 0.9)
	// The first mirror sends the ray back to an offset second mirror, which deflects it to the horizon
	sc := createTestScene(
		sphere(core.NewVec3(0, 0, -2), 0.5, material.NewMetal(gray, 0)),
		sphere(core.NewVec3(0.3, 0, 2), 0.5, material.NewMetal(gray, 0)),
	)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	tests := []struct {
		bounces  int
		expected core.Vec3
	}{
		{0, core.Vec3{}},
		{1, core.Vec3{}},
		{2, gray.MultiplyVec(gray).MultiplyVec(horizonSky)},
		{10, gray.MultiplyVec(gray).MultiplyVec(horizonSky)},
	}

	for _, tt := range tests {
		pt := NewPathTracingIntegrator(scene.SamplingConfig{MaxRayBounces: tt.bounces})
		color := pt.RayColor(ray, sc, core.NewSeededSampler(1))
		if !vecApproxEqual(color, tt.expected) {
			t.Errorf("bounces=%d: expected %v, got %v", tt.bounces, tt.expected, color)
		}
	}
}

func TestPathTracing_AbsorbedPathIsBlack(t *testing.T) {
	sc := createTestScene(sphere(core.NewVec3(0, 0, -2), 0.5, material.NewMetal(core.NewVec3(1, 1, 1), 1)))
	pt := NewPathTracingIntegrator(scene.SamplingConfig{MaxRayBounces: 8})

	// The fuzz vector is (0,0,-1), cancelling the mirror direction (0,0,1)
	sampler := fixedSampler{value1D: 0.5, value3D: core.NewVec3(0.5, 0.5, 0.05)}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if color := pt.RayColor(ray, sc, sampler); color != (core.Vec3{}) {
		t.Errorf("Expected black for absorbed path, got %v", color)
	}
}

func TestPathTracing_EnclosedPathIsBlack(t *testing.T) {
	// Camera inside a closed diffuse sphere never sees the sky
	sc := createTestScene(sphere(core.NewVec3(0, 0, 0), 10, material.NewDiffuse(core.NewVec3(0.9, 0.9, 0.9))))
	pt := NewPathTracingIntegrator(scene.SamplingConfig{MaxRayBounces: 16})
	sampler := core.NewSeededSampler(3)

	for i := 0; i < 50; i++ {
		ray := core.NewRay(core.NewVec3(0, 0, 0), core.RandomUnitVector(sampler))
		if color := pt.RayColor(ray, sc, sampler); color != (core.Vec3{}) {
			t.Fatalf("Expected black inside closed sphere, got %v", color)
		}
	}
}

func TestPathTracing_DiffuseSingleBounceSeesSky(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.4, 0.3)
	sc := createTestScene(sphere(core.NewVec3(0, 0, -2), 0.5, material.NewDiffuse(albedo)))
	pt := NewPathTracingIntegrator(scene.SamplingConfig{MaxRayBounces: 1})
	sampler := core.NewSeededSampler(9)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	for i := 0; i < 100; i++ {
		color := pt.RayColor(ray, sc, sampler)
		// Sky channels lie in [0.5, 1], scaled by the albedo
		if color.X < 0.25-1e-9 || color.X > 0.5+1e-9 || color.Z < 0.15-1e-9 || color.Z > 0.3+1e-9 {
			t.Fatalf("Color %v outside the range of albedo times sky", color)
		}
	}
}

func TestPathTracing_ImplementsIntegrator(t *testing.T) {
	var _ Integrator = NewPathTracingIntegrator(scene.DefaultSamplingConfig())
}
