package geometry

import (
	"testing"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

func newTestCamera() *Camera {
	camera := NewCamera()
	camera.Origin = core.NewVec3(0, 0, 0)
	camera.LookAt = core.NewVec3(0, 0, -1)
	camera.FieldOfView = 90
	camera.AspectRatio = 2.0
	camera.Update()
	return camera
}

func TestNewCamera_Defaults(t *testing.T) {
	camera := NewCamera()
	if camera.FieldOfView != 40 {
		t.Errorf("Expected default field of view 40, got %f", camera.FieldOfView)
	}
	if camera.LookAt != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected default look-at +X, got %v", camera.LookAt)
	}
}

func TestCamera_BasisIsOrthonormal(t *testing.T) {
	camera := NewCamera()
	camera.Origin = core.NewVec3(-2, 2, 1)
	camera.LookAt = core.NewVec3(0, 0, -1)
	camera.AspectRatio = 16.0 / 9.0
	camera.Update()

	u, v := camera.Basis()
	if !mgl64.FloatEqualThreshold(u.Length(), 1, 1e-12) || !mgl64.FloatEqualThreshold(v.Length(), 1, 1e-12) {
		t.Errorf("Expected unit basis, got |u|=%f |v|=%f", u.Length(), v.Length())
	}
	if !mgl64.FloatEqualThreshold(u.Dot(v), 0, 1e-12) {
		t.Errorf("Expected orthogonal basis, got u·v=%f", u.Dot(v))
	}
	if !mgl64.FloatEqualThreshold(u.Y, 0, 1e-12) {
		t.Errorf("Expected horizontal right vector, got %v", u)
	}
	if v.Y <= 0 {
		t.Errorf("Expected up vector to point up, got %v", v)
	}
}

func TestCamera_CenterRayHitsLookAt(t *testing.T) {
	camera := NewCamera()
	camera.Origin = core.NewVec3(3, 1, 2)
	camera.LookAt = core.NewVec3(0, 0.5, -1)
	camera.LensRadius = 0.2
	camera.AspectRatio = 1.5
	camera.Update()

	sampler := core.NewSeededSampler(42)
	for i := 0; i < 100; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)

		// Every lens sample converges on the focus plane at the look-at point
		distance := camera.LookAt.Subtract(ray.Origin).Length()
		p := ray.At(distance)
		toLookAt := camera.LookAt.Subtract(ray.Origin).Normalize()
		if ray.Direction.Subtract(toLookAt).Length() > 1e-9 {
			t.Fatalf("Expected center ray to pass through look-at, reached %v", p)
		}
	}
}

func TestCamera_PinholeRaysStartAtOrigin(t *testing.T) {
	camera := newTestCamera()
	sampler := core.NewSeededSampler(1)

	for _, st := range [][2]float64{{0, 0}, {1, 1}, {0.25, 0.75}} {
		ray := camera.GetRay(st[0], st[1], sampler)
		if ray.Origin != camera.Origin {
			t.Errorf("Expected pinhole ray origin %v, got %v", camera.Origin, ray.Origin)
		}
		if !mgl64.FloatEqualThreshold(ray.Direction.Length(), 1, 1e-12) {
			t.Errorf("Expected unit direction, got length %f", ray.Direction.Length())
		}
	}
}

func TestCamera_ViewportCorners(t *testing.T) {
	// 90° fov gives a viewport 2 high at distance 1; aspect 2 makes it 4 wide
	camera := newTestCamera()
	sampler := core.NewSeededSampler(1)

	tests := []struct {
		name     string
		s, t     float64
		expected core.Vec3
	}{
		{"lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"upper right", 1, 1, core.NewVec3(2, 1, -1)},
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, sampler)
			expected := tt.expected.Normalize()
			if ray.Direction.Subtract(expected).Length() > 1e-9 {
				t.Errorf("Expected direction %v, got %v", expected, ray.Direction)
			}
		})
	}
}

func TestCamera_LensOffsetsStayInAperture(t *testing.T) {
	camera := newTestCamera()
	camera.LensRadius = 0.5
	sampler := core.NewSeededSampler(3)

	moved := false
	for i := 0; i < 500; i++ {
		ray := camera.GetRay(0.3, 0.6, sampler)
		offset := ray.Origin.Subtract(camera.Origin)
		if offset.Length() >= camera.LensRadius {
			t.Fatalf("Lens offset %v outside aperture %f", offset, camera.LensRadius)
		}
		if !mgl64.FloatEqualThreshold(offset.Z, 0, 1e-12) {
			t.Fatalf("Lens offset %v should lie in the u,v plane", offset)
		}
		if offset.Length() > 0 {
			moved = true
		}
	}
	if !moved {
		t.Error("Expected thin-lens sampling to move ray origins")
	}
}
