package geometry

import (
	"math"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// WorldUp is the up direction used to build the camera basis
var WorldUp = core.NewVec3(0, 1, 0)

// Camera is a thin-lens camera. After changing Origin, LookAt, FieldOfView
// or AspectRatio, Update must be called before generating rays.
type Camera struct {
	Origin      core.Vec3
	LookAt      core.Vec3
	LensRadius  float64 // Aperture radius; 0 disables depth of field
	FieldOfView float64 // Vertical field of view in degrees
	AspectRatio float64 // Width / height

	// Derived by Update
	u, v            core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	lowerLeftCorner core.Vec3
}

// NewCamera creates a camera at the origin looking down +X with a 40° field of view.
// The basis is not computed until Update is called.
func NewCamera() *Camera {
	return &Camera{
		LookAt:      core.NewVec3(1, 0, 0),
		FieldOfView: 40.0,
		AspectRatio: 1.0,
	}
}

// Update recomputes the viewing basis. The focus plane passes through LookAt.
func (c *Camera) Update() {
	viewportHeight := 2.0 * math.Tan(mgl64.DegToRad(c.FieldOfView)/2.0)
	viewportWidth := viewportHeight * c.AspectRatio

	w := c.Origin.Subtract(c.LookAt)
	focusDistance := w.Length()
	wNorm := w.Multiply(1.0 / focusDistance)

	c.u = WorldUp.Cross(wNorm).Normalize()
	c.v = wNorm.Cross(c.u)

	c.horizontal = c.u.Multiply(viewportWidth * focusDistance)
	c.vertical = c.v.Multiply(viewportHeight * focusDistance)
	c.lowerLeftCorner = c.Origin.
		Subtract(c.horizontal.Multiply(0.5)).
		Subtract(c.vertical.Multiply(0.5)).
		Subtract(w)
}

// GetRay generates a ray for image-plane coordinates (s, t) where 0 <= s,t <= 1
// and (0, 0) is the lower-left corner
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	offset := core.Vec3{}
	if c.LensRadius > 0 {
		rd := core.RandomInUnitDisk(sampler).Multiply(c.LensRadius)
		offset = c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
	}

	origin := c.Origin.Add(offset)
	target := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t))

	return core.NewRay(origin, target.Subtract(origin))
}

// Basis returns the camera's right and up unit vectors
func (c *Camera) Basis() (u, v core.Vec3) {
	return c.u, c.v
}
