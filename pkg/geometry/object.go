package geometry

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// Kind identifies one of the closed set of primitive shapes
type Kind int

const (
	KindSphere Kind = iota
)

// Object is a scene primitive that owns its material
type Object struct {
	Kind     Kind
	Sphere   Sphere
	Material material.Material
}

// NewSphere creates a sphere object
func NewSphere(center core.Vec3, radius float64, mat material.Material) Object {
	return Object{
		Kind:     KindSphere,
		Sphere:   Sphere{Center: center, Radius: radius},
		Material: mat,
	}
}

// Hit tests the object against a ray and fills in the material on success
func (o *Object) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	var (
		hit   material.HitRecord
		isHit bool
	)

	switch o.Kind {
	case KindSphere:
		hit, isHit = o.Sphere.Hit(ray, tMin, tMax)
	}

	if !isHit {
		return material.HitRecord{}, false
	}
	hit.Material = o.Material
	return hit, true
}

// HitWorld finds the nearest intersection among objects within [tMin, tMax].
// The search range shrinks to each hit found so a farther object cannot
// replace a nearer one.
func HitWorld(objects []Object, ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	var closestHit material.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for i := range objects {
		if hit, isHit := objects[i].Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			hit.ObjectIndex = i
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}
