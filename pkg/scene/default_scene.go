package scene

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// NewDefaultScene creates the five-sphere scene: a large ground sphere, a
// diffuse center sphere, a glass sphere, and two metal spheres of differing fuzz
func NewDefaultScene() *Scene {
	s := NewScene()

	s.Camera.Origin = core.NewVec3(-2, 2, 1)
	s.Camera.LookAt = core.NewVec3(0, 0, -1)
	s.SetViewport(1280, 720)
	s.Camera.Update()

	s.AddSphere(core.NewVec3(0, -100.5, 0), 100, material.NewDiffuse(core.NewVec3(0.0, 0.7, 0.5)))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.8)))
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5))
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.5, 0.4, 0.2), 0.0))
	s.AddSphere(core.NewVec3(-0.5, 0, -2), 0.5, material.NewMetal(core.NewVec3(0.3, 0.2, 0.5), 0.8))

	return s
}
