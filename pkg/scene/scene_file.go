package scene

import (
	"fmt"

	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/loaders"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// NewSceneFromDescription builds a scene from a parsed scene file. Settings the
// file leaves at zero keep their defaults.
func NewSceneFromDescription(desc *loaders.SceneDescription) (*Scene, error) {
	s := NewScene()

	s.Camera.Origin = desc.Camera.Origin.Vec3()
	s.Camera.LookAt = desc.Camera.LookAt.Vec3()
	s.Camera.LensRadius = desc.Camera.LensRadius
	if desc.Camera.FieldOfView > 0 {
		s.Camera.FieldOfView = desc.Camera.FieldOfView
	}
	s.SetViewport(desc.Width, desc.Height)
	s.Camera.Update()

	cfg := &s.SamplingConfig
	if desc.SamplesPerPixel > 0 {
		cfg.SamplesPerPixel = desc.SamplesPerPixel
	}
	if desc.MaxRayBounces > 0 {
		cfg.MaxRayBounces = desc.MaxRayBounces
	}
	if desc.TileSize > 0 {
		cfg.TileSize = desc.TileSize
	}
	if desc.ThreadCount > 0 {
		cfg.ThreadCount = desc.ThreadCount
	}
	if desc.Seed != 0 {
		cfg.Seed = desc.Seed
	}

	if desc.Background != nil {
		s.BackgroundTop = desc.Background.Top.Vec3()
		s.BackgroundBottom = desc.Background.Bottom.Vec3()
	}

	for i, obj := range desc.Objects {
		mat, err := materialFromDescription(obj.Material)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}

		switch obj.Type {
		case "sphere":
			s.AddObject(geometry.NewSphere(obj.Center.Vec3(), obj.Radius, mat))
		default:
			return nil, fmt.Errorf("object %d: unsupported object type %q", i, obj.Type)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func materialFromDescription(desc loaders.MaterialDescription) (material.Material, error) {
	switch desc.Type {
	case material.KindDiffuse.String():
		return material.NewDiffuse(desc.Albedo.Vec3()), nil
	case material.KindMetal.String():
		return material.NewMetal(desc.Albedo.Vec3(), desc.Fuzziness), nil
	case material.KindDielectric.String():
		if desc.RefractionIndex <= 0 {
			return material.Material{}, fmt.Errorf("dielectric needs a positive refraction index, got %g", desc.RefractionIndex)
		}
		return material.NewDielectric(desc.RefractionIndex), nil
	default:
		return material.Material{}, fmt.Errorf("unsupported material type %q", desc.Type)
	}
}
