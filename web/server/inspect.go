package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/integrator"
	"github.com/df07/go-tile-pathtracer/pkg/material"
	"github.com/df07/go-tile-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ObjectIndex  int                    `json:"objectIndex"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(v core.Vec3) string {
	c := v.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo describes the fields relevant to the material's kind
func extractMaterialInfo(mat material.Material) map[string]interface{} {
	properties := make(map[string]interface{})

	switch mat.Kind {
	case material.KindDiffuse:
		properties["albedo"] = vecArray(mat.Albedo)
		properties["color"] = hexColor(mat.Albedo)
	case material.KindMetal:
		properties["albedo"] = vecArray(mat.Albedo)
		properties["color"] = hexColor(mat.Albedo)
		properties["fuzziness"] = mat.Fuzziness
	case material.KindDielectric:
		properties["refractionIndex"] = mat.RefractionIndex
		properties["color"] = "#ffffff" // Clear glass
	}
	return properties
}

// extractGeometryInfo describes the object's shape
func extractGeometryInfo(obj geometry.Object) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch obj.Kind {
	case geometry.KindSphere:
		properties["center"] = vecArray(obj.Sphere.Center)
		properties["radius"] = obj.Sphere.Radius
		return "sphere", properties
	default:
		return "unknown", properties
	}
}

// inspectPixel casts a ray through the center of pixel (x, y), row 0 being the
// top, and reports the first object hit
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResponse {
	cfg := sceneObj.SamplingConfig
	s := (float64(pixelX) + 0.5) / float64(cfg.Width)
	t := (float64(cfg.Height-1-pixelY) + 0.5) / float64(cfg.Height)

	// Inspection looks through the lens center
	camera := *sceneObj.Camera
	camera.LensRadius = 0
	ray := camera.GetRay(s, t, core.NewSeededSampler(0))

	hit, isHit := sceneObj.Hit(ray, integrator.MinHitDistance, math.Inf(1))
	if !isHit {
		return InspectResponse{Hit: false, ObjectIndex: -1}
	}

	obj := sceneObj.Objects[hit.ObjectIndex]
	geometryType, geometryProps := extractGeometryInfo(obj)

	return InspectResponse{
		Hit:          true,
		ObjectIndex:  hit.ObjectIndex,
		MaterialType: hit.Material.Kind.String(),
		GeometryType: geometryType,
		Point:        vecArray(hit.Point),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.T,
		FrontFace:    hit.FrontFace,
		Properties: map[string]interface{}{
			"material": extractMaterialInfo(hit.Material),
			"geometry": geometryProps,
		},
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := sceneObj.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	cfg := sceneObj.SamplingConfig
	if pixelX < 0 || pixelX >= cfg.Width || pixelY < 0 || pixelY >= cfg.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, pixelX, pixelY))
}
