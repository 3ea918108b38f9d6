package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// Vec3JSON is a vector or color written as a JSON array [x, y, z]
type Vec3JSON [3]float64

// Vec3 converts the array to a core.Vec3
func (v Vec3JSON) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// SceneDescription is the on-disk form of a scene
type SceneDescription struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`

	Width           int   `json:"width"`
	Height          int   `json:"height"`
	SamplesPerPixel int   `json:"samplesPerPixel,omitempty"`
	MaxRayBounces   int   `json:"maxRayBounces,omitempty"`
	TileSize        int   `json:"tileSize,omitempty"`
	ThreadCount     int   `json:"threadCount,omitempty"`
	Seed            int64 `json:"seed,omitempty"`

	Camera     CameraDescription      `json:"camera"`
	Background *BackgroundDescription `json:"background,omitempty"`
	Objects    []ObjectDescription    `json:"objects"`
}

// CameraDescription holds the user-facing camera parameters
type CameraDescription struct {
	Origin      Vec3JSON `json:"origin"`
	LookAt      Vec3JSON `json:"lookAt"`
	FieldOfView float64  `json:"fov,omitempty"` // degrees
	LensRadius  float64  `json:"lensRadius,omitempty"`
}

// BackgroundDescription sets the sky gradient
type BackgroundDescription struct {
	Top    Vec3JSON `json:"top"`
	Bottom Vec3JSON `json:"bottom"`
}

// ObjectDescription describes one primitive. Only "sphere" is understood.
type ObjectDescription struct {
	Type     string              `json:"type"`
	Center   Vec3JSON            `json:"center"`
	Radius   float64             `json:"radius"`
	Material MaterialDescription `json:"material"`
}

// MaterialDescription describes a "diffuse", "metal" or "dielectric" material
type MaterialDescription struct {
	Type            string   `json:"type"`
	Albedo          Vec3JSON `json:"albedo,omitempty"`
	Fuzziness       float64  `json:"fuzziness,omitempty"`
	RefractionIndex float64  `json:"refractionIndex,omitempty"`
}

// ParseSceneDescription decodes a scene description from JSON
func ParseSceneDescription(reader io.Reader) (*SceneDescription, error) {
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()

	var desc SceneDescription
	if err := decoder.Decode(&desc); err != nil {
		return nil, fmt.Errorf("failed to decode scene description: %w", err)
	}

	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("scene description needs positive width and height, got %dx%d", desc.Width, desc.Height)
	}
	for i, obj := range desc.Objects {
		if obj.Type == "" {
			return nil, fmt.Errorf("object %d: missing type", i)
		}
		if obj.Material.Type == "" {
			return nil, fmt.Errorf("object %d: missing material type", i)
		}
	}

	return &desc, nil
}

// LoadSceneFile reads and parses a JSON scene file
func LoadSceneFile(filename string) (*SceneDescription, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	desc, err := ParseSceneDescription(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return desc, nil
}
