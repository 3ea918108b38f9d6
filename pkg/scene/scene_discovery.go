package scene

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-tile-pathtracer/pkg/loaders"
)

// SceneInfo describes a scene that can be rendered by name
type SceneInfo struct {
	ID          string `json:"id"`                 // Name passed to Create
	DisplayName string `json:"displayName"`        // UI display name
	Description string `json:"description"`        // Optional description
	Type        string `json:"type"`               // "builtin" or "file"
	FilePath    string `json:"filePath,omitempty"` // Path to the scene file (file type only)
}

type builtinScene struct {
	info   SceneInfo
	create func() *Scene
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Default Scene",
			Description: "Ground sphere with diffuse, glass and two metal spheres",
			Type:        "builtin",
		},
		create: NewDefaultScene,
	},
	{
		info: SceneInfo{
			ID:          "spheregrid",
			DisplayName: "Sphere Grid",
			Description: "10x10 grid of rainbow-colored metallic spheres",
			Type:        "builtin",
		},
		create: NewSphereGridScene,
	},
}

// Names returns the IDs of the built-in scenes in registration order
func Names() []string {
	names := make([]string, len(builtinScenes))
	for i, b := range builtinScenes {
		names[i] = b.info.ID
	}
	return names
}

// Create returns a fresh scene by built-in name, or loads it from disk when
// name ends in ".json"
func Create(name string) (*Scene, error) {
	if strings.HasSuffix(name, ".json") {
		desc, err := loaders.LoadSceneFile(name)
		if err != nil {
			return nil, err
		}
		return NewSceneFromDescription(desc)
	}

	for _, b := range builtinScenes {
		if b.info.ID == name {
			return b.create(), nil
		}
	}
	return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(Names(), ", "))
}

// ListSceneFiles scans dir for JSON scene files. A missing directory yields an
// empty list.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		nameWithoutExt := strings.TrimSuffix(filepath.Base(filePath), ".json")
		info := SceneInfo{
			ID:          filePath,
			DisplayName: titleCase(nameWithoutExt),
			Type:        "file",
			FilePath:    filePath,
		}

		desc, err := loaders.LoadSceneFile(filePath)
		if err != nil {
			// Unreadable files are skipped so one bad file does not hide the rest
			log.Printf("Warning: skipping scene file %s: %v", filePath, err)
			continue
		}
		if desc.Name != "" {
			info.DisplayName = desc.Name
		}
		info.Description = desc.Description
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ListAllScenes returns the built-in scenes followed by the scene files in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	all := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		all = append(all, b.info)
	}

	files, err := ListSceneFiles(dir)
	if err != nil {
		return nil, err
	}
	return append(all, files...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "three-spheres" -> "Three Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
