package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/df07/go-sphere-raytracer/pkg/loaders"
	mathpkg "github.com/df07/go-sphere-raytracer/pkg/math"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the JSON file (file type only)
}

// BuiltinScenes lists the scenes that need no file
var BuiltinScenes = []SceneInfo{
	{ID: "reference", DisplayName: "Reference", Description: "Three reflective spheres over a ground sphere", Type: "builtin"},
}

// NewFileScene creates a scene from a JSON scene file
func NewFileScene(filename string) (*Scene, error) {
	sceneFile, err := loaders.LoadSceneFile(filename)
	if err != nil {
		return nil, err
	}

	spheres := lo.Map(sceneFile.Spheres, func(s loaders.SphereSpec, _ int) SphereDescription {
		return SphereDescription{
			Center:       s.Center.Vec3(),
			Radius:       s.Radius,
			Color:        s.Color.Vec3(),
			Reflectivity: s.Reflectivity,
		}
	})
	planes := lo.Map(sceneFile.Planes, func(p loaders.PlaneSpec, _ int) PlaneDescription {
		return PlaneDescription{
			Point:        p.Point.Vec3(),
			Normal:       p.Normal.Vec3(),
			Color:        p.Color.Vec3(),
			Reflectivity: p.Reflectivity,
		}
	})

	name := sceneFile.Name
	if name == "" {
		name = sceneName(filename)
	}

	s, err := NewSceneFromDescriptions(name, spheres, planes...)
	if err != nil {
		return nil, errors.Wrapf(err, "scene file %s", filename)
	}

	if len(sceneFile.Lights) > 0 {
		s.Lights = lo.Map(sceneFile.Lights, func(l loaders.Triple, _ int) mathpkg.Vec3 {
			return l.Vec3()
		})
	}
	return s, nil
}

// Load resolves a scene by builtin name, scene file name or file path
func Load(nameOrPath string) (*Scene, error) {
	switch {
	case nameOrPath == "":
		return nil, errors.New("no scene given")
	case nameOrPath == "reference" || nameOrPath == "default":
		return NewReferenceScene(), nil
	case strings.HasSuffix(nameOrPath, ".json"):
		return NewFileScene(nameOrPath)
	}

	for _, dir := range scenesDirs {
		path := filepath.Join(dir, nameOrPath+".json")
		if _, err := os.Stat(path); err == nil {
			return NewFileScene(path)
		}
	}
	return nil, errors.Errorf("unknown scene: %s", nameOrPath)
}

var scenesDirs = []string{"scenes", "../scenes"}

// ListScenes returns the builtin scenes followed by scene files found in
// the scenes directory, sorted by display name
func ListScenes() ([]SceneInfo, error) {
	scenes := append([]SceneInfo{}, BuiltinScenes...)

	dir, ok := lo.Find(scenesDirs, func(d string) bool {
		_, err := os.Stat(d)
		return err == nil
	})
	if !ok {
		return scenes, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan scenes directory")
	}

	var found []SceneInfo
	for _, path := range files {
		sceneFile, err := loaders.LoadSceneFile(path)
		if err != nil {
			fmt.Printf("Warning: skipping %s: %v\n", path, err)
			continue
		}
		id := sceneName(path)
		found = append(found, SceneInfo{
			ID:          id,
			DisplayName: lo.Ternary(sceneFile.Name != "", sceneFile.Name, id),
			Description: sceneFile.Description,
			Type:        "file",
			FilePath:    path,
		})
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].DisplayName < found[j].DisplayName
	})
	return append(scenes, found...), nil
}

func sceneName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
