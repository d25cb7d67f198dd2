package loaders

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	mathpkg "github.com/df07/go-sphere-raytracer/pkg/math"
)

// SceneFile is the on-disk JSON form of a scene description
type SceneFile struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Spheres     []SphereSpec `json:"spheres"`
	Planes      []PlaneSpec  `json:"planes"`
	Lights      []Triple     `json:"lights"` // Optional, defaults apply when empty
}

// SphereSpec describes one sphere
type SphereSpec struct {
	Center       Triple  `json:"center"`
	Radius       float64 `json:"radius"`
	Color        Triple  `json:"color"`
	Reflectivity float64 `json:"reflectivity"`
}

// PlaneSpec describes one plane
type PlaneSpec struct {
	Point        Triple  `json:"point"`
	Normal       Triple  `json:"normal"`
	Color        Triple  `json:"color"`
	Reflectivity float64 `json:"reflectivity"`
}

// Triple is a JSON array of exactly three numbers
type Triple [3]float64

// Vec3 converts the triple to a vector
func (t Triple) Vec3() mathpkg.Vec3 {
	return mathpkg.NewVec3(t[0], t[1], t[2])
}

// UnmarshalJSON rejects arrays that do not hold exactly three numbers
func (t *Triple) UnmarshalJSON(data []byte) error {
	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		return errors.Wrap(err, "expected an array of numbers")
	}
	if len(values) != 3 {
		return errors.Errorf("expected 3 components, got %d", len(values))
	}
	copy(t[:], values)
	return nil
}

// LoadSceneFile reads and parses a JSON scene file
func LoadSceneFile(filename string) (*SceneFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open scene file")
	}
	defer file.Close()

	sceneFile, err := ParseSceneFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", filename)
	}
	return sceneFile, nil
}

// ParseSceneFile decodes a scene description. Unknown fields are rejected so
// that typos do not silently drop objects.
func ParseSceneFile(r io.Reader) (*SceneFile, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var sceneFile SceneFile
	if err := decoder.Decode(&sceneFile); err != nil {
		return nil, errors.Wrap(err, "invalid scene JSON")
	}
	if len(sceneFile.Spheres) == 0 && len(sceneFile.Planes) == 0 {
		return nil, errors.New("scene has no objects")
	}
	return &sceneFile, nil
}
