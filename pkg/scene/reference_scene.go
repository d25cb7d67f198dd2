package scene

import (
	mathpkg "github.com/df07/go-sphere-raytracer/pkg/math"
)

// ReferenceSpheres returns the four spheres of the classic demo scene:
// three floating spheres in front of a huge ground sphere.
func ReferenceSpheres() []SphereDescription {
	return []SphereDescription{
		{Center: mathpkg.NewVec3(100, 50, 150), Radius: 100, Color: mathpkg.NewColor(0.8, 1, 1), Reflectivity: 0.5},
		{Center: mathpkg.NewVec3(-150, -50, 160), Radius: 80, Color: mathpkg.NewColor(0, 0, 0), Reflectivity: 0.8},
		{Center: mathpkg.NewVec3(-100, 100, 180), Radius: 40, Color: mathpkg.NewColor(1, 0.7, 0.7), Reflectivity: 0.2},
		{Center: mathpkg.NewVec3(0, 0, 10000), Radius: 9800, Color: mathpkg.NewColor(0.5, 0.5, 0.5), Reflectivity: 0},
	}
}

// NewReferenceScene creates the classic demo scene
func NewReferenceScene() *Scene {
	s, err := NewSceneFromDescriptions("reference", ReferenceSpheres())
	if err != nil {
		// The reference descriptions are constants
		panic(err)
	}
	return s
}
