package scene

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	mathpkg "github.com/df07/go-sphere-raytracer/pkg/math"
)

// DefaultLights are the two point lights of the reference scene
var DefaultLights = []mathpkg.Vec3{
	mathpkg.NewVec3(-1000, 100, -100),
	mathpkg.NewVec3(1000, -500, -100),
}

// Scene contains all the elements needed for rendering. It is built once
// and must not be modified while a frame is being rendered.
type Scene struct {
	Name    string
	Objects []geometry.Object // Objects in insertion order
	Lights  []mathpkg.Vec3    // Point light positions
}

// New creates an empty scene lit by the default lights
func New(name string) *Scene {
	lights := make([]mathpkg.Vec3, len(DefaultLights))
	copy(lights, DefaultLights)
	return &Scene{Name: name, Lights: lights}
}

// Add appends objects to the scene
func (s *Scene) Add(objects ...geometry.Object) {
	s.Objects = append(s.Objects, objects...)
}

// HitAny returns the object with the nearest positive entry distance along
// the ray. It is used both for visibility and for shadow tests.
func (s *Scene) HitAny(ray mathpkg.Ray) (geometry.Object, float64, bool) {
	var closestObject geometry.Object
	closest := math.Inf(1)

	for _, object := range s.Objects {
		near, _, ok := object.Intersect(ray)
		if ok && near > 0 && near < closest {
			closest = near
			closestObject = object
		}
	}

	if closestObject == nil {
		return nil, 0, false
	}
	return closestObject, closest, true
}

// Occluded reports whether anything lies ahead of the ray origin. Unlike
// HitAny it also counts an object the origin is inside of, so a shadow ray
// that starts just below a surface is blocked by that surface.
func (s *Scene) Occluded(ray mathpkg.Ray) bool {
	for _, object := range s.Objects {
		if _, far, ok := object.Intersect(ray); ok && far > 0 {
			return true
		}
	}
	return false
}

// GetPrimitiveCount returns the number of objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}
