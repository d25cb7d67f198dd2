package geometry

import (
	"math"

	mathpkg "github.com/df07/go-sphere-raytracer/pkg/math"
)

// IntersectEpsilon is the float64 machine epsilon. Intersection tests treat
// quantities below it as zero.
var IntersectEpsilon = math.Nextafter(1, 2) - 1

// Object is anything the tracer can hit with a ray
type Object interface {
	// Intersect reports the near and far parametric distances where the ray
	// enters and leaves the object. ok is false on a miss.
	Intersect(ray mathpkg.Ray) (near, far float64, ok bool)
	// NormalAt returns the unit surface normal at a point on the surface
	NormalAt(point mathpkg.Vec3) mathpkg.Vec3
	// Surface returns the shading properties of the object
	Surface() Surface
}

// Surface holds the shading properties shared by every object
type Surface struct {
	Color        mathpkg.Vec3 // Base diffuse color
	Reflectivity float64      // Share of reflected color in [0, 1]
}
