package geometry

import (
	"math"

	mathpkg "github.com/df07/go-sphere-raytracer/pkg/math"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center        mathpkg.Vec3
	Radius        float64
	RadiusSquared float64
	Material      Surface
}

// NewSphere creates a new sphere
func NewSphere(center mathpkg.Vec3, radius float64, color mathpkg.Vec3, reflectivity float64) *Sphere {
	return &Sphere{
		Center:        center,
		Radius:        radius,
		RadiusSquared: radius * radius,
		Material:      Surface{Color: color, Reflectivity: reflectivity},
	}
}

// Intersect tests the ray against the sphere using the geometric method:
// project the origin-to-center vector onto the ray and compare the
// half-chord with the radius.
func (s *Sphere) Intersect(ray mathpkg.Ray) (float64, float64, bool) {
	oc := s.Center.Subtract(ray.Origin)
	ocs := oc.LengthSquared()
	ca := oc.Dot(ray.Direction)

	// Origin outside and center behind the ray
	if ocs >= s.RadiusSquared && ca < IntersectEpsilon {
		return 0, 0, false
	}

	hcs := s.RadiusSquared - ocs + ca*ca
	if hcs > IntersectEpsilon {
		hc := math.Sqrt(hcs)
		return ca - hc, ca + hc, true
	}

	// Miss, or tangent within epsilon
	return 0, 0, false
}

// NormalAt returns the outward unit normal at a point on the sphere
func (s *Sphere) NormalAt(point mathpkg.Vec3) mathpkg.Vec3 {
	return point.Subtract(s.Center).Divide(s.Radius)
}

// Surface returns the shading properties of the sphere
func (s *Sphere) Surface() Surface {
	return s.Material
}
