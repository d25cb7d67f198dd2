package geometry

import (
	"math"

	mathpkg "github.com/df07/go-sphere-raytracer/pkg/math"
)

// Plane represents an infinite plane defined by a point and normal.
// Only the side the normal points to is visible.
type Plane struct {
	Point    mathpkg.Vec3 // A point on the plane
	Normal   mathpkg.Vec3 // Unit normal
	Material Surface
}

// NewPlane creates a new plane
func NewPlane(point, normal, color mathpkg.Vec3, reflectivity float64) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(), // Ensure normal is normalized
		Material: Surface{Color: color, Reflectivity: reflectivity},
	}
}

// Intersect tests if a ray hits the front side of the plane. A plane has no
// thickness, so near and far are the same distance.
func (p *Plane) Intersect(ray mathpkg.Ray) (float64, float64, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Parallel, or approaching from behind
	if denominator > -IntersectEpsilon || math.IsNaN(denominator) {
		return 0, 0, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < IntersectEpsilon {
		return 0, 0, false
	}

	return t, t, true
}

// NormalAt returns the plane normal, which is the same everywhere
func (p *Plane) NormalAt(mathpkg.Vec3) mathpkg.Vec3 {
	return p.Normal
}

// Surface returns the shading properties of the plane
func (p *Plane) Surface() Surface {
	return p.Material
}
