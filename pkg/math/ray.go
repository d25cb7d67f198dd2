package math

// Ray represents a ray with an origin and direction.
// The direction is not required to be normalized.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Advance returns a copy of the ray with its origin moved forward by t
func (r Ray) Advance(t float64) Ray {
	return Ray{Origin: r.At(t), Direction: r.Direction}
}

// Normalized returns a copy of the ray with a unit direction
func (r Ray) Normalized() Ray {
	return Ray{Origin: r.Origin, Direction: r.Direction.Normalize()}
}
