package scene

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	mathpkg "github.com/df07/go-sphere-raytracer/pkg/math"
)

// ErrInvalidDescription is wrapped by every scene description validation error
var ErrInvalidDescription = errors.New("invalid scene description")

// SphereDescription is the input tuple for one sphere
type SphereDescription struct {
	Center       mathpkg.Vec3
	Radius       float64
	Color        mathpkg.Vec3
	Reflectivity float64
}

// PlaneDescription is the input tuple for one plane
type PlaneDescription struct {
	Point        mathpkg.Vec3
	Normal       mathpkg.Vec3
	Color        mathpkg.Vec3
	Reflectivity float64
}

// Validate checks the sphere for values the tracer cannot shade
func (d SphereDescription) Validate() error {
	if !(d.Radius > 0) {
		return errors.Wrapf(ErrInvalidDescription, "sphere radius must be positive, got %g", d.Radius)
	}
	return validateReflectivity(d.Reflectivity)
}

// Validate checks the plane for values the tracer cannot shade
func (d PlaneDescription) Validate() error {
	if d.Normal.LengthSquared() == 0 {
		return errors.Wrap(ErrInvalidDescription, "plane normal must be non-zero")
	}
	return validateReflectivity(d.Reflectivity)
}

func validateReflectivity(r float64) error {
	if !(r >= 0 && r <= 1) {
		return errors.Wrapf(ErrInvalidDescription, "reflectivity must be in [0, 1], got %g", r)
	}
	return nil
}

// NewSceneFromDescriptions validates every description and builds a scene
// lit by the default lights. Order is preserved.
func NewSceneFromDescriptions(name string, spheres []SphereDescription, planes ...PlaneDescription) (*Scene, error) {
	for i, d := range spheres {
		if err := d.Validate(); err != nil {
			return nil, errors.Wrapf(err, "sphere %d", i)
		}
	}
	for i, d := range planes {
		if err := d.Validate(); err != nil {
			return nil, errors.Wrapf(err, "plane %d", i)
		}
	}

	s := New(name)
	s.Add(lo.Map(spheres, func(d SphereDescription, _ int) geometry.Object {
		return geometry.NewSphere(d.Center, d.Radius, d.Color, d.Reflectivity)
	})...)
	s.Add(lo.Map(planes, func(d PlaneDescription, _ int) geometry.Object {
		return geometry.NewPlane(d.Point, d.Normal, d.Color, d.Reflectivity)
	})...)
	return s, nil
}
