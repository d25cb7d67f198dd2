package renderer

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	mathpkg "github.com/df07/go-sphere-raytracer/pkg/math"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// SpecularExponent is the shininess of every surface
const SpecularExponent = 12.0

// OriginBias is how far secondary rays are pushed off the surface they
// start on. It is a fixed distance, not relative to scene scale.
var OriginBias = geometry.IntersectEpsilon + 1e-9

var (
	black         = mathpkg.NewColor(0, 0, 0)
	specularColor = mathpkg.NewColor(1, 1, 1)
)

// Tracer computes the color seen along a ray: direct light from every
// point light with shadow tests, a white specular highlight, and
// recursive mirror reflection.
type Tracer struct {
	scene            *scene.Scene
	SpecularExponent float64
	OriginBias       float64

	onTrace func(depth int) // called on every Trace entry when set
}

// NewTracer creates a tracer for a scene
func NewTracer(s *scene.Scene) *Tracer {
	return &Tracer{
		scene:            s,
		SpecularExponent: SpecularExponent,
		OriginBias:       OriginBias,
	}
}

// Trace returns the unclamped color along ray. eye is the primary ray
// origin used for the specular term. depth is the remaining recursion
// budget; zero yields black.
func (t *Tracer) Trace(eye mathpkg.Vec3, ray mathpkg.Ray, depth int) mathpkg.Vec3 {
	if t.onTrace != nil {
		t.onTrace(depth)
	}
	if depth <= 0 {
		return black
	}

	object, distance, ok := t.scene.HitAny(ray)
	if !ok {
		return black
	}

	isec := ray.At(distance)
	normal := object.NormalAt(isec)
	surface := object.Surface()

	color := t.directLight(eye, isec, normal, surface.Color)

	if surface.Reflectivity > 0 {
		reflected := mathpkg.NewRay(isec, ray.Direction.Reflect(normal)).Normalized().Advance(t.OriginBias)
		color = color.Blend(t.Trace(eye, reflected, depth-1), 1-surface.Reflectivity)
	}

	return color
}

// directLight sums the diffuse and specular contribution of every light
// that is not blocked by another object
func (t *Tracer) directLight(eye, isec, normal, surfaceColor mathpkg.Vec3) mathpkg.Vec3 {
	var color mathpkg.Vec3

	for _, light := range t.scene.Lights {
		lightDir := light.Subtract(isec)

		shadow := mathpkg.NewRay(isec, lightDir).Normalized().Advance(t.OriginBias)
		if t.scene.Occluded(shadow) {
			continue
		}

		lightDir = lightDir.Normalize()
		diffuse := math.Max(0, lightDir.Dot(normal))

		toSurface := isec.Subtract(eye).Normalize()
		specular := math.Max(0, lightDir.Dot(toSurface.Reflect(normal)))

		color.AddAssign(surfaceColor.Multiply(diffuse))
		color.AddAssign(specularColor.Multiply(math.Pow(specular, t.SpecularExponent)))
	}

	return color
}
