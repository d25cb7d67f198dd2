package scene

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	mathpkg "github.com/df07/go-sphere-raytracer/pkg/math"
)

// countingObject wraps an object and counts intersection calls
type countingObject struct {
	geometry.Object
	calls int
}

func (c *countingObject) Intersect(ray mathpkg.Ray) (float64, float64, bool) {
	c.calls++
	return c.Object.Intersect(ray)
}

func sphereAt(z, radius float64) *geometry.Sphere {
	return geometry.NewSphere(mathpkg.NewVec3(0, 0, z), radius, mathpkg.NewColor(1, 1, 1), 0)
}

func TestScene_HitAny_NearestWins(t *testing.T) {
	far := sphereAt(100, 10)
	near := sphereAt(50, 10)
	ray := mathpkg.NewRay(mathpkg.NewVec3(0, 0, 0), mathpkg.NewVec3(0, 0, 1))

	orders := map[string][]geometry.Object{
		"far first":  {far, near},
		"near first": {near, far},
	}

	for name, objects := range orders {
		t.Run(name, func(t *testing.T) {
			s := New("test")
			s.Add(objects...)

			object, distance, ok := s.HitAny(ray)
			if !ok {
				t.Fatal("Expected hit, got none")
			}
			if object != geometry.Object(near) {
				t.Errorf("Expected nearest sphere, got %v", object)
			}
			if distance != 40 {
				t.Errorf("Expected distance 40, got %f", distance)
			}
		})
	}
}

func TestScene_HitAny_Miss(t *testing.T) {
	s := New("test")
	s.Add(sphereAt(100, 10), sphereAt(200, 20))

	ray := mathpkg.NewRay(mathpkg.NewVec3(0, 0, 0), mathpkg.NewVec3(0, 1, 0))
	if object, _, ok := s.HitAny(ray); ok {
		t.Errorf("Expected no hit, got %v", object)
	}
}

func TestScene_HitAny_EmptyScene(t *testing.T) {
	s := New("empty")
	ray := mathpkg.NewRay(mathpkg.NewVec3(0, 0, 0), mathpkg.NewVec3(0, 0, 1))
	if _, _, ok := s.HitAny(ray); ok {
		t.Error("Expected empty scene to report no hit")
	}
}

func TestScene_HitAny_SkipsNegativeNear(t *testing.T) {
	s := New("test")
	s.Add(sphereAt(0, 5)) // ray starts inside this one

	ray := mathpkg.NewRay(mathpkg.NewVec3(0, 0, 0), mathpkg.NewVec3(0, 0, 1))
	if _, _, ok := s.HitAny(ray); ok {
		t.Error("Expected hit behind the origin to be ignored")
	}

	s.Add(sphereAt(20, 5))
	_, distance, ok := s.HitAny(ray)
	if !ok || distance != 15 {
		t.Errorf("Expected hit at 15, got ok=%t distance=%f", ok, distance)
	}
}

func TestScene_HitAny_ScansEveryObject(t *testing.T) {
	a := &countingObject{Object: sphereAt(50, 10)}
	b := &countingObject{Object: sphereAt(100, 10)}
	s := New("test")
	s.Add(a, b)

	s.HitAny(mathpkg.NewRay(mathpkg.NewVec3(0, 0, 0), mathpkg.NewVec3(0, 0, 1)))
	if a.calls != 1 || b.calls != 1 {
		t.Errorf("Expected one intersect call per object, got %d and %d", a.calls, b.calls)
	}
}

func TestScene_Occluded(t *testing.T) {
	origin := mathpkg.NewVec3(0, 0, 0)
	forward := mathpkg.NewRay(origin, mathpkg.NewVec3(0, 0, 1))

	tests := []struct {
		name     string
		objects  []geometry.Object
		expected bool
	}{
		{"empty scene", nil, false},
		{"sphere ahead", []geometry.Object{sphereAt(50, 10)}, true},
		{"sphere behind", []geometry.Object{sphereAt(-50, 10)}, false},
		// HitAny skips this one, a shadow test must not
		{"origin inside sphere", []geometry.Object{sphereAt(0, 5)}, true},
		{"plane facing the ray", []geometry.Object{
			geometry.NewPlane(mathpkg.NewVec3(0, 0, 30), mathpkg.NewVec3(0, 0, -1), mathpkg.NewColor(1, 1, 1), 0),
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New("test")
			s.Add(tt.objects...)
			if got := s.Occluded(forward); got != tt.expected {
				t.Errorf("Expected occluded=%t, got %t", tt.expected, got)
			}
		})
	}
}

func TestNew_CopiesDefaultLights(t *testing.T) {
	s := New("test")
	if len(s.Lights) != 2 {
		t.Fatalf("Expected 2 default lights, got %d", len(s.Lights))
	}
	s.Lights[0] = mathpkg.NewVec3(1, 2, 3)
	if DefaultLights[0] != mathpkg.NewVec3(-1000, 100, -100) {
		t.Error("Modifying scene lights changed the defaults")
	}
}

func TestNewSceneFromDescriptions_Validation(t *testing.T) {
	white := mathpkg.NewColor(1, 1, 1)
	origin := mathpkg.NewVec3(0, 0, 0)

	tests := []struct {
		name        string
		spheres     []SphereDescription
		planes      []PlaneDescription
		expectError bool
	}{
		{"valid", []SphereDescription{{Center: origin, Radius: 1, Color: white, Reflectivity: 0.5}}, nil, false},
		{"reflectivity bounds inclusive", []SphereDescription{
			{Center: origin, Radius: 1, Color: white, Reflectivity: 0},
			{Center: origin, Radius: 1, Color: white, Reflectivity: 1},
		}, nil, false},
		{"zero radius", []SphereDescription{{Center: origin, Radius: 0, Color: white}}, nil, true},
		{"negative radius", []SphereDescription{{Center: origin, Radius: -2, Color: white}}, nil, true},
		{"reflectivity above one", []SphereDescription{{Center: origin, Radius: 1, Color: white, Reflectivity: 1.5}}, nil, true},
		{"negative reflectivity", []SphereDescription{{Center: origin, Radius: 1, Color: white, Reflectivity: -0.1}}, nil, true},
		{"zero plane normal", nil, []PlaneDescription{{Point: origin, Color: white}}, true},
		{"valid plane", nil, []PlaneDescription{{Point: origin, Normal: mathpkg.NewVec3(0, 1, 0), Color: white}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSceneFromDescriptions("test", tt.spheres, tt.planes...)
			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error, got none")
				}
				if !errors.Is(err, ErrInvalidDescription) {
					t.Errorf("Expected ErrInvalidDescription, got %v", err)
				}
				if s != nil {
					t.Error("Expected nil scene on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got, want := s.GetPrimitiveCount(), len(tt.spheres)+len(tt.planes); got != want {
				t.Errorf("Expected %d objects, got %d", want, got)
			}
		})
	}
}

func TestNewReferenceScene(t *testing.T) {
	s := NewReferenceScene()
	if s.GetPrimitiveCount() != 4 {
		t.Errorf("Expected 4 spheres, got %d", s.GetPrimitiveCount())
	}

	ground, ok := s.Objects[3].(*geometry.Sphere)
	if !ok {
		t.Fatalf("Expected ground to be a sphere, got %T", s.Objects[3])
	}
	if ground.Radius != 9800 || ground.Surface().Reflectivity != 0 {
		t.Errorf("Unexpected ground sphere: %+v", ground)
	}
}
