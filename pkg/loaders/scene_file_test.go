package loaders

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const twoSpheres = `{
  "name": "Two Spheres",
  "description": "a small test scene",
  "spheres": [
    {"center": [0, 0, 100], "radius": 50, "color": [1, 0, 0], "reflectivity": 0.25},
    {"center": [0, 0, 10000], "radius": 9800, "color": [0.5, 0.5, 0.5]}
  ],
  "lights": [[0, 1000, -100]]
}`

func TestParseSceneFile(t *testing.T) {
	sceneFile, err := ParseSceneFile(strings.NewReader(twoSpheres))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if sceneFile.Name != "Two Spheres" {
		t.Errorf("Expected name 'Two Spheres', got '%s'", sceneFile.Name)
	}
	if len(sceneFile.Spheres) != 2 {
		t.Fatalf("Expected 2 spheres, got %d", len(sceneFile.Spheres))
	}

	first := sceneFile.Spheres[0]
	if first.Center != (Triple{0, 0, 100}) || first.Radius != 50 || first.Reflectivity != 0.25 {
		t.Errorf("First sphere parsed incorrectly: %+v", first)
	}
	if sceneFile.Spheres[1].Reflectivity != 0 {
		t.Errorf("Expected missing reflectivity to default to 0, got %f", sceneFile.Spheres[1].Reflectivity)
	}
	if len(sceneFile.Lights) != 1 || sceneFile.Lights[0].Vec3().Y != 1000 {
		t.Errorf("Expected one light at y=1000, got %v", sceneFile.Lights)
	}
}

func TestParseSceneFile_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "spheres: []"},
		{"empty scene", `{"name": "nothing"}`},
		{"short triple", `{"spheres": [{"center": [0, 0], "radius": 1, "color": [1, 1, 1]}]}`},
		{"long triple", `{"spheres": [{"center": [0, 0, 0, 0], "radius": 1, "color": [1, 1, 1]}]}`},
		{"triple of strings", `{"spheres": [{"center": ["a", "b", "c"], "radius": 1, "color": [1, 1, 1]}]}`},
		{"unknown field", `{"spheres": [{"centre": [0, 0, 0], "radius": 1, "color": [1, 1, 1]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSceneFile(strings.NewReader(tt.input)); err == nil {
				t.Errorf("Expected error for input %q", tt.input)
			}
		})
	}
}

func TestLoadSceneFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "two.json")
	if err := os.WriteFile(path, []byte(twoSpheres), 0644); err != nil {
		t.Fatal(err)
	}

	sceneFile, err := LoadSceneFile(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(sceneFile.Spheres) != 2 {
		t.Errorf("Expected 2 spheres, got %d", len(sceneFile.Spheres))
	}

	if _, err := LoadSceneFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}
