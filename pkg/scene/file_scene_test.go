package scene

import (
	"os"
	"path/filepath"
	"testing"

	mathpkg "github.com/df07/go-sphere-raytracer/pkg/math"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name          string
		scene         string
		expectError   bool
		expectObjects int
	}{
		{"reference builtin", "reference", false, 4},
		{"default alias", "default", false, 4},
		{"unknown file name", "reference-file", true, 0},
		{"reference file by path", "../../scenes/reference.json", false, 4},
		{"mirror floor by path", "../../scenes/mirror-floor.json", false, 4},
		{"unknown", "nonexistent", true, 0},
		{"missing file", "scenes/nonexistent.json", true, 0},
		{"empty name", "", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load(tt.scene)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene '%s', got none", tt.scene)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for scene '%s': %v", tt.scene, err)
			}
			if s.GetPrimitiveCount() != tt.expectObjects {
				t.Errorf("Expected %d objects, got %d", tt.expectObjects, s.GetPrimitiveCount())
			}
		})
	}
}

func TestNewFileScene_LightsAndValidation(t *testing.T) {
	dir := t.TempDir()

	lit := filepath.Join(dir, "lit.json")
	writeFile(t, lit, `{"spheres": [{"center": [0, 0, 10], "radius": 1, "color": [1, 1, 1]}], "lights": [[1, 2, 3]]}`)

	s, err := NewFileScene(lit)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(s.Lights) != 1 || s.Lights[0] != mathpkg.NewVec3(1, 2, 3) {
		t.Errorf("Expected the file's single light, got %v", s.Lights)
	}
	if s.Name != "lit" {
		t.Errorf("Expected name from file name, got '%s'", s.Name)
	}

	unlit := filepath.Join(dir, "unlit.json")
	writeFile(t, unlit, `{"name": "Unlit", "spheres": [{"center": [0, 0, 10], "radius": 1, "color": [1, 1, 1]}]}`)
	s, err = NewFileScene(unlit)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(s.Lights) != len(DefaultLights) {
		t.Errorf("Expected default lights, got %v", s.Lights)
	}

	bad := filepath.Join(dir, "bad.json")
	writeFile(t, bad, `{"spheres": [{"center": [0, 0, 10], "radius": 1, "color": [1, 1, 1], "reflectivity": 2}]}`)
	if _, err := NewFileScene(bad); err == nil {
		t.Error("Expected reflectivity 2 to be rejected")
	}
}

func TestListScenes(t *testing.T) {
	scenes, err := ListScenes()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(scenes) == 0 || scenes[0].ID != "reference" || scenes[0].Type != "builtin" {
		t.Fatalf("Expected builtin reference scene first, got %+v", scenes)
	}

	// Tests run from pkg/scene, so ../scenes does not exist; only the builtins are listed
	for _, s := range scenes[1:] {
		if s.Type != "file" || s.FilePath == "" {
			t.Errorf("Expected file scene entry, got %+v", s)
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
