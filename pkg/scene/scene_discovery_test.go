package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeScene(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"two-spheres", "Two Spheres"},
		{"solar_system", "Solar System"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestParseSceneMetadata(t *testing.T) {
	dir := t.TempDir()

	full := writeScene(t, dir, "two-spheres.json", testSceneJSON)
	info, err := ParseSceneMetadata(full)
	if err != nil {
		t.Fatalf("ParseSceneMetadata() error: %v", err)
	}
	if info.ID != "file:two-spheres" || info.Name != "Two Spheres" || info.Group != "Tests" || info.Type != "file" {
		t.Errorf("Unexpected metadata %+v", info)
	}
	if info.Description != "A scaled sphere and a small offset one" || info.FilePath != full {
		t.Errorf("Unexpected description or path %+v", info)
	}

	bare := writeScene(t, dir, "bare_scene.json", `{"camera": {"width": 4, "height": 4, "from": [0,0,-5]}}`)
	info, err = ParseSceneMetadata(bare)
	if err != nil {
		t.Fatalf("ParseSceneMetadata() error: %v", err)
	}
	if info.Name != "Bare Scene" || info.Group != defaultFileGroup {
		t.Errorf("Expected fallback name and group, got %+v", info)
	}

	broken := writeScene(t, dir, "broken.json", `{`)
	if _, err := ParseSceneMetadata(broken); err == nil {
		t.Error("Expected error for malformed file")
	}
}

func TestListFileScenes(t *testing.T) {
	scenes, err := ListFileScenes(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Errorf("ListFileScenes() error: %v", err)
	}
	if scenes == nil || len(scenes) != 0 {
		t.Errorf("Expected empty non-nil list, got %v", scenes)
	}

	dir := t.TempDir()
	writeScene(t, dir, "two-spheres.json", testSceneJSON)
	writeScene(t, dir, "broken.json", `{`)
	writeScene(t, dir, "notes.txt", "not a scene")

	scenes, err = ListFileScenes(dir)
	if err != nil {
		t.Fatalf("ListFileScenes() error: %v", err)
	}
	if len(scenes) != 1 || scenes[0].ID != "file:two-spheres" {
		t.Errorf("Expected only the valid scene, got %+v", scenes)
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeScene(t, dir, "two-spheres.json", testSceneJSON)

	response, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	if len(response.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(response.Groups))
	}
	if response.Groups[0].Name != builtinGroup {
		t.Errorf("Expected built-in group first, got %q", response.Groups[0].Name)
	}

	expectedScenes := []string{"default", "spheres", "solar"}
	if len(response.Groups[0].Scenes) != len(expectedScenes) {
		t.Fatalf("Built-in scenes count = %d, want %d", len(response.Groups[0].Scenes), len(expectedScenes))
	}
	for i, id := range expectedScenes {
		if response.Groups[0].Scenes[i].ID != id {
			t.Errorf("Built-in scene %d = %q, want %q", i, response.Groups[0].Scenes[i].ID, id)
		}
	}

	if response.Groups[1].Name != "Tests" || response.Groups[1].Scenes[0].ID != "file:two-spheres" {
		t.Errorf("Unexpected file group %+v", response.Groups[1])
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := writeScene(t, dir, "two-spheres.json", testSceneJSON)

	tests := []struct {
		name           string
		id             string
		width, height  int
		expectedWidth  int
		expectedHeight int
	}{
		{"builtin with size", "default", 120, 80, 120, 80},
		{"builtin without size", "spheres", 0, 0, 400, 400},
		{"file by id keeps its size", "file:two-spheres", 0, 0, 64, 32},
		{"file by id resized", "file:two-spheres", 30, 20, 30, 20},
		{"file by path", path, 0, 0, 64, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(tt.id, dir, tt.width, tt.height)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			camera := s.GetCamera()
			if camera.Width() != tt.expectedWidth || camera.Height() != tt.expectedHeight {
				t.Errorf("Expected %dx%d, got %dx%d", tt.expectedWidth, tt.expectedHeight, camera.Width(), camera.Height())
			}
		})
	}
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Open("nope", dir, 10, 10); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
	if _, err := Open("file:../secret", dir, 10, 10); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene for path traversal, got %v", err)
	}
	if _, err := Open("file:missing", dir, 10, 10); err == nil {
		t.Error("Expected error for missing scene file")
	}
}
