package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	builtinGroup     = "Built-in Scenes"
	defaultFileGroup = "Scene Files"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to JSON file (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// BuiltinScenes returns metadata for the scenes that need no file
func BuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtinScenes))
	for i, b := range builtinScenes {
		scenes[i] = b.info
		scenes[i].Group = builtinGroup
		scenes[i].Type = "builtin"
	}
	return scenes
}

// ListFileScenes scans dir for JSON scene files. A missing directory yields an empty list.
func ListFileScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		sceneInfo, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseSceneMetadata reads the name, description and group of a JSON scene file.
// Missing fields fall back to values derived from the filename.
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:       "file:" + nameWithoutExt,
		Name:     titleCase(nameWithoutExt),
		Group:    defaultFileGroup,
		Type:     "file",
		FilePath: filePath,
	}

	f, err := os.Open(filePath)
	if err != nil {
		return sceneInfo, err
	}
	defer f.Close()

	sf, err := decodeFile(f)
	if err != nil {
		return sceneInfo, err
	}

	if sf.Name != "" {
		sceneInfo.Name = sf.Name
	}
	if sf.Group != "" {
		sceneInfo.Group = sf.Group
	}
	sceneInfo.Description = sf.Description

	return sceneInfo, nil
}

// ListAllScenes returns both built-in and file scenes, grouped by category.
// Built-in scenes come first, then other groups alphabetically.
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListFileScenes(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	allScenes := append(BuiltinScenes(), fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{
		Name:   builtinGroup,
		Scenes: groupMap[builtinGroup],
	})
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// Open creates the scene identified by id. Built-in IDs are looked up by name;
// "file:<name>" IDs are loaded from <dir>/<name>.json. A plain path ending in
// .json is loaded directly. width and height override the scene's camera size
// when positive.
func Open(id, dir string, width, height int) (*Scene, error) {
	var (
		s   *Scene
		err error
	)

	switch {
	case strings.HasPrefix(id, "file:"):
		name := strings.TrimPrefix(id, "file:")
		if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
			return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
		}
		s, err = Load(filepath.Join(dir, name+".json"))
	case strings.HasSuffix(id, ".json"):
		s, err = Load(id)
	default:
		// Built-in scenes always need a size
		if width <= 0 || height <= 0 {
			width, height = 400, 400
		}
		return NewBuiltinScene(id, width, height)
	}
	if err != nil {
		return nil, err
	}

	if width > 0 && height > 0 {
		if err := s.Resize(width, height); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// titleCase converts a filename-style string to title case
// e.g., "two-spheres" -> "Two Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
