package scene

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var ScenesFS embed.FS

// DiskDir is checked before the embedded copies, so scenes and scripts can be
// edited without rebuilding.
var DiskDir = "scenes"

// Load returns the raw bytes of a scene file, preferring the copy on disk.
func Load(name string) ([]byte, error) {
	clean := cleanScenePath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ScenesFS.ReadFile(clean)
}

// LoadScene loads and validates a scene by name; the .yaml suffix is
// optional.
func LoadScene(name string) (*Scene, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("scene: load %s: %w", name, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene: load %s: %w", name, err)
	}
	return s, nil
}

// Save writes the scene to DiskDir, where Load will pick it up.
func Save(name string, s *Scene) error {
	data, err := s.Marshal()
	if err != nil {
		return fmt.Errorf("scene: marshal %s: %w", name, err)
	}
	path := diskPath(cleanScenePath(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("scene: save %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("scene: save %s: %w", name, err)
	}
	return nil
}

// LoadScript returns a zone script, preferring the copy on disk.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPath(cleanScenePath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// SceneName maps a changed file path back to the scene name used by Load.
func SceneName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func cleanScenePath(name string) string {
	if name == "" {
		return ""
	}
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "scenes/")
	if !isSpecFile(s) {
		s += ".yaml"
	}
	return s
}

func cleanScriptPath(name string) string {
	if name == "" {
		return ""
	}

	s := filepath.ToSlash(name)

	if after, ok := strings.CutPrefix(s, "scenes/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	if !isScriptFile(s) {
		s += ".tengo"
	}

	return fmt.Sprintf("scripts/%s", s)
}

func diskPath(clean string) string {
	return filepath.Join(DiskDir, filepath.FromSlash(clean))
}

// WatchDirs returns the on-disk scene and script directories that exist.
func WatchDirs() []string {
	var dirs []string
	for _, dir := range []string{DiskDir, filepath.Join(DiskDir, "scripts")} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
