package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	DiskDir = t.TempDir()

	s, err := LoadScene("default")
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if s.GridSize != 100 {
		t.Fatalf("expected grid 100, got %v", s.GridSize)
	}
	if len(s.Zones) != 3 || len(s.Tokens) != 2 {
		t.Fatalf("unexpected scene contents: %+v", s)
	}
	if !s.Zones[1].Unlimited || !s.Zones[2].Disabled {
		t.Fatalf("zone flags not decoded: %+v", s.Zones)
	}
	if w, h := s.Tokens[0].Size(); w != 1 || h != 1 {
		t.Fatalf("expected default 1x1 footprint, got %vx%v", w, h)
	}
}

func TestDiskOverridesEmbedded(t *testing.T) {
	DiskDir = t.TempDir()

	override := []byte("name: tiny\ngrid_size: 50\n")
	if err := os.WriteFile(filepath.Join(DiskDir, "default.yaml"), override, 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadScene("default.yaml")
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if s.Name != "tiny" || s.GridSize != 50 {
		t.Fatalf("expected disk copy, got %+v", s)
	}
	if _, ok := ModTime("default"); !ok {
		t.Fatalf("expected mod time for disk scene")
	}
}

func TestSaveThenLoad(t *testing.T) {
	DiskDir = t.TempDir()

	in := &Scene{
		Name:     "saved",
		GridSize: 10,
		Zones:    []ZoneSpec{{ID: "z", X: 0, Y: 0, Width: 10, Height: 10, Triggered: true}},
		Tokens:   []TokenSpec{{Name: "t", X: 20, Y: 20}},
	}
	if err := Save("saved", in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := LoadScene("saved")
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if !out.Zones[0].Triggered || out.Tokens[0].Name != "t" {
		t.Fatalf("saved scene lost data: %+v", out)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"zero_grid", "grid_size: 0\n"},
		{"zone_without_id", "grid_size: 10\nzones:\n  - {x: 0, y: 0, width: 1, height: 1}\n"},
		{"duplicate_zone", "grid_size: 10\nzones:\n  - {id: a, width: 1, height: 1}\n  - {id: a, width: 1, height: 1}\n"},
		{"flat_zone", "grid_size: 10\nzones:\n  - {id: a, width: 0, height: 1}\n"},
		{"duplicate_token", "grid_size: 10\ntokens:\n  - {name: a}\n  - {name: a}\n"},
		{"negative_token", "grid_size: 10\ntokens:\n  - {name: a, width: -1}\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Parse([]byte(c.data)); !errors.Is(err, ErrInvalidScene) {
				t.Fatalf("expected ErrInvalidScene, got %v", err)
			}
		})
	}
}

func TestLoadScript(t *testing.T) {
	DiskDir = t.TempDir()

	for _, name := range []string{"announce", "announce.tengo", "scripts/announce.tengo"} {
		data, err := LoadScript(name)
		if err != nil {
			t.Fatalf("LoadScript(%q): %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("LoadScript(%q): empty script", name)
		}
	}
	if _, err := LoadScript("missing"); err == nil {
		t.Fatalf("expected error for missing script")
	}
}

func TestSceneName(t *testing.T) {
	if got := SceneName(filepath.Join("scenes", "crypt.yaml")); got != "crypt" {
		t.Fatalf("expected crypt, got %q", got)
	}
}

func TestWatcherReportsSceneWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	// non-scene files are ignored
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "crypt.yaml")
	if err := os.WriteFile(path, []byte("grid_size: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if filepath.Base(got) != "crypt.yaml" {
			t.Fatalf("expected crypt.yaml event, got %s", got)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for watcher event")
	}
}
