package entity

import (
	"reflect"
	"testing"

	"github.com/1000nettles/heywait/ecs"
	"github.com/1000nettles/heywait/ecs/component"
	"github.com/1000nettles/heywait/scene"
	"github.com/1000nettles/heywait/settings"
)

func testScene() *scene.Scene {
	return &scene.Scene{
		Name:     "test",
		GridSize: 50,
		Width:    1000,
		Height:   600,
		Zones: []scene.ZoneSpec{
			{ID: "a", Name: "Door", X: 100, Y: 100, Width: 200, Height: 100, Script: "announce"},
			{ID: "b", X: 400, Y: 100, Width: 50, Height: 50, Unlimited: true, Triggered: true},
			{ID: "c", X: 0, Y: 0, Width: 50, Height: 50, Disabled: true},
		},
		Tokens: []scene.TokenSpec{
			{Name: "Aria", X: 10, Y: 20, Width: 1, Height: 1},
			{Name: "Borin", X: 30, Y: 40, Width: 2, Height: 2},
		},
	}
}

func TestBuildScene(t *testing.T) {
	w := ecs.NewWorld()
	if err := BuildScene(w, testScene(), settings.Default()); err != nil {
		t.Fatalf("BuildScene: %v", err)
	}

	camEnt, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		t.Fatalf("no camera")
	}
	cam, _ := ecs.Get(w, camEnt, component.CameraComponent)
	if cam.X != 500 || cam.Y != 300 || cam.Scale != 1 {
		t.Fatalf("camera = %+v, want scene center", cam)
	}
	if _, ok := w.First(component.PauseComponent.Kind()); !ok {
		t.Fatalf("no pause state")
	}

	zones := map[string]component.TriggerZone{}
	for _, ent := range w.Query(component.TriggerZoneComponent.Kind()) {
		z, _ := ecs.Get(w, ent, component.TriggerZoneComponent)
		zones[z.ID] = z
	}
	if len(zones) != 3 {
		t.Fatalf("zones = %d, want 3", len(zones))
	}
	if z := zones["b"]; !z.Triggered || z.Image != settings.DefaultTriggeredImage || !z.Unlimited {
		t.Fatalf("zone b = %+v", z)
	}
	if z := zones["c"]; z.Enabled {
		t.Fatalf("zone c should be disabled")
	}
	for id, z := range zones {
		if !z.Hidden {
			t.Fatalf("zone %s visible to players", id)
		}
	}
}

func TestBuildSceneRejectsInvalid(t *testing.T) {
	sc := testScene()
	sc.Zones[1].ID = "a"
	if err := BuildScene(ecs.NewWorld(), sc, settings.Default()); err == nil {
		t.Fatalf("expected duplicate zone id error")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	sc := testScene()
	w := ecs.NewWorld()
	if err := BuildScene(w, sc, settings.Default()); err != nil {
		t.Fatalf("BuildScene: %v", err)
	}

	got := Snapshot(w, sc.Name, sc.Width, sc.Height)
	if !reflect.DeepEqual(got, sc) {
		t.Fatalf("snapshot = %+v\nwant %+v", got, sc)
	}
}
