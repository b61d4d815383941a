package game

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/1000nettles/heywait/ecs"
	"github.com/1000nettles/heywait/ecs/component"
	"github.com/1000nettles/heywait/geom"
	"github.com/1000nettles/heywait/scene"
	"github.com/1000nettles/heywait/settings"
)

func newTestEngine(t *testing.T, s settings.Settings) *Engine {
	t.Helper()
	sc, err := scene.LoadScene("default")
	if err != nil {
		t.Fatalf("load default scene: %v", err)
	}
	e := New(s, scene.LoadScript)
	if err := e.LoadScene(sc); err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	return e
}

func eventTypes(evts []ecs.Event) []ecs.EventType {
	out := make([]ecs.EventType, 0, len(evts))
	for _, evt := range evts {
		out = append(out, evt.Type)
	}
	return out
}

func mustMove(t *testing.T, e *Engine, name string, x, y float64) []ecs.Event {
	t.Helper()
	if err := e.MoveToken(name, x, y); err != nil {
		t.Fatalf("MoveToken(%s): %v", name, err)
	}
	return e.Step()
}

func tokenAt(t *testing.T, e *Engine, name string) geom.Point {
	t.Helper()
	tok, ok := e.Token(name)
	if !ok {
		t.Fatalf("token %s missing", name)
	}
	return geom.Pt(tok.X, tok.Y)
}

func TestEngineMoveThroughZone(t *testing.T) {
	e := newTestEngine(t, settings.Default())

	evts := mustMove(t, e, "Aria", 1300, 500)

	want := []ecs.EventType{
		ecs.EventZoneTriggered,
		ecs.EventScriptMessage,
		ecs.EventTokenCorrected,
		ecs.EventPaused,
		ecs.EventCameraPan,
	}
	if got := eventTypes(evts); !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}

	trig := evts[0].Data.(component.ZoneTriggered)
	if trig.ZoneID != "crypt-door" || trig.Token != "Aria" {
		t.Fatalf("triggered = %+v", trig)
	}
	if trig.Intersection != geom.Pt(800, 550) {
		t.Fatalf("intersection = %v, want (800,550)", trig.Intersection)
	}
	if msg := evts[1].Data.(component.ScriptMessage).Message; msg != "Aria stops at the Crypt door" {
		t.Fatalf("script message = %q", msg)
	}
	if got := tokenAt(t, e, "Aria"); got != geom.Pt(800, 500) {
		t.Fatalf("Aria at %v, want (800,500)", got)
	}
	pan := evts[4].Data.(component.CameraPan)
	if pan.X != 850 || pan.Y != 550 || pan.Scale != 1 || pan.Duration != 1 {
		t.Fatalf("pan = %+v", pan)
	}

	z, _ := e.Zone("crypt-door")
	if !z.Triggered || z.Image != settings.DefaultTriggeredImage {
		t.Fatalf("zone = %+v", z)
	}
	if !e.Paused() {
		t.Fatalf("expected game to be paused")
	}

	for i := 0; i < 70; i++ {
		e.Step()
	}
	if cam := e.Camera(); cam.X != 850 || cam.Y != 550 || cam.Scale != 1 {
		t.Fatalf("camera = %+v, want centered on Aria", cam)
	}
}

func TestEngineZoneFiresOnce(t *testing.T) {
	s := settings.Default()
	s.PauseOnTrigger = false
	s.StopAtBoundary = false
	e := newTestEngine(t, s)

	mustMove(t, e, "Aria", 1300, 500)
	evts := mustMove(t, e, "Aria", 100, 500)
	if len(evts) != 0 {
		t.Fatalf("second crossing produced %v", eventTypes(evts))
	}
	if got := tokenAt(t, e, "Aria"); got != geom.Pt(100, 500) {
		t.Fatalf("Aria at %v", got)
	}
}

func TestEnginePausedMovesSkipZones(t *testing.T) {
	e := newTestEngine(t, settings.Default())

	e.SetPaused(true)
	if got := eventTypes(e.Step()); !reflect.DeepEqual(got, []ecs.EventType{ecs.EventPaused}) {
		t.Fatalf("pause events = %v", got)
	}

	if evts := mustMove(t, e, "Aria", 1300, 500); len(evts) != 0 {
		t.Fatalf("paused move produced %v", eventTypes(evts))
	}
	if got := tokenAt(t, e, "Aria"); got != geom.Pt(1300, 500) {
		t.Fatalf("Aria at %v, want the requested position", got)
	}
	if z, _ := e.Zone("crypt-door"); z.Triggered {
		t.Fatalf("zone fired while paused")
	}
}

func TestEngineSecondMoveInTickSeesTriggerPause(t *testing.T) {
	e := newTestEngine(t, settings.Default())

	if err := e.MoveToken("Aria", 1300, 500); err != nil {
		t.Fatal(err)
	}
	// Borin would cross the altar but the first move paused the game.
	if err := e.MoveToken("Borin", 1500, 800); err != nil {
		t.Fatal(err)
	}
	evts := e.Step()

	var fired []string
	for _, evt := range evts {
		if trig, ok := evt.Data.(component.ZoneTriggered); ok {
			fired = append(fired, trig.ZoneID)
		}
	}
	if !reflect.DeepEqual(fired, []string{"crypt-door"}) {
		t.Fatalf("fired = %v, want only crypt-door", fired)
	}
	if got := tokenAt(t, e, "Borin"); got != geom.Pt(1500, 800) {
		t.Fatalf("Borin at %v", got)
	}
}

func TestEngineQueuedMovesFollowTheToken(t *testing.T) {
	sc := &scene.Scene{
		Name:     "corner",
		GridSize: 10,
		Width:    200,
		Height:   200,
		Zones:    []scene.ZoneSpec{{ID: "z", X: 50, Y: 50, Width: 10, Height: 10}},
		Tokens:   []scene.TokenSpec{{Name: "a"}},
	}
	// the second leg runs (5,105) -> (105,5) through the zone; a path taken
	// from the token's first position would run along y=5 and miss it.
	legs := []geom.Point{geom.Pt(0, 100), geom.Pt(100, 0)}

	tests := []struct {
		name      string
		stepEvery bool
	}{
		{"separate ticks", true},
		{"same tick", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(settings.Default(), nil)
			if err := e.LoadScene(sc); err != nil {
				t.Fatalf("LoadScene: %v", err)
			}

			var evts []ecs.Event
			for _, p := range legs {
				if err := e.MoveToken("a", p.X, p.Y); err != nil {
					t.Fatalf("MoveToken: %v", err)
				}
				if tt.stepEvery {
					evts = append(evts, e.Step()...)
				}
			}
			evts = append(evts, e.Step()...)

			if z, _ := e.Zone("z"); !z.Triggered {
				t.Fatalf("zone not triggered, events %v", eventTypes(evts))
			}
			if got := eventTypes(evts); len(got) == 0 || got[0] != ecs.EventZoneTriggered {
				t.Fatalf("events = %v", got)
			}
		})
	}
}

func TestEngineUnlimitedZone(t *testing.T) {
	tests := []struct {
		name      string
		unlimited bool
		wantFire  bool
	}{
		{name: "unlimited lets the token leave", unlimited: true, wantFire: false},
		{name: "limited fires on the way out", unlimited: false, wantFire: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, settings.Default())
			id, err := e.CreateZone(scene.ZoneSpec{X: 0, Y: 400, Width: 300, Height: 300, Unlimited: tt.unlimited})
			if err != nil {
				t.Fatalf("CreateZone: %v", err)
			}

			evts := mustMove(t, e, "Aria", 500, 500)
			z, _ := e.Zone(id)
			if z.Triggered != tt.wantFire {
				t.Fatalf("triggered = %v, want %v (events %v)", z.Triggered, tt.wantFire, eventTypes(evts))
			}
		})
	}
}

func TestEngineZeroDeltaMove(t *testing.T) {
	e := newTestEngine(t, settings.Default())
	if _, err := e.CreateZone(scene.ZoneSpec{ID: "under-aria", X: 0, Y: 400, Width: 300, Height: 300}); err != nil {
		t.Fatal(err)
	}
	if evts := mustMove(t, e, "Aria", 100, 500); len(evts) != 0 {
		t.Fatalf("zero move produced %v", eventTypes(evts))
	}
}

func TestEngineDisabledZoneIgnored(t *testing.T) {
	e := newTestEngine(t, settings.Default())
	if evts := mustMove(t, e, "Borin", 150, 1050); len(evts) != 0 {
		t.Fatalf("disabled zone produced %v", eventTypes(evts))
	}
	if z, _ := e.Zone("side-passage"); z.Triggered {
		t.Fatalf("disabled zone marked triggered")
	}
}

func TestEngineSettingsControlOutcome(t *testing.T) {
	s := settings.Default()
	s.PauseOnTrigger = false
	s.StopAtBoundary = false
	e := newTestEngine(t, s)

	evts := mustMove(t, e, "Aria", 1300, 500)
	want := []ecs.EventType{ecs.EventZoneTriggered, ecs.EventScriptMessage, ecs.EventCameraPan}
	if got := eventTypes(evts); !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	if e.Paused() {
		t.Fatalf("game paused with pause_on_trigger off")
	}
	if got := tokenAt(t, e, "Aria"); got != geom.Pt(1300, 500) {
		t.Fatalf("Aria at %v, want (1300,500)", got)
	}
}

func TestEngineToggleAndReset(t *testing.T) {
	e := newTestEngine(t, settings.Default())

	on, err := e.ToggleTriggered("crypt-door")
	if err != nil || !on {
		t.Fatalf("ToggleTriggered = %v, %v", on, err)
	}
	evts := e.Step()
	if got := eventTypes(evts); !reflect.DeepEqual(got, []ecs.EventType{ecs.EventZoneReset}) {
		t.Fatalf("events = %v", got)
	}
	if z, _ := e.Zone("crypt-door"); z.Image != settings.DefaultTriggeredImage {
		t.Fatalf("image = %q after toggle", z.Image)
	}

	if _, err := e.ToggleTriggered("nope"); !errors.Is(err, ErrUnknownZone) {
		t.Fatalf("unknown zone err = %v", err)
	}

	e.ResetAll()
	e.Step()
	for _, z := range e.Zones() {
		if z.Triggered {
			t.Fatalf("zone %s still triggered after reset", z.ID)
		}
		if z.Image != settings.DefaultUntriggeredImage {
			t.Fatalf("zone %s image = %q", z.ID, z.Image)
		}
	}
}

func TestEngineCreateZone(t *testing.T) {
	e := newTestEngine(t, settings.Default())

	id, err := e.CreateZone(scene.ZoneSpec{X: 0, Y: 0, Width: 100, Height: 100, Triggered: true, Disabled: true})
	if err != nil {
		t.Fatalf("CreateZone: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("generated id %q: %v", id, err)
	}
	z, ok := e.Zone(id)
	if !ok {
		t.Fatalf("zone %s missing", id)
	}
	if !z.Enabled || z.Triggered || !z.Hidden {
		t.Fatalf("new zone = %+v, want enabled, untriggered and hidden", z)
	}

	if _, err := e.CreateZone(scene.ZoneSpec{ID: "crypt-door", Width: 10, Height: 10}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("duplicate err = %v", err)
	}
	if _, err := e.CreateZone(scene.ZoneSpec{Width: -1, Height: 10}); err == nil {
		t.Fatalf("expected error for negative width")
	}

	if err := e.RemoveZone(id); err != nil {
		t.Fatalf("RemoveZone: %v", err)
	}
	if _, ok := e.Zone(id); ok {
		t.Fatalf("zone still present after remove")
	}
}

func TestEngineZoneAtPrefersNewestZone(t *testing.T) {
	e := newTestEngine(t, settings.Default())

	create := func(id string) {
		t.Helper()
		if _, err := e.CreateZone(scene.ZoneSpec{ID: id, X: 5000, Y: 5000, Width: 100, Height: 100}); err != nil {
			t.Fatalf("CreateZone(%s): %v", id, err)
		}
	}
	create("old")
	create("middle")
	if err := e.RemoveZone("old"); err != nil {
		t.Fatalf("RemoveZone: %v", err)
	}
	// takes the slot "old" left behind
	create("new")

	z, ok := e.ZoneAt(geom.Pt(5050, 5050))
	if !ok || z.ID != "new" {
		t.Fatalf("ZoneAt = %q, %v; want new", z.ID, ok)
	}

	zones := e.Zones()
	if last := zones[len(zones)-1].ID; last != "new" {
		t.Fatalf("last zone = %q, want new", last)
	}
	saved := e.Snapshot().Zones
	if last := saved[len(saved)-1].ID; last != "new" {
		t.Fatalf("last saved zone = %q, want new", last)
	}
}

func TestEngineUnknownToken(t *testing.T) {
	e := newTestEngine(t, settings.Default())
	if err := e.MoveToken("Nobody", 0, 0); !errors.Is(err, ErrUnknownToken) {
		t.Fatalf("err = %v", err)
	}
}

func TestEngineSnapshotReloads(t *testing.T) {
	e := newTestEngine(t, settings.Default())
	mustMove(t, e, "Aria", 1300, 500)

	data, err := e.Snapshot().Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	sc, err := scene.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	reloaded := New(settings.Default(), nil)
	if err := reloaded.LoadScene(sc); err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if z, _ := reloaded.Zone("crypt-door"); !z.Triggered {
		t.Fatalf("triggered state lost")
	}
	if got := tokenAt(t, reloaded, "Aria"); got != geom.Pt(800, 500) {
		t.Fatalf("Aria at %v", got)
	}
	if reloaded.GridSize() != 100 || reloaded.SceneName() != "crypt" {
		t.Fatalf("grid %v scene %q", reloaded.GridSize(), reloaded.SceneName())
	}
}

func TestEngineLoadSceneRejectsInvalid(t *testing.T) {
	e := newTestEngine(t, settings.Default())
	if err := e.LoadScene(&scene.Scene{Name: "broken"}); !errors.Is(err, scene.ErrInvalidScene) {
		t.Fatalf("err = %v", err)
	}
	if e.SceneName() != "crypt" {
		t.Fatalf("failed load replaced the scene")
	}
}
