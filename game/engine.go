// Package game wires the ECS world, its systems and the loaded scene into an
// Engine that viewers and host links drive.
package game

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/1000nettles/heywait/ecs"
	"github.com/1000nettles/heywait/ecs/component"
	"github.com/1000nettles/heywait/ecs/entity"
	"github.com/1000nettles/heywait/ecs/system"
	"github.com/1000nettles/heywait/geom"
	"github.com/1000nettles/heywait/scene"
	"github.com/1000nettles/heywait/settings"
)

var (
	ErrUnknownToken = errors.New("game: unknown token")
	ErrUnknownZone  = errors.New("game: unknown zone")
	ErrDuplicateID  = errors.New("game: duplicate zone id")
)

// Engine is safe for concurrent use. Commands queue work for the next Step;
// Step runs the systems once and returns the events they produced.
type Engine struct {
	mu sync.Mutex

	world     *ecs.World
	scheduler *ecs.Scheduler
	settings  settings.Settings

	scripts    *system.ZoneScripts
	trigger    *system.TriggerSystem
	appearance *system.ZoneAppearanceSystem
	camera     *system.CameraSystem

	sceneName     string
	width, height float64
	seq           uint64

	// zoneOrder ranks zones by creation; entity slots are reused.
	zoneOrder map[string]uint64
	zoneSeq   uint64
}

// New creates an engine with an empty world. loadScript resolves zone script
// names; nil disables scripts.
func New(s settings.Settings, loadScript func(name string) ([]byte, error)) *Engine {
	e := &Engine{settings: s}
	if loadScript != nil {
		e.scripts = system.NewZoneScripts(loadScript)
	}
	e.reset()
	return e
}

func (e *Engine) reset() {
	pause := system.NewPauseSystem()
	e.trigger = system.NewTriggerSystem(e.settings, e.scripts)
	e.appearance = system.NewZoneAppearanceSystem(e.settings)
	e.camera = system.NewCameraSystem()

	e.world = ecs.NewWorld()
	// pause runs on both sides of the trigger so explicit pause commands
	// apply before moves, and pauses caused by a trigger land in the same
	// tick.
	e.scheduler = ecs.NewScheduler(pause, e.trigger, pause, e.camera, e.appearance)
}

// LoadScene replaces the world with a fresh one built from sc.
func (e *Engine) LoadScene(sc *scene.Scene) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	world := ecs.NewWorld()
	if err := entity.BuildScene(world, sc, e.settings); err != nil {
		return fmt.Errorf("game: load scene: %w", err)
	}
	e.reset()
	e.world = world
	e.sceneName = sc.Name
	e.width, e.height = sc.Width, sc.Height
	e.zoneOrder = make(map[string]uint64, len(sc.Zones))
	e.zoneSeq = 0
	for _, z := range sc.Zones {
		e.zoneSeq++
		e.zoneOrder[z.ID] = e.zoneSeq
	}
	e.scripts.Invalidate("")
	return nil
}

func (e *Engine) Settings() settings.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

func (e *Engine) SetSettings(s settings.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings = s
	e.trigger.SetSettings(s)
	e.appearance.SetSettings(s)
	return nil
}

// InvalidateScript forces a zone script to be recompiled on next use.
func (e *Engine) InvalidateScript(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scripts.Invalidate(name)
}

// CreateZone adds a new zone. New zones are enabled, untriggered and hidden;
// a missing ID is generated.
func (e *Engine) CreateZone(spec scene.ZoneSpec) (string, error) {
	if spec.ID == "" {
		spec.ID = uuid.NewString()
	}
	spec.Triggered = false
	spec.Disabled = false

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.findZone(spec.ID); ok {
		return "", fmt.Errorf("%w: %s", ErrDuplicateID, spec.ID)
	}
	if _, err := entity.NewZone(e.world, spec, e.settings); err != nil {
		return "", fmt.Errorf("game: create zone: %w", err)
	}
	if e.zoneOrder == nil {
		e.zoneOrder = map[string]uint64{}
	}
	e.zoneSeq++
	e.zoneOrder[spec.ID] = e.zoneSeq
	return spec.ID, nil
}

// RemoveZone deletes a zone.
func (e *Engine) RemoveZone(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ent, ok := e.findZone(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownZone, id)
	}
	e.world.DestroyEntity(ent)
	delete(e.zoneOrder, id)
	return nil
}

// MoveToken queues a move of the token's anchor to (x, y).
func (e *Engine) MoveToken(name string, x, y float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.findToken(name); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownToken, name)
	}

	e.seq++
	reqEnt := e.world.CreateEntity()
	return ecs.Add(e.world, reqEnt, component.MoveRequestComponent, component.MoveRequest{
		Token: name,
		To:    geom.Pt(x, y),
		Seq:   e.seq,
	})
}

// ToggleTriggered flips a zone's triggered flag and returns the new value.
func (e *Engine) ToggleTriggered(id string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ent, ok := e.findZone(id)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownZone, id)
	}
	z, _ := ecs.Get(e.world, ent, component.TriggerZoneComponent)
	z.Triggered = !z.Triggered
	_ = ecs.Add(e.world, ent, component.TriggerZoneComponent, z)
	e.world.Events().Push(ecs.Event{Type: ecs.EventZoneReset, Data: component.ZoneReset{ZoneID: id, Triggered: z.Triggered}})
	return z.Triggered, nil
}

// ResetAll marks every zone untriggered.
func (e *Engine) ResetAll() {
	e.mu.Lock()
	defer e.mu.Unlock()

	ecs.ForEach(e.world, component.TriggerZoneComponent.Kind(), func(_ ecs.Entity, z *component.TriggerZone) {
		if !z.Triggered {
			return
		}
		z.Triggered = false
		e.world.Events().Push(ecs.Event{Type: ecs.EventZoneReset, Data: component.ZoneReset{ZoneID: z.ID}})
	})
}

// SetPaused queues a pause state change.
func (e *Engine) SetPaused(paused bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	reqEnt := e.world.CreateEntity()
	_ = ecs.Add(e.world, reqEnt, component.PauseRequestComponent, component.PauseRequest{Paused: paused, Reason: "command"})
}

// Step runs every system once and returns the events produced since the
// previous Step.
func (e *Engine) Step() []ecs.Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.scheduler.Update(e.world)
	return e.world.Events().Drain()
}

func (e *Engine) Snapshot() *scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	sc := entity.Snapshot(e.world, e.sceneName, e.width, e.height)
	sort.SliceStable(sc.Zones, func(i, j int) bool {
		return e.zoneOrder[sc.Zones[i].ID] < e.zoneOrder[sc.Zones[j].ID]
	})
	return sc
}

func (e *Engine) SceneName() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sceneName
}

// SceneSize returns the width and height of the loaded scene.
func (e *Engine) SceneSize() (width, height float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.width, e.height
}

// Zones returns every zone, oldest first.
func (e *Engine) Zones() []component.TriggerZone {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []component.TriggerZone
	for _, ent := range e.world.Query(component.TriggerZoneComponent.Kind()) {
		z, _ := ecs.Get(e.world, ent, component.TriggerZoneComponent)
		out = append(out, z)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return e.zoneOrder[out[i].ID] < e.zoneOrder[out[j].ID]
	})
	return out
}

func (e *Engine) Zone(id string) (component.TriggerZone, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ent, ok := e.findZone(id)
	if !ok {
		return component.TriggerZone{}, false
	}
	z, _ := ecs.Get(e.world, ent, component.TriggerZoneComponent)
	return z, true
}

// ZoneAt returns the last-created zone containing p.
func (e *Engine) ZoneAt(p geom.Point) (component.TriggerZone, bool) {
	zones := e.Zones()
	for i := len(zones) - 1; i >= 0; i-- {
		if zones[i].Bounds.Rect().Contains(p) {
			return zones[i], true
		}
	}
	return component.TriggerZone{}, false
}

// TokenView is a read-only copy of a token and its anchor.
type TokenView struct {
	Name   string
	X, Y   float64
	Width  float64
	Height float64
}

func (e *Engine) Tokens() []TokenView {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []TokenView
	for _, ent := range e.world.Query(component.TokenComponent.Kind(), component.TransformComponent.Kind()) {
		tok, _ := ecs.Get(e.world, ent, component.TokenComponent)
		tr, _ := ecs.Get(e.world, ent, component.TransformComponent)
		out = append(out, TokenView{Name: tok.Name, X: tr.X, Y: tr.Y, Width: tok.Width, Height: tok.Height})
	}
	return out
}

func (e *Engine) Token(name string) (TokenView, bool) {
	for _, t := range e.Tokens() {
		if t.Name == name {
			return t, true
		}
	}
	return TokenView{}, false
}

func (e *Engine) Camera() component.Camera {
	e.mu.Lock()
	defer e.mu.Unlock()

	if ent, ok := e.world.First(component.CameraComponent.Kind()); ok {
		cam, _ := ecs.Get(e.world, ent, component.CameraComponent)
		return cam
	}
	return component.Camera{Scale: 1}
}

func (e *Engine) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if ent, ok := e.world.First(component.PauseComponent.Kind()); ok {
		p, _ := ecs.Get(e.world, ent, component.PauseComponent)
		return p.Paused
	}
	return false
}

func (e *Engine) GridSize() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if ent, ok := e.world.First(component.SceneGridComponent.Kind()); ok {
		g, _ := ecs.Get(e.world, ent, component.SceneGridComponent)
		return g.Size
	}
	return 0
}

func (e *Engine) findZone(id string) (ecs.Entity, bool) {
	for _, ent := range e.world.Query(component.TriggerZoneComponent.Kind()) {
		z, _ := ecs.Get(e.world, ent, component.TriggerZoneComponent)
		if z.ID == id {
			return ent, true
		}
	}
	return 0, false
}

func (e *Engine) findToken(name string) (ecs.Entity, bool) {
	for _, ent := range e.world.Query(component.TokenComponent.Kind(), component.TransformComponent.Kind()) {
		tok, _ := ecs.Get(e.world, ent, component.TokenComponent)
		if tok.Name == name {
			return ent, true
		}
	}
	return 0, false
}
