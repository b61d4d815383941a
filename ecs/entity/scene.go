package entity

import (
	"fmt"

	"github.com/1000nettles/heywait/ecs"
	"github.com/1000nettles/heywait/ecs/component"
	"github.com/1000nettles/heywait/scene"
	"github.com/1000nettles/heywait/settings"
)

// BuildScene fills an empty world with the scene's grid, zones and tokens
// plus the pause and camera singletons. The camera starts centered on the
// scene.
func BuildScene(world *ecs.World, sc *scene.Scene, s settings.Settings) error {
	if err := sc.Validate(); err != nil {
		return err
	}

	gridEnt := world.CreateEntity()
	if err := ecs.Add(world, gridEnt, component.SceneGridComponent, component.SceneGrid{Size: sc.GridSize}); err != nil {
		return fmt.Errorf("scene %s: failed to add grid component: %w", sc.Name, err)
	}

	pauseEnt := world.CreateEntity()
	if err := ecs.Add(world, pauseEnt, component.PauseComponent, component.Pause{}); err != nil {
		return fmt.Errorf("scene %s: failed to add pause component: %w", sc.Name, err)
	}

	camEnt := world.CreateEntity()
	if err := ecs.Add(world, camEnt, component.CameraComponent, component.Camera{
		X:     sc.Width / 2,
		Y:     sc.Height / 2,
		Scale: 1,
	}); err != nil {
		return fmt.Errorf("scene %s: failed to add camera component: %w", sc.Name, err)
	}

	for _, z := range sc.Zones {
		if _, err := NewZone(world, z, s); err != nil {
			return fmt.Errorf("scene %s: %w", sc.Name, err)
		}
	}
	for _, t := range sc.Tokens {
		if _, err := NewToken(world, t); err != nil {
			return fmt.Errorf("scene %s: %w", sc.Name, err)
		}
	}
	return nil
}

// Snapshot captures the world back into a scene.
func Snapshot(world *ecs.World, name string, width, height float64) *scene.Scene {
	sc := &scene.Scene{Name: name, Width: width, Height: height}

	if ent, ok := world.First(component.SceneGridComponent.Kind()); ok {
		g, _ := ecs.Get(world, ent, component.SceneGridComponent)
		sc.GridSize = g.Size
	}
	for _, ent := range world.Query(component.TriggerZoneComponent.Kind()) {
		z, _ := ecs.Get(world, ent, component.TriggerZoneComponent)
		sc.Zones = append(sc.Zones, ZoneSpec(z))
	}
	for _, ent := range world.Query(component.TokenComponent.Kind(), component.TransformComponent.Kind()) {
		tok, _ := ecs.Get(world, ent, component.TokenComponent)
		tr, _ := ecs.Get(world, ent, component.TransformComponent)
		sc.Tokens = append(sc.Tokens, TokenSpec(tok, tr))
	}
	return sc
}
