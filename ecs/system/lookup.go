package system

import (
	"github.com/1000nettles/heywait/common"
	"github.com/1000nettles/heywait/ecs"
	"github.com/1000nettles/heywait/ecs/component"
)

func findToken(w *ecs.World, name string) (ecs.Entity, component.Token, bool) {
	for _, ent := range w.Query(component.TokenComponent.Kind(), component.TransformComponent.Kind()) {
		tok, _ := ecs.Get(w, ent, component.TokenComponent)
		if tok.Name == name {
			return ent, tok, true
		}
	}
	return 0, component.Token{}, false
}

// zonesByID maps zone ids to their entities.
func zonesByID(w *ecs.World) map[string]ecs.Entity {
	out := map[string]ecs.Entity{}
	for _, ent := range w.Query(component.TriggerZoneComponent.Kind()) {
		z, _ := ecs.Get(w, ent, component.TriggerZoneComponent)
		if z.ID == "" {
			continue
		}
		if _, dup := out[z.ID]; dup {
			continue
		}
		out[z.ID] = ent
	}
	return out
}

func sceneGridSize(w *ecs.World) float64 {
	if ent, ok := w.First(component.SceneGridComponent.Kind()); ok {
		if g, _ := ecs.Get(w, ent, component.SceneGridComponent); g.Size > 0 {
			return g.Size
		}
	}
	return common.DefaultGridSize
}

func isPaused(w *ecs.World) bool {
	if ent, ok := w.First(component.PauseComponent.Kind()); ok {
		p, _ := ecs.Get(w, ent, component.PauseComponent)
		return p.Paused
	}
	return false
}

func currentCamera(w *ecs.World) (ecs.Entity, component.Camera, bool) {
	ent, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return 0, component.Camera{}, false
	}
	cam, _ := ecs.Get(w, ent, component.CameraComponent)
	return ent, cam, true
}
