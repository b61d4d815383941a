package entity

import (
	"fmt"

	"github.com/1000nettles/heywait/ecs"
	"github.com/1000nettles/heywait/ecs/component"
	"github.com/1000nettles/heywait/scene"
	"github.com/1000nettles/heywait/settings"
)

// NewZone creates a trigger zone entity from its scene spec.
func NewZone(world *ecs.World, spec scene.ZoneSpec, s settings.Settings) (ecs.Entity, error) {
	zone, err := spec.Zone()
	if err != nil {
		return 0, fmt.Errorf("zone %s: %w", spec.ID, err)
	}

	entity := world.CreateEntity()
	if err := ecs.Add(world, entity, component.TriggerZoneComponent, component.TriggerZone{
		ID:        spec.ID,
		Name:      spec.Name,
		Bounds:    component.AABBFromRect(zone.Rect),
		Unlimited: spec.Unlimited,
		Enabled:   !spec.Disabled,
		Triggered: spec.Triggered,
		Hidden:    true,
		Image:     s.ImageFor(spec.Triggered),
		Script:    spec.Script,
	}); err != nil {
		return 0, fmt.Errorf("zone %s: failed to add trigger zone component: %w", spec.ID, err)
	}
	return entity, nil
}

// ZoneSpec converts a zone back into its scene form.
func ZoneSpec(z component.TriggerZone) scene.ZoneSpec {
	return scene.ZoneSpec{
		ID:        z.ID,
		Name:      z.Name,
		X:         z.Bounds.X,
		Y:         z.Bounds.Y,
		Width:     z.Bounds.W,
		Height:    z.Bounds.H,
		Unlimited: z.Unlimited,
		Triggered: z.Triggered,
		Disabled:  !z.Enabled,
		Script:    z.Script,
	}
}
